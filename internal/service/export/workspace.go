package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/heartmarshall/insight-backend/internal/domain"
)

// Archive is an export staged on disk. Close removes the file.
type Archive struct {
	*os.File
	Size int64
}

// Close closes and deletes the staged file.
func (a *Archive) Close() error {
	return errors.Join(a.File.Close(), os.Remove(a.File.Name()))
}

// Stage writes the archive to a temp file inside the workspace directory
// and rewinds it for reading.
func (s *Service) Stage(ctx context.Context) (*Archive, error) {
	if err := os.MkdirAll(s.cfg.WorkspaceDir, 0o750); err != nil {
		return nil, fmt.Errorf("export.Stage mkdir: %w", err)
	}
	f, err := os.CreateTemp(s.cfg.WorkspaceDir, "export-*.zip")
	if err != nil {
		return nil, fmt.Errorf("export.Stage create: %w", err)
	}
	a := &Archive{File: f}

	if _, err := s.WriteArchive(ctx, f); err != nil {
		_ = a.Close()
		return nil, err
	}
	size, err := f.Seek(0, io.SeekEnd)
	if err == nil {
		_, err = f.Seek(0, io.SeekStart)
	}
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("export.Stage seek: %w", err)
	}
	a.Size = size
	return a, nil
}

// OpenReport opens the static report. A missing file is ErrNotFound.
func (s *Service) OpenReport() (*os.File, fs.FileInfo, error) {
	f, err := os.Open(s.cfg.ReportPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("report %s: %w", s.cfg.ReportPath, domain.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("export.OpenReport: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("export.OpenReport stat: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, nil, fmt.Errorf("report %s: %w", s.cfg.ReportPath, domain.ErrNotFound)
	}
	return f, info, nil
}

// PruneWorkspace removes workspace entries last modified before
// now minus the configured retention. A missing workspace is not an error.
func (s *Service) PruneWorkspace(ctx context.Context, now time.Time) (int, error) {
	entries, err := os.ReadDir(s.cfg.WorkspaceDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("export.PruneWorkspace: %w", err)
	}

	cutoff := now.Add(-s.cfg.WorkspaceRetention)
	removed := 0
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return removed, fmt.Errorf("export.PruneWorkspace stat %s: %w", e.Name(), err)
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.cfg.WorkspaceDir, e.Name())); err != nil {
			return removed, fmt.Errorf("export.PruneWorkspace remove %s: %w", e.Name(), err)
		}
		removed++
		s.log.DebugContext(ctx, "pruned workspace entry",
			slog.String("name", e.Name()),
			slog.Time("modified", info.ModTime()))
	}
	return removed, nil
}
