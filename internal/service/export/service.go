// Package export builds the bulk data archive and serves the static report.
package export

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/heartmarshall/insight-backend/internal/config"
	"github.com/heartmarshall/insight-backend/internal/domain"
)

type tableDumper interface {
	DumpTable(ctx context.Context, table string) (domain.Table, error)
}

type observer interface {
	ObserveExport(err error)
}

// Service builds export archives.
type Service struct {
	log     *slog.Logger
	dumper  tableDumper
	metrics observer
	cfg     config.ExportConfig
}

// NewService creates a new export service.
func NewService(logger *slog.Logger, dumper tableDumper, m observer, cfg config.ExportConfig) *Service {
	return &Service{
		log:     logger.With("service", "export"),
		dumper:  dumper,
		metrics: m,
		cfg:     cfg,
	}
}

// ArchiveName is the file name the archive is downloaded as.
func (s *Service) ArchiveName() string { return s.cfg.ArchiveName }

// WriteArchive dumps every configured table and writes csv/<table>.csv and
// excel/<table>.xlsx entries to w. Empty tables get no entries. It returns
// the tables that were written.
func (s *Service) WriteArchive(ctx context.Context, w io.Writer) ([]string, error) {
	written, err := s.writeArchive(ctx, w)
	s.metrics.ObserveExport(err)
	return written, err
}

func (s *Service) writeArchive(ctx context.Context, w io.Writer) ([]string, error) {
	zw := zip.NewWriter(w)

	var written []string
	for _, name := range s.cfg.Tables {
		table, err := s.dumper.DumpTable(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("export.WriteArchive %s: %w", name, err)
		}
		if len(table.Rows) == 0 {
			s.log.InfoContext(ctx, "skipping empty table", slog.String("table", name))
			continue
		}

		if err := addEntry(zw, "csv/"+name+".csv", table, writeCSV); err != nil {
			return nil, fmt.Errorf("export.WriteArchive %s csv: %w", name, err)
		}
		if err := addEntry(zw, "excel/"+name+".xlsx", table, writeXLSX); err != nil {
			return nil, fmt.Errorf("export.WriteArchive %s xlsx: %w", name, err)
		}
		written = append(written, name)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("export.WriteArchive close: %w", err)
	}
	s.log.InfoContext(ctx, "archive written",
		slog.Int("tables", len(written)),
		slog.Int("configured", len(s.cfg.Tables)))
	return written, nil
}

func addEntry(zw *zip.Writer, name string, t domain.Table, enc func(io.Writer, domain.Table) error) error {
	fw, err := zw.Create(name)
	if err != nil {
		return err
	}
	return enc(fw, t)
}
