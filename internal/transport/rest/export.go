package rest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/heartmarshall/insight-backend/internal/domain"
	"github.com/heartmarshall/insight-backend/internal/service/export"
)

const reportContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

type exportService interface {
	ArchiveName() string
	Stage(ctx context.Context) (*export.Archive, error)
	OpenReport() (*os.File, fs.FileInfo, error)
}

// ExportHandler serves the bulk download endpoints.
type ExportHandler struct {
	svc exportService
	log *slog.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(svc exportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, log: logger.With("handler", "export")}
}

// DownloadData handles GET /download-data. The archive is fully built
// before the first byte is sent, so a failure still yields a JSON error.
func (h *ExportHandler) DownloadData(w http.ResponseWriter, r *http.Request) {
	archive, err := h.svc.Stage(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	defer func() {
		if err := archive.Close(); err != nil {
			h.log.WarnContext(r.Context(), "remove staged archive", slog.String("error", err.Error()))
		}
	}()

	w.Header().Set("Content-Type", "application/x-zip-compressed")
	w.Header().Set("Content-Disposition", "attachment; filename="+h.svc.ArchiveName())
	w.Header().Set("Content-Length", strconv.FormatInt(archive.Size, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := archive.WriteTo(w); err != nil {
		h.log.WarnContext(r.Context(), "stream archive", slog.String("error", err.Error()))
	}
}

// DownloadReport handles GET /download-report.
func (h *ExportHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	f, info, err := h.svc.OpenReport()
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Report file not found")
		return
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", reportContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=report.pptx")
	http.ServeContent(w, r, "report.pptx", info.ModTime(), f)
}
