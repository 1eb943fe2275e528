package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"emfmonitor/backend/services/dashboard/internal/models"
)

// DownloadHandlers serves open data downloads as attachments.
type DownloadHandlers struct {
	svc    DashboardService
	logger *zap.Logger
}

// NewDownloadHandlers returns handler.
func NewDownloadHandlers(svc DashboardService, logger *zap.Logger) *DownloadHandlers {
	return &DownloadHandlers{svc: svc, logger: logger}
}

// attachment buffers one export so it can be sent with the right headers.
type attachment struct {
	filename    string
	contentType string
	body        []byte
	saved       bool
}

func (a *attachment) Save(filename, contentType string, body []byte) error {
	a.filename, a.contentType, a.body, a.saved = filename, contentType, body, true
	return nil
}

// Download handles GET /api/download?format=&dataType=&region=&from=&to=.
func (h *DownloadHandlers) Download(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	format, err := models.ParseExportFormat(query.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters, err := models.FiltersFromQuery(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	file := &attachment{}
	h.svc.Export(r.Context(), format, filters, file)
	if !file.saved {
		writeError(w, http.StatusBadGateway, "export unavailable")
		return
	}

	w.Header().Set("Content-Type", file.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.body); err != nil {
		h.logger.Warn("download write failed", zap.String("filename", file.filename), zap.Error(err))
	}
}
