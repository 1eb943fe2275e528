package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"emfmonitor/backend/services/dashboard/internal/models"
)

// LegalHandlers serves the legal regulations page.
type LegalHandlers struct {
	svc    DashboardService
	logger *zap.Logger
}

// NewLegalHandlers returns handler.
func NewLegalHandlers(svc DashboardService, logger *zap.Logger) *LegalHandlers {
	return &LegalHandlers{svc: svc, logger: logger}
}

// List handles GET /api/legal-documents?type=.
func (h *LegalHandlers) List(w http.ResponseWriter, r *http.Request) {
	docType, err := models.ParseDocumentType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	loc := requestLocale(w, r)
	writeJSON(w, http.StatusOK, h.svc.LegalDocuments(r.Context(), docType, loc))
}
