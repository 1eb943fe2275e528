package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"emfmonitor/backend/services/dashboard/internal/gateway"
	"emfmonitor/backend/services/dashboard/internal/models"
)

// CampaignsHandlers serves campaign listings and routes.
type CampaignsHandlers struct {
	svc    DashboardService
	logger *zap.Logger
}

// NewCampaignsHandlers returns handler.
func NewCampaignsHandlers(svc DashboardService, logger *zap.Logger) *CampaignsHandlers {
	return &CampaignsHandlers{svc: svc, logger: logger}
}

// List handles GET /api/campaigns.
func (h *CampaignsHandlers) List(w http.ResponseWriter, r *http.Request) {
	filters, err := models.FiltersFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.svc.CampaignList(r.Context(), filters))
}

// Get handles GET /api/campaigns/{id}.
func (h *CampaignsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	filters, err := models.FiltersFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	loc := requestLocale(w, r)
	id := models.ID(chi.URLParam(r, "id"))

	view, err := h.svc.CampaignView(r.Context(), id, filters, loc)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			writeError(w, http.StatusNotFound, "campaign not found")
			return
		}
		h.logger.Error("campaign view failed", zap.String("campaign_id", id.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, view)
}
