package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"emfmonitor/backend/services/dashboard/internal/models"
)

// MeasurementsHandlers serves the home page map.
type MeasurementsHandlers struct {
	svc    DashboardService
	logger *zap.Logger
}

// NewMeasurementsHandlers returns handler.
func NewMeasurementsHandlers(svc DashboardService, logger *zap.Logger) *MeasurementsHandlers {
	return &MeasurementsHandlers{svc: svc, logger: logger}
}

// Map handles GET /api/measurements.
func (h *MeasurementsHandlers) Map(w http.ResponseWriter, r *http.Request) {
	filters, err := models.FiltersFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	loc := requestLocale(w, r)
	writeJSON(w, http.StatusOK, h.svc.MapView(r.Context(), filters, loc))
}

// Readings handles GET /api/measurements/{id}/readings.
func (h *MeasurementsHandlers) Readings(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(w, r)
	id := models.ID(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, h.svc.MeasurementDetails(r.Context(), id, loc))
}
