package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"emfmonitor/backend/services/dashboard/internal/derive"
	"emfmonitor/backend/services/dashboard/internal/gateway"
	"emfmonitor/backend/services/dashboard/internal/locale"
	"emfmonitor/backend/services/dashboard/internal/models"
)

// LiveServer upgrades a request to a station live feed.
type LiveServer interface {
	Serve(w http.ResponseWriter, r *http.Request, stationID models.ID, loc locale.Locale)
}

// StationsHandlers serves continuous monitoring.
type StationsHandlers struct {
	svc    DashboardService
	live   LiveServer
	now    func() time.Time
	logger *zap.Logger
}

// NewStationsHandlers returns handler. live may be nil when the feed is disabled.
func NewStationsHandlers(svc DashboardService, live LiveServer, now func() time.Time, logger *zap.Logger) *StationsHandlers {
	if now == nil {
		now = time.Now
	}
	return &StationsHandlers{svc: svc, live: live, now: now, logger: logger}
}

// List handles GET /api/stations.
func (h *StationsHandlers) List(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(w, r)
	writeJSON(w, http.StatusOK, h.svc.StationList(r.Context(), loc))
}

// Readings handles GET /api/stations/{id}/readings?range=24h|7d|30d.
func (h *StationsHandlers) Readings(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(w, r)
	id := models.ID(chi.URLParam(r, "id"))
	key := derive.ParseRangeKey(r.URL.Query().Get("range"))

	view, err := h.svc.StationMonitoring(r.Context(), id, key, h.now().UTC(), loc)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			writeError(w, http.StatusNotFound, "station not found")
			return
		}
		h.logger.Error("station monitoring failed", zap.String("station_id", id.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Live handles GET /api/stations/{id}/live.
func (h *StationsHandlers) Live(w http.ResponseWriter, r *http.Request) {
	if h.live == nil {
		writeError(w, http.StatusNotFound, "live feed disabled")
		return
	}
	loc := locale.Resolve(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
	h.live.Serve(w, r, models.ID(chi.URLParam(r, "id")), loc)
}
