package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"emfmonitor/backend/libs/metrics"
	"emfmonitor/backend/services/dashboard/internal/http/handlers"
	"emfmonitor/backend/services/dashboard/internal/http/middleware"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	MeasurementsHandlers *handlers.MeasurementsHandlers
	CampaignsHandlers    *handlers.CampaignsHandlers
	StationsHandlers     *handlers.StationsHandlers
	LegalHandlers        *handlers.LegalHandlers
	DownloadHandlers     *handlers.DownloadHandlers
	ContactHandlers      *handlers.ContactHandlers
	HealthHandler        http.HandlerFunc
	Metrics              *metrics.Metrics
	CORSOrigins          []string
}

// NewRouter wires HTTP routes with middleware.
func NewRouter(deps RouterDeps) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.CORSMiddleware(deps.CORSOrigins))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.HTTPMiddleware(routePattern))
	}

	router.Get("/health", deps.HealthHandler)
	if deps.Metrics != nil {
		router.Handle("/metrics", deps.Metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/measurements", deps.MeasurementsHandlers.Map)
		r.Get("/measurements/{id}/readings", deps.MeasurementsHandlers.Readings)

		r.Get("/campaigns", deps.CampaignsHandlers.List)
		r.Get("/campaigns/{id}", deps.CampaignsHandlers.Get)

		r.Get("/stations", deps.StationsHandlers.List)
		r.Get("/stations/{id}/readings", deps.StationsHandlers.Readings)
		r.Get("/stations/{id}/live", deps.StationsHandlers.Live)

		r.Get("/legal-documents", deps.LegalHandlers.List)
		r.Get("/download", deps.DownloadHandlers.Download)
		r.Post("/contact", deps.ContactHandlers.Submit)
	})

	return router
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return ""
}
