package handlers

import (
	"context"
	"time"

	"emfmonitor/backend/services/dashboard/internal/derive"
	"emfmonitor/backend/services/dashboard/internal/gateway"
	"emfmonitor/backend/services/dashboard/internal/locale"
	"emfmonitor/backend/services/dashboard/internal/models"
	"emfmonitor/backend/services/dashboard/internal/service"
)

// DashboardService is the view layer the handlers render.
type DashboardService interface {
	MapView(ctx context.Context, filters models.Filters, loc locale.Locale) service.MapView
	MeasurementDetails(ctx context.Context, id models.ID, loc locale.Locale) service.MeasurementDetailsView
	CampaignList(ctx context.Context, filters models.Filters) []service.CampaignSummary
	CampaignView(ctx context.Context, id models.ID, filters models.Filters, loc locale.Locale) (service.CampaignView, error)
	StationList(ctx context.Context, loc locale.Locale) []service.StationView
	StationMonitoring(ctx context.Context, id models.ID, key derive.RangeKey, now time.Time, loc locale.Locale) (service.StationMonitoringView, error)
	LegalDocuments(ctx context.Context, docType models.DocumentType, loc locale.Locale) service.LegalDocumentsView
	Export(ctx context.Context, format models.ExportFormat, filters models.Filters, sink gateway.Sink)
	SubmitContact(ctx context.Context, form models.ContactForm) (models.ContactResult, error)
}
