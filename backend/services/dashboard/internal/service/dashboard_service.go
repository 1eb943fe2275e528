// Package service builds the dashboard views from gateway data and the derivation rules.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"emfmonitor/backend/services/dashboard/internal/derive"
	"emfmonitor/backend/services/dashboard/internal/gateway"
	"emfmonitor/backend/services/dashboard/internal/locale"
	"emfmonitor/backend/services/dashboard/internal/models"
)

// DashboardService composes views. Levels and campaign stats are always re-derived here,
// whatever the source sent.
type DashboardService struct {
	gw     gateway.Gateway
	logger *zap.Logger
}

// NewDashboardService builds service.
func NewDashboardService(gw gateway.Gateway, logger *zap.Logger) *DashboardService {
	return &DashboardService{gw: gw, logger: logger}
}

// MapView returns the measurement points passing the level and time filters.
func (s *DashboardService) MapView(ctx context.Context, filters models.Filters, loc locale.Locale) MapView {
	points := derive.Relevel(s.gw.FetchMeasurementPoints(ctx, filters))
	points = derive.FilterPoints(points, filters)
	return MapView{
		Locale: loc.Code(),
		Points: markers(points, loc),
		Levels: levelCounts(points, loc),
	}
}

// CampaignList returns the campaigns in the filtered region and date window.
func (s *DashboardService) CampaignList(ctx context.Context, filters models.Filters) []CampaignSummary {
	campaigns := derive.FilterCampaigns(s.gw.FetchCampaigns(ctx, filters), filters)
	out := make([]CampaignSummary, 0, len(campaigns))
	for _, c := range campaigns {
		c.Points = derive.Relevel(c.Points)
		out = append(out, summarize(derive.RecomputeStats(c)))
	}
	return out
}

// CampaignView returns one campaign. The route and stats cover every point; only the
// points shown as markers are narrowed by the level filter.
func (s *DashboardService) CampaignView(ctx context.Context, id models.ID, filters models.Filters, loc locale.Locale) (CampaignView, error) {
	campaign := s.gw.FetchCampaignDetails(ctx, id)
	if campaign == nil {
		return CampaignView{}, fmt.Errorf("campaign %s: %w", id, gateway.ErrNotFound)
	}
	c := *campaign
	c.Points = derive.Relevel(c.Points)
	c = derive.RecomputeStats(c)

	shown := derive.FilterByLevel(c.Points, filters.Level)
	return CampaignView{
		Locale:   loc.Code(),
		Campaign: summarize(c),
		Route:    derive.BucketRouteFromPoints(c.Points),
		Points:   markers(shown, loc),
		Levels:   levelCounts(c.Points, loc),
	}, nil
}

// StationList returns every monitoring station.
func (s *DashboardService) StationList(ctx context.Context, loc locale.Locale) []StationView {
	stations := s.gw.FetchMonitoringStations(ctx)
	out := make([]StationView, 0, len(stations))
	for _, st := range stations {
		out = append(out, StationView{Station: st, StatusLabel: loc.StationStatus(st.Status)})
	}
	return out
}

// StationMonitoring returns the chart series of one station over the range ending at now,
// and a marker for its latest reading.
func (s *DashboardService) StationMonitoring(ctx context.Context, id models.ID, key derive.RangeKey, now time.Time, loc locale.Locale) (StationMonitoringView, error) {
	station, ok := s.findStation(ctx, id)
	if !ok {
		return StationMonitoringView{}, fmt.Errorf("station %s: %w", id, gateway.ErrNotFound)
	}

	from := derive.DeriveTimeRangeStart(key, now)
	readings := s.gw.FetchSensorData(ctx, id, &models.TimeRange{From: from, To: now})

	view := StationMonitoringView{
		Locale:  loc.Code(),
		Station: StationView{Station: station, StatusLabel: loc.StationStatus(station.Status)},
		Range:   derive.ParseRangeKey(string(key)),
		From:    from,
		To:      now,
		Series:  derive.BuildChartSeries(readings),
	}
	if latest, ok := derive.LatestReading(readings); ok {
		point := derive.MarkerFromReading(station.ID, station.Location, latest)
		view.Latest = &Marker{MeasurementPoint: point, LevelLabel: loc.Level(point.Level)}
	} else {
		view.Message = loc.Label(locale.KeyNoData)
	}
	return view, nil
}

// MeasurementDetails returns the time series of a measurement point. No range is sent, so
// the source decides the window.
func (s *DashboardService) MeasurementDetails(ctx context.Context, id models.ID, loc locale.Locale) MeasurementDetailsView {
	readings := s.gw.FetchSensorData(ctx, id, nil)
	view := MeasurementDetailsView{
		Locale:  loc.Code(),
		PointID: id,
		Series:  derive.BuildChartSeries(readings),
	}
	if len(readings) == 0 {
		view.Message = loc.Label(locale.KeyNoData)
	}
	return view
}

// LatestMarker returns the most recent reading of a station over the last 24 hours as a
// marker, or false when there is none.
func (s *DashboardService) LatestMarker(ctx context.Context, id models.ID, now time.Time, loc locale.Locale) (Marker, bool) {
	station, ok := s.findStation(ctx, id)
	if !ok {
		return Marker{}, false
	}
	from := derive.DeriveTimeRangeStart(derive.Range24h, now)
	latest, ok := derive.LatestReading(s.gw.FetchSensorData(ctx, id, &models.TimeRange{From: from, To: now}))
	if !ok {
		return Marker{}, false
	}
	point := derive.MarkerFromReading(station.ID, station.Location, latest)
	return Marker{MeasurementPoint: point, LevelLabel: loc.Level(point.Level)}, true
}

// HasStation reports whether id names a known station.
func (s *DashboardService) HasStation(ctx context.Context, id models.ID) bool {
	_, ok := s.findStation(ctx, id)
	return ok
}

func (s *DashboardService) findStation(ctx context.Context, id models.ID) (models.Station, bool) {
	for _, st := range s.gw.FetchMonitoringStations(ctx) {
		if st.ID == id {
			return st, true
		}
	}
	return models.Station{}, false
}

// LegalDocuments returns the documents of one category, or all of them for the empty type.
func (s *DashboardService) LegalDocuments(ctx context.Context, docType models.DocumentType, loc locale.Locale) LegalDocumentsView {
	docs := derive.FilterDocumentsByType(s.gw.FetchLegalDocuments(ctx), docType)

	view := LegalDocumentsView{
		Locale:    loc.Code(),
		Tabs:      make([]DocumentTab, 0, len(documentTabs)),
		Documents: make([]LegalDocument, 0, len(docs)),
	}
	for _, t := range documentTabs {
		view.Tabs = append(view.Tabs, DocumentTab{Type: t, Label: loc.DocumentType(t), Active: t == docType})
	}
	for _, d := range docs {
		view.Documents = append(view.Documents, LegalDocument{LegalDocument: d, TypeLabel: loc.DocumentType(d.Type)})
	}
	if len(docs) == 0 {
		view.Message = loc.Label(locale.KeyNoDocuments)
	}
	return view
}

// Export hands the filtered data set to sink. Failures are logged by the gateway.
func (s *DashboardService) Export(ctx context.Context, format models.ExportFormat, filters models.Filters, sink gateway.Sink) {
	s.logger.Info("export requested",
		zap.String("format", string(format)),
		zap.String("data_type", filters.DataType),
		zap.String("region", filters.Region),
	)
	s.gw.ExportData(ctx, format, filters, sink)
}

// SubmitContact validates the form and submits it. Validation failures wrap ErrInvalidContact,
// delivery failures wrap gateway.ErrSubmission.
func (s *DashboardService) SubmitContact(ctx context.Context, form models.ContactForm) (models.ContactResult, error) {
	if err := ValidateContact(form); err != nil {
		return models.ContactResult{}, err
	}
	return s.gw.SubmitContactForm(ctx, form)
}
