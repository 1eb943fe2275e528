package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"emfmonitor/backend/services/dashboard/internal/derive"
	"emfmonitor/backend/services/dashboard/internal/gateway"
	"emfmonitor/backend/services/dashboard/internal/locale"
	"emfmonitor/backend/services/dashboard/internal/models"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// stubGateway returns canned data and records the last sensor range requested.
type stubGateway struct {
	points    []models.MeasurementPoint
	campaigns []models.Campaign
	stations  []models.Station
	readings  []models.SensorReading
	docs      []models.LegalDocument
	contact   error

	lastRange *models.TimeRange
	exported  int
	submitted int
}

func (g *stubGateway) FetchMeasurementPoints(context.Context, models.Filters) []models.MeasurementPoint {
	return g.points
}

func (g *stubGateway) FetchSensorData(_ context.Context, _ models.ID, tr *models.TimeRange) []models.SensorReading {
	g.lastRange = tr
	return g.readings
}

func (g *stubGateway) FetchMonitoringStations(context.Context) []models.Station { return g.stations }

func (g *stubGateway) FetchCampaigns(context.Context, models.Filters) []models.Campaign {
	return g.campaigns
}

func (g *stubGateway) FetchCampaignDetails(_ context.Context, id models.ID) *models.Campaign {
	for i := range g.campaigns {
		if g.campaigns[i].ID == id {
			c := g.campaigns[i]
			return &c
		}
	}
	return nil
}

func (g *stubGateway) FetchLegalDocuments(context.Context) []models.LegalDocument { return g.docs }

func (g *stubGateway) ExportData(context.Context, models.ExportFormat, models.Filters, gateway.Sink) {
	g.exported++
}

func (g *stubGateway) SubmitContactForm(context.Context, models.ContactForm) (models.ContactResult, error) {
	g.submitted++
	if g.contact != nil {
		return models.ContactResult{}, g.contact
	}
	return models.ContactResult{Success: true, Message: "ok"}, nil
}

func point(id int64, value float64, level models.Level, ts time.Time) models.MeasurementPoint {
	return models.MeasurementPoint{
		ID:        models.IntID(id),
		Location:  models.Location{Lat: 44.8, Lng: 20.4},
		Value:     value,
		Unit:      models.UnitVPerM,
		Level:     level,
		Timestamp: ts,
	}
}

func newService(gw gateway.Gateway) *DashboardService {
	return NewDashboardService(gw, zap.NewNop())
}

func TestMapViewRecomputesLevelsAndFilters(t *testing.T) {
	gw := &stubGateway{points: []models.MeasurementPoint{
		point(1, 1.5, models.LevelHigh, now.Add(-time.Hour)),
		point(2, 3, models.LevelLow, now.Add(-time.Hour)),
		point(3, 7, "", now.Add(-48*time.Hour)),
	}}
	svc := newService(gw)

	view := svc.MapView(context.Background(), models.Filters{}, locale.SerbianLatin)
	require.Len(t, view.Points, 3)
	assert.Equal(t, "sr-Latn", view.Locale)
	assert.Equal(t, models.LevelLow, view.Points[0].Level)
	assert.Equal(t, "Nizak", view.Points[0].LevelLabel)
	assert.Equal(t, models.LevelMedium, view.Points[1].Level)
	assert.Equal(t, models.LevelHigh, view.Points[2].Level)
	assert.Equal(t, []LevelCount{
		{Level: models.LevelLow, Label: "Nizak", Count: 1},
		{Level: models.LevelMedium, Label: "Srednji", Count: 1},
		{Level: models.LevelHigh, Label: "Visok", Count: 1},
	}, view.Levels)

	from := now.Add(-24 * time.Hour)
	view = svc.MapView(context.Background(), models.Filters{From: &from, Level: models.LevelMedium}, locale.English)
	require.Len(t, view.Points, 1)
	assert.Equal(t, models.IntID(2), view.Points[0].ID)
}

func TestMapViewEmptyWhenGatewayFails(t *testing.T) {
	view := newService(&stubGateway{points: []models.MeasurementPoint{}}).MapView(context.Background(), models.Filters{}, locale.English)
	assert.NotNil(t, view.Points)
	assert.Empty(t, view.Points)
	assert.Len(t, view.Levels, 3)
}

func scenarioCampaign() models.Campaign {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return models.Campaign{
		ID:       models.IntID(1),
		Name:     "Belgrade Area Campaign 1",
		Region:   "Belgrade",
		Date:     "2024-05-01",
		Duration: "1 day",
		Points: []models.MeasurementPoint{
			point(1, 1.5, "", start),
			point(2, 3.0, "", start.Add(30*time.Second)),
			point(3, 7.0, "", start.Add(time.Minute)),
		},
		Stats: models.CampaignStats{MaxValue: 99, AvgValue: 99, PointsCount: 99},
	}
}

func TestCampaignViewRouteStatsAndThresholdFilter(t *testing.T) {
	svc := newService(&stubGateway{campaigns: []models.Campaign{scenarioCampaign()}})

	view, err := svc.CampaignView(context.Background(), "1", models.Filters{Level: models.LevelHigh}, locale.English)
	require.NoError(t, err)

	assert.Equal(t, models.CampaignStats{MaxValue: 7, AvgValue: 3.83, Unit: models.UnitVPerM, PointsCount: 3}, view.Campaign.Stats)
	require.Len(t, view.Route.Path, 3)
	assert.Equal(t, 44.8, view.Route.Path[0].Lat)
	require.Len(t, view.Points, 1)
	assert.Equal(t, models.IntID(3), view.Points[0].ID)
	assert.Equal(t, "High", view.Points[0].LevelLabel)
}

func TestCampaignViewNotFound(t *testing.T) {
	_, err := newService(&stubGateway{}).CampaignView(context.Background(), "42", models.Filters{}, locale.English)
	assert.True(t, errors.Is(err, gateway.ErrNotFound))
}

func TestCampaignListFiltersByRegionAndRecomputesStats(t *testing.T) {
	other := scenarioCampaign()
	other.ID = models.IntID(2)
	other.Region = "Niš"
	svc := newService(&stubGateway{campaigns: []models.Campaign{scenarioCampaign(), other}})

	list := svc.CampaignList(context.Background(), models.Filters{Region: "belgrade"})
	require.Len(t, list, 1)
	assert.Equal(t, models.IntID(1), list[0].ID)
	assert.Equal(t, 3, list[0].Stats.PointsCount)
}

func TestStationMonitoring(t *testing.T) {
	station := models.Station{
		ID:          models.IntID(4),
		Name:        "Kragujevac Monitoring Station",
		Location:    models.Location{Lat: 44.01, Lng: 20.92},
		Status:      models.StationMaintenance,
		InstallDate: "2022-01-01",
	}
	gw := &stubGateway{
		stations: []models.Station{station},
		readings: []models.SensorReading{
			{Timestamp: now.Add(-time.Hour), Value: 6.5, Unit: models.UnitVPerM},
			{Timestamp: now.Add(-3 * time.Hour), Value: 1.0, Unit: models.UnitVPerM},
		},
	}
	svc := newService(gw)

	view, err := svc.StationMonitoring(context.Background(), "4", derive.Range7d, now, locale.SerbianCyrillic)
	require.NoError(t, err)

	require.NotNil(t, gw.lastRange)
	assert.Equal(t, now.AddDate(0, 0, -7), gw.lastRange.From)
	assert.Equal(t, now, gw.lastRange.To)
	assert.Equal(t, derive.Range7d, view.Range)
	assert.Equal(t, "Одржавање", view.Station.StatusLabel)
	assert.Equal(t, []float64{1.0, 6.5}, view.Series.Values)

	require.NotNil(t, view.Latest)
	assert.Equal(t, 6.5, view.Latest.Value)
	assert.Equal(t, models.LevelHigh, view.Latest.Level)
	assert.Equal(t, station.Location, view.Latest.Location)
	assert.Empty(t, view.Message)
}

func TestStationMonitoringWithoutReadings(t *testing.T) {
	gw := &stubGateway{stations: []models.Station{{ID: "a", Name: "A", Status: models.StationActive}}}
	view, err := newService(gw).StationMonitoring(context.Background(), "a", "bogus", now, locale.English)
	require.NoError(t, err)

	assert.Equal(t, derive.Range24h, view.Range)
	assert.Equal(t, now.AddDate(0, 0, -1), view.From)
	assert.Nil(t, view.Latest)
	assert.Equal(t, "No data available for the selected period", view.Message)

	_, err = newService(gw).StationMonitoring(context.Background(), "missing", derive.Range24h, now, locale.English)
	assert.True(t, errors.Is(err, gateway.ErrNotFound))
}

func TestMeasurementDetailsUsesDefaultWindow(t *testing.T) {
	gw := &stubGateway{readings: []models.SensorReading{
		{Timestamp: now, Value: 2.5, Unit: models.UnitVPerM},
		{Timestamp: now.Add(-time.Hour), Value: 1.5, Unit: models.UnitVPerM},
	}}
	gw.lastRange = &models.TimeRange{}

	view := newService(gw).MeasurementDetails(context.Background(), "42", locale.SerbianLatin)
	assert.Nil(t, gw.lastRange)
	assert.Equal(t, models.ID("42"), view.PointID)
	assert.Equal(t, "sr-Latn", view.Locale)
	assert.Equal(t, []float64{1.5, 2.5}, view.Series.Values)
	assert.Empty(t, view.Message)

	empty := newService(&stubGateway{}).MeasurementDetails(context.Background(), "42", locale.English)
	assert.Empty(t, empty.Series.Values)
	assert.Equal(t, "No data available for the selected period", empty.Message)
}

func TestLatestMarker(t *testing.T) {
	gw := &stubGateway{
		stations: []models.Station{{ID: "a", Name: "A", Status: models.StationActive}},
		readings: []models.SensorReading{{Timestamp: now, Value: 2, Unit: models.UnitVPerM}},
	}
	svc := newService(gw)

	marker, ok := svc.LatestMarker(context.Background(), "a", now, locale.English)
	require.True(t, ok)
	assert.Equal(t, models.LevelMedium, marker.Level)
	assert.Equal(t, "Medium", marker.LevelLabel)
	assert.Equal(t, now.AddDate(0, 0, -1), gw.lastRange.From)

	_, ok = svc.LatestMarker(context.Background(), "b", now, locale.English)
	assert.False(t, ok)
	assert.True(t, svc.HasStation(context.Background(), "a"))
}

func TestLegalDocumentsTabs(t *testing.T) {
	gw := &stubGateway{docs: []models.LegalDocument{
		{ID: "1", Title: "ICNIRP Guidelines", Type: models.DocumentInternational, URL: "https://example.org/1", Date: "2020-03-01"},
		{ID: "2", Title: "Council Recommendation", Type: models.DocumentEU, URL: "https://example.org/2", Date: "1999-07-12"},
	}}
	svc := newService(gw)

	view := svc.LegalDocuments(context.Background(), models.DocumentEU, locale.English)
	require.Len(t, view.Documents, 1)
	assert.Equal(t, "European Union", view.Documents[0].TypeLabel)
	require.Len(t, view.Tabs, 4)
	assert.True(t, view.Tabs[2].Active)
	assert.False(t, view.Tabs[0].Active)

	all := svc.LegalDocuments(context.Background(), "", locale.English)
	assert.Len(t, all.Documents, 2)
	assert.True(t, all.Tabs[0].Active)

	none := svc.LegalDocuments(context.Background(), models.DocumentNational, locale.English)
	assert.Empty(t, none.Documents)
	assert.Equal(t, "No documents found", none.Message)
}

func TestExportDelegates(t *testing.T) {
	gw := &stubGateway{}
	newService(gw).Export(context.Background(), models.FormatCSV, models.Filters{}, gateway.SinkFunc(func(string, string, []byte) error { return nil }))
	assert.Equal(t, 1, gw.exported)
}

func TestSubmitContact(t *testing.T) {
	gw := &stubGateway{}
	svc := newService(gw)

	_, err := svc.SubmitContact(context.Background(), models.ContactForm{Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidContact))
	fields := FieldErrors(err)
	require.Len(t, fields, 3)
	assert.Equal(t, "name", fields[0].Field)
	assert.Equal(t, "email", fields[1].Field)
	assert.Equal(t, "message", fields[2].Field)
	assert.Zero(t, gw.submitted)

	form := models.ContactForm{Name: "Ana", Email: "ana@example.com", Message: "Hello"}
	result, err := svc.SubmitContact(context.Background(), form)
	require.NoError(t, err)
	assert.True(t, result.Success)

	gw.contact = gateway.ErrSubmission
	_, err = svc.SubmitContact(context.Background(), form)
	assert.True(t, errors.Is(err, gateway.ErrSubmission))
	assert.Equal(t, 2, gw.submitted)
}

func TestValidateContactEmailForms(t *testing.T) {
	base := models.ContactForm{Name: "Ana", Message: "Hi"}
	for email, valid := range map[string]bool{
		"ana@example.com":       true,
		"Ana <ana@example.com>": false,
		"ana@":                  false,
		"@example.com":          false,
	} {
		form := base
		form.Email = email
		err := ValidateContact(form)
		assert.Equal(t, valid, err == nil, email)
	}
}
