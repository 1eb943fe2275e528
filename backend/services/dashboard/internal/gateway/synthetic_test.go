package gateway

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"emfmonitor/backend/services/dashboard/internal/derive"
	"emfmonitor/backend/services/dashboard/internal/models"
)

func newSynthetic(delay time.Duration) *Synthetic {
	return NewSynthetic(SyntheticConfig{
		Seed:         42,
		ContactDelay: delay,
		Now:          func() time.Time { return fixedNow },
	}, zap.NewNop(), nil)
}

func TestSyntheticCampaignDetailsMatchListing(t *testing.T) {
	gw := newSynthetic(0)
	ctx := context.Background()

	campaigns := gw.FetchCampaigns(ctx, models.Filters{})
	require.Len(t, campaigns, syntheticCampaigns)
	for _, c := range campaigns {
		detail := gw.FetchCampaignDetails(ctx, c.ID)
		require.NotNil(t, detail)
		assert.Equal(t, c, *detail)
	}

	assert.Nil(t, gw.FetchCampaignDetails(ctx, "0"))
	assert.Nil(t, gw.FetchCampaignDetails(ctx, "999"))
	assert.Nil(t, gw.FetchCampaignDetails(ctx, "abc"))
}

func TestSyntheticHonorsFilters(t *testing.T) {
	gw := newSynthetic(0)
	ctx := context.Background()

	high := gw.FetchMeasurementPoints(ctx, models.Filters{Level: models.LevelHigh})
	for _, p := range high {
		assert.Equal(t, models.LevelHigh, p.Level)
	}
	all := gw.FetchMeasurementPoints(ctx, models.Filters{})
	assert.Len(t, all, syntheticPoints)
	assert.Less(t, len(high), len(all))

	for _, c := range gw.FetchCampaigns(ctx, models.Filters{Region: "Belgrade"}) {
		assert.Equal(t, "Belgrade", c.Region)
	}
}

func TestSyntheticSensorDataDefaultsToThirtyDays(t *testing.T) {
	gw := newSynthetic(0)
	readings := gw.FetchSensorData(context.Background(), "1", nil)
	assert.Len(t, readings, 30*24+1)

	ranged := gw.FetchSensorData(context.Background(), "1", &models.TimeRange{From: fixedNow.Add(-24 * time.Hour), To: fixedNow})
	assert.Len(t, ranged, 25)
}

func TestSyntheticCanceledContextYieldsEmpty(t *testing.T) {
	gw := newSynthetic(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Empty(t, gw.FetchMonitoringStations(ctx))
	assert.Nil(t, gw.FetchCampaignDetails(ctx, "1"))
}

func TestSyntheticContactSubmission(t *testing.T) {
	gw := newSynthetic(time.Millisecond)
	result, err := gw.SubmitContactForm(context.Background(), models.ContactForm{Name: "Ana", Email: "ana@example.com", Message: "hi"})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Thank you for your message!", result.Message)
}

func TestSyntheticContactRespectsCancellation(t *testing.T) {
	gw := newSynthetic(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := gw.SubmitContactForm(ctx, models.ContactForm{Name: "Ana", Email: "ana@example.com", Message: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubmission))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestSyntheticExportCSV(t *testing.T) {
	sink := &capturedFile{}
	newSynthetic(0).ExportData(context.Background(), models.FormatCSV, models.Filters{}, sink)

	require.Equal(t, 1, sink.calls)
	assert.Equal(t, "emf-data-2024-06-15.csv", sink.name)
	assert.Equal(t, "text/csv", sink.contentType)

	records, err := csv.NewReader(bytes.NewReader(sink.body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, syntheticExportPoints+1)
	assert.Equal(t, pointColumns, records[0])
}

func TestSyntheticExportJSONContinuous(t *testing.T) {
	sink := &capturedFile{}
	newSynthetic(0).ExportData(context.Background(), models.FormatJSON, models.Filters{DataType: models.DataTypeContinuous}, sink)

	require.Equal(t, 1, sink.calls)
	assert.Equal(t, "emf-data-2024-06-15.json", sink.name)

	var stations []StationSeries
	require.NoError(t, json.Unmarshal(sink.body, &stations))
	require.Len(t, stations, syntheticExportStations)
	assert.Len(t, stations[0].Measurements, syntheticExportDays*24+1)
}

func TestSyntheticExportXLSXCampaigns(t *testing.T) {
	sink := &capturedFile{}
	newSynthetic(0).ExportData(context.Background(), models.FormatXLSX, models.Filters{DataType: models.DataTypeCampaign}, sink)

	require.Equal(t, 1, sink.calls)
	assert.Equal(t, "emf-data-2024-06-15.xlsx", sink.name)

	book, err := excelize.OpenReader(bytes.NewReader(sink.body))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1+syntheticExportCampaign*50)
	assert.Equal(t, "campaignId", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
}

func TestEncodeEmptyDatasetAsJSONArray(t *testing.T) {
	body, err := Dataset{}.Encode(models.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))

	_, err = Dataset{}.Encode("pdf")
	assert.Error(t, err)
}

func TestExportFilenameUsesUTCDay(t *testing.T) {
	east := time.Date(2024, 6, 15, 2, 0, 0, 0, time.FixedZone("UTC+5", 5*3600))
	assert.Equal(t, "emf-data-2024-06-14.csv", ExportFilename(models.FormatCSV, east))
	assert.Equal(t, "emf-data-2024-06-15.json", ExportFilename(models.FormatJSON, fixedNow))
}

func TestPointsJSONExportDecodesToInput(t *testing.T) {
	points := derive.Relevel([]models.MeasurementPoint{
		{ID: "1", Location: models.Location{Lat: 44.81, Lng: 20.46, Address: "Knez Mihailova 5"}, Value: 0.8, Unit: models.UnitVPerM, Timestamp: fixedNow},
		{ID: "pt-2", Location: models.Location{Lat: 45.25, Lng: 19.84}, Value: 4.2, Unit: models.UnitVPerM, Timestamp: fixedNow.Add(-90 * time.Minute)},
		{ID: "3", Location: models.Location{Lat: 43.32, Lng: 21.9}, Value: 7.5, Unit: models.UnitVPerM, Timestamp: fixedNow.AddDate(0, 0, -3)},
	})

	body, err := Dataset{DataType: models.DataTypeMeasurements, Points: points}.Encode(models.FormatJSON)
	require.NoError(t, err)

	var decoded []models.MeasurementPoint
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, points, decoded)
}
