package gateway

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"emfmonitor/backend/libs/metrics"
	"emfmonitor/backend/services/dashboard/internal/derive"
	"emfmonitor/backend/services/dashboard/internal/generator"
	"emfmonitor/backend/services/dashboard/internal/models"
)

const (
	syntheticPoints         = 50
	syntheticStations       = 10
	syntheticCampaigns      = 10
	syntheticExportPoints   = 100
	syntheticExportStations = 5
	syntheticExportDays     = 7
	syntheticExportCampaign = 2

	contactReply = "Thank you for your message!"
)

// Synthetic serves generated stand-in data. Filters are honored the way the backend would.
type Synthetic struct {
	gen          *generator.Generator
	logger       *zap.Logger
	metrics      *metrics.Metrics
	contactDelay time.Duration
	now          func() time.Time
}

// SyntheticConfig tunes the synthetic source.
type SyntheticConfig struct {
	Seed         int64
	ContactDelay time.Duration
	Now          func() time.Time
}

// NewSynthetic builds the generator-backed gateway.
func NewSynthetic(cfg SyntheticConfig, logger *zap.Logger, m *metrics.Metrics) *Synthetic {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Synthetic{
		gen:          generator.New(generator.Config{Seed: cfg.Seed, Now: now}),
		logger:       logger.With(zap.String("source", SourceSynthetic)),
		metrics:      m,
		contactDelay: cfg.ContactDelay,
		now:          now,
	}
}

// FetchMeasurementPoints implements Gateway.
func (g *Synthetic) FetchMeasurementPoints(ctx context.Context, filters models.Filters) []models.MeasurementPoint {
	start := time.Now()
	if g.canceled(ctx, resourceMeasurements, start) {
		return []models.MeasurementPoint{}
	}
	points := derive.FilterPoints(g.gen.MeasurementPoints(syntheticPoints), filters)
	observe(g.metrics, SourceSynthetic, resourceMeasurements, start, len(points), nil)
	return points
}

// FetchSensorData implements Gateway. Without a range the last 30 days are returned.
func (g *Synthetic) FetchSensorData(ctx context.Context, sensorID models.ID, tr *models.TimeRange) []models.SensorReading {
	start := time.Now()
	if g.canceled(ctx, resourceSensorData, start) {
		return []models.SensorReading{}
	}
	var readings []models.SensorReading
	if tr == nil {
		readings = g.gen.RecentSeries(sensorID, 0)
	} else {
		readings = g.gen.TimeSeries(sensorID, tr.From, tr.To)
	}
	observe(g.metrics, SourceSynthetic, resourceSensorData, start, len(readings), nil)
	return readings
}

// FetchMonitoringStations implements Gateway.
func (g *Synthetic) FetchMonitoringStations(ctx context.Context) []models.Station {
	start := time.Now()
	if g.canceled(ctx, resourceStations, start) {
		return []models.Station{}
	}
	stations := g.gen.Stations(syntheticStations)
	observe(g.metrics, SourceSynthetic, resourceStations, start, len(stations), nil)
	return stations
}

// FetchCampaigns implements Gateway.
func (g *Synthetic) FetchCampaigns(ctx context.Context, filters models.Filters) []models.Campaign {
	start := time.Now()
	if g.canceled(ctx, resourceCampaigns, start) {
		return []models.Campaign{}
	}
	campaigns := derive.FilterCampaigns(g.gen.Campaigns(syntheticCampaigns), filters)
	observe(g.metrics, SourceSynthetic, resourceCampaigns, start, len(campaigns), nil)
	return campaigns
}

// FetchCampaignDetails implements Gateway. Known ids are the ones FetchCampaigns lists.
func (g *Synthetic) FetchCampaignDetails(ctx context.Context, id models.ID) *models.Campaign {
	start := time.Now()
	if g.canceled(ctx, resourceCampaign, start) {
		return nil
	}
	n, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil || n < 1 || n > syntheticCampaigns {
		g.logger.Info("campaign not found", zap.String("campaign_id", id.String()), zap.Error(ErrNotFound))
		observe(g.metrics, SourceSynthetic, resourceCampaign, start, 0, nil)
		return nil
	}
	campaign := g.gen.Campaign(n)
	observe(g.metrics, SourceSynthetic, resourceCampaign, start, 1, nil)
	return &campaign
}

// FetchLegalDocuments implements Gateway.
func (g *Synthetic) FetchLegalDocuments(ctx context.Context) []models.LegalDocument {
	start := time.Now()
	if g.canceled(ctx, resourceLegal, start) {
		return []models.LegalDocument{}
	}
	docs := g.gen.LegalDocuments()
	observe(g.metrics, SourceSynthetic, resourceLegal, start, len(docs), nil)
	return docs
}

// ExportData implements Gateway.
func (g *Synthetic) ExportData(ctx context.Context, format models.ExportFormat, filters models.Filters, sink Sink) {
	start := time.Now()
	if g.canceled(ctx, resourceExport, start) {
		return
	}
	body, err := g.dataset(filters).Encode(format)
	if err != nil {
		g.logger.Error("export encode failed", zap.String("format", string(format)), zap.Error(err))
		observe(g.metrics, SourceSynthetic, resourceExport, start, 0, err)
		return
	}
	filename := ExportFilename(format, g.now())
	if err := sink.Save(filename, format.ContentType(), body); err != nil {
		g.logger.Error("export save failed", zap.String("filename", filename), zap.Error(err))
		observe(g.metrics, SourceSynthetic, resourceExport, start, 0, err)
		return
	}
	observe(g.metrics, SourceSynthetic, resourceExport, start, len(body), nil)
}

func (g *Synthetic) dataset(filters models.Filters) Dataset {
	switch filters.DataType {
	case models.DataTypeContinuous:
		stations := g.gen.Stations(syntheticExportStations)
		series := make([]StationSeries, 0, len(stations))
		for _, s := range stations {
			series = append(series, StationSeries{
				StationID:    s.ID,
				StationName:  s.Name,
				Location:     s.Location,
				Measurements: g.gen.RecentSeries(s.ID, syntheticExportDays),
			})
		}
		return Dataset{DataType: models.DataTypeContinuous, Stations: series}
	case models.DataTypeCampaign:
		return Dataset{DataType: models.DataTypeCampaign, Campaigns: g.gen.Campaigns(syntheticExportCampaign)}
	default:
		return Dataset{DataType: models.DataTypeMeasurements, Points: g.gen.MeasurementPoints(syntheticExportPoints)}
	}
}

// SubmitContactForm implements Gateway. It always succeeds after the configured delay.
func (g *Synthetic) SubmitContactForm(ctx context.Context, form models.ContactForm) (models.ContactResult, error) {
	start := time.Now()
	if g.contactDelay > 0 {
		timer := time.NewTimer(g.contactDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			err := fmt.Errorf("%w: %w", ErrSubmission, ctx.Err())
			observe(g.metrics, SourceSynthetic, resourceContact, start, 0, err)
			return models.ContactResult{}, err
		case <-timer.C:
		}
	}
	g.logger.Info("contact form received",
		zap.String("reference", uuid.NewString()),
		zap.String("subject", form.Subject),
	)
	observe(g.metrics, SourceSynthetic, resourceContact, start, 1, nil)
	return models.ContactResult{Success: true, Message: contactReply}, nil
}

func (g *Synthetic) canceled(ctx context.Context, resource string, start time.Time) bool {
	if err := ctx.Err(); err != nil {
		g.logger.Warn("synthetic read canceled", zap.String("resource", resource), zap.Error(err))
		observe(g.metrics, SourceSynthetic, resource, start, 0, err)
		return true
	}
	return false
}

var _ Gateway = (*Synthetic)(nil)
