package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"emfmonitor/backend/libs/metrics"
	"emfmonitor/backend/services/dashboard/internal/clients"
	"emfmonitor/backend/services/dashboard/internal/derive"
	"emfmonitor/backend/services/dashboard/internal/models"
)

// Remote serves every resource from the measurement backend over HTTP. Responses are
// validated here so downstream code can assume well-formed records.
type Remote struct {
	client  *clients.EMFClient
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewRemote builds the HTTP-backed gateway.
func NewRemote(client *clients.EMFClient, logger *zap.Logger, m *metrics.Metrics, now func() time.Time) *Remote {
	if now == nil {
		now = time.Now
	}
	return &Remote{
		client:  client,
		logger:  logger.With(zap.String("source", SourceRemote)),
		metrics: m,
		now:     now,
	}
}

// FetchMeasurementPoints implements Gateway.
func (g *Remote) FetchMeasurementPoints(ctx context.Context, filters models.Filters) []models.MeasurementPoint {
	start := time.Now()
	list, err := g.client.ListMeasurements(ctx, filters)
	if err != nil {
		g.readFailed(resourceMeasurements, start, err)
		return []models.MeasurementPoint{}
	}
	points := g.validPoints(resourceMeasurements, list.Items, len(list.Rejected))
	observe(g.metrics, SourceRemote, resourceMeasurements, start, len(points), nil)
	return points
}

// FetchSensorData implements Gateway. Readings come back in ascending time order.
func (g *Remote) FetchSensorData(ctx context.Context, sensorID models.ID, tr *models.TimeRange) []models.SensorReading {
	start := time.Now()
	list, err := g.client.SensorData(ctx, sensorID, tr)
	if err != nil {
		g.readFailed(resourceSensorData, start, err, zap.String("sensor_id", sensorID.String()))
		return []models.SensorReading{}
	}
	readings := make([]models.SensorReading, 0, len(list.Items))
	dropped := len(list.Rejected)
	for _, r := range list.Items {
		if err := r.Validate(); err != nil {
			dropped++
			continue
		}
		readings = append(readings, r)
	}
	g.logDropped(resourceSensorData, dropped)
	observe(g.metrics, SourceRemote, resourceSensorData, start, len(readings), nil)
	return derive.SortReadings(readings)
}

// FetchMonitoringStations implements Gateway.
func (g *Remote) FetchMonitoringStations(ctx context.Context) []models.Station {
	start := time.Now()
	list, err := g.client.ListStations(ctx)
	if err != nil {
		g.readFailed(resourceStations, start, err)
		return []models.Station{}
	}
	stations := make([]models.Station, 0, len(list.Items))
	dropped := len(list.Rejected)
	for _, s := range list.Items {
		if err := s.Validate(); err != nil {
			g.logger.Debug("dropping invalid station", zap.Error(err))
			dropped++
			continue
		}
		stations = append(stations, s)
	}
	g.logDropped(resourceStations, dropped)
	observe(g.metrics, SourceRemote, resourceStations, start, len(stations), nil)
	return stations
}

// FetchCampaigns implements Gateway.
func (g *Remote) FetchCampaigns(ctx context.Context, filters models.Filters) []models.Campaign {
	start := time.Now()
	list, err := g.client.ListCampaigns(ctx, filters)
	if err != nil {
		g.readFailed(resourceCampaigns, start, err)
		return []models.Campaign{}
	}
	campaigns := make([]models.Campaign, 0, len(list.Items))
	dropped := len(list.Rejected)
	for _, c := range list.Items {
		normalized, err := g.normalizeCampaign(c)
		if err != nil {
			g.logger.Debug("dropping invalid campaign", zap.Error(err))
			dropped++
			continue
		}
		campaigns = append(campaigns, normalized)
	}
	g.logDropped(resourceCampaigns, dropped)
	observe(g.metrics, SourceRemote, resourceCampaigns, start, len(campaigns), nil)
	return campaigns
}

// FetchCampaignDetails implements Gateway. A 404 and any failure both yield nil.
func (g *Remote) FetchCampaignDetails(ctx context.Context, id models.ID) *models.Campaign {
	start := time.Now()
	campaign, err := g.client.GetCampaign(ctx, id)
	if err != nil {
		var statusErr *clients.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			g.logger.Info("campaign not found", zap.String("campaign_id", id.String()), zap.Error(ErrNotFound))
			observe(g.metrics, SourceRemote, resourceCampaign, start, 0, nil)
			return nil
		}
		g.readFailed(resourceCampaign, start, err, zap.String("campaign_id", id.String()))
		return nil
	}
	normalized, err := g.normalizeCampaign(*campaign)
	if err != nil {
		g.logger.Warn("invalid campaign payload", zap.String("campaign_id", id.String()), zap.Error(err))
		observe(g.metrics, SourceRemote, resourceCampaign, start, 0, err)
		return nil
	}
	observe(g.metrics, SourceRemote, resourceCampaign, start, 1, nil)
	return &normalized
}

// FetchLegalDocuments implements Gateway.
func (g *Remote) FetchLegalDocuments(ctx context.Context) []models.LegalDocument {
	start := time.Now()
	list, err := g.client.ListLegalDocuments(ctx)
	if err != nil {
		g.readFailed(resourceLegal, start, err)
		return []models.LegalDocument{}
	}
	docs := make([]models.LegalDocument, 0, len(list.Items))
	dropped := len(list.Rejected)
	for _, d := range list.Items {
		if err := d.Validate(); err != nil {
			dropped++
			continue
		}
		docs = append(docs, d)
	}
	g.logDropped(resourceLegal, dropped)
	observe(g.metrics, SourceRemote, resourceLegal, start, len(docs), nil)
	return docs
}

// ExportData implements Gateway. The backend renders the blob; failures are only logged.
func (g *Remote) ExportData(ctx context.Context, format models.ExportFormat, filters models.Filters, sink Sink) {
	start := time.Now()
	body, contentType, err := g.client.Download(ctx, format, filters)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrTransport, err)
		g.logger.Error("export download failed", zap.String("format", string(format)), zap.Error(err))
		observe(g.metrics, SourceRemote, resourceExport, start, 0, err)
		return
	}
	if contentType == "" {
		contentType = format.ContentType()
	}
	filename := ExportFilename(format, g.now())
	if err := sink.Save(filename, contentType, body); err != nil {
		g.logger.Error("export save failed", zap.String("filename", filename), zap.Error(err))
		observe(g.metrics, SourceRemote, resourceExport, start, 0, err)
		return
	}
	observe(g.metrics, SourceRemote, resourceExport, start, len(body), nil)
}

// SubmitContactForm implements Gateway.
func (g *Remote) SubmitContactForm(ctx context.Context, form models.ContactForm) (models.ContactResult, error) {
	start := time.Now()
	result, err := g.client.SubmitContact(ctx, form)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSubmission, err)
		g.logger.Error("contact submission failed", zap.Error(err))
		observe(g.metrics, SourceRemote, resourceContact, start, 0, err)
		return models.ContactResult{}, err
	}
	observe(g.metrics, SourceRemote, resourceContact, start, 1, nil)
	return result, nil
}

func (g *Remote) validPoints(resource string, items []models.MeasurementPoint, rejected int) []models.MeasurementPoint {
	points := make([]models.MeasurementPoint, 0, len(items))
	dropped := rejected
	for _, p := range items {
		if err := p.Validate(); err != nil {
			dropped++
			continue
		}
		points = append(points, derive.RelevelPoint(p))
	}
	g.logDropped(resource, dropped)
	return points
}

// normalizeCampaign drops invalid points and re-derives levels and stats.
func (g *Remote) normalizeCampaign(c models.Campaign) (models.Campaign, error) {
	if err := c.Validate(); err != nil {
		return models.Campaign{}, err
	}
	c.Points = g.validPoints(resourceCampaign, c.Points, 0)
	return derive.RecomputeStats(c), nil
}

func (g *Remote) readFailed(resource string, start time.Time, err error, fields ...zap.Field) {
	err = fmt.Errorf("%w: %w", ErrTransport, err)
	fields = append(fields, zap.String("resource", resource), zap.Error(err))
	g.logger.Warn("remote read failed, returning empty result", fields...)
	observe(g.metrics, SourceRemote, resource, start, 0, err)
}

func (g *Remote) logDropped(resource string, dropped int) {
	if dropped > 0 {
		g.logger.Warn("dropped invalid records", zap.String("resource", resource), zap.Int("count", dropped))
	}
}

var _ Gateway = (*Remote)(nil)
