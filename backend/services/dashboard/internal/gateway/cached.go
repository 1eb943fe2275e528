package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"emfmonitor/backend/libs/metrics"
	"emfmonitor/backend/services/dashboard/internal/models"
)

// Cached keeps read results of another gateway in redis for a TTL. Empty results are not
// stored since they may stand for a failed fetch. Exports and submissions pass through.
type Cached struct {
	next    Gateway
	client  *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewCached wraps next with a redis read-through cache.
func NewCached(next Gateway, client *redis.Client, ttl time.Duration, logger *zap.Logger, m *metrics.Metrics) *Cached {
	return &Cached{next: next, client: client, ttl: ttl, logger: logger, metrics: m}
}

func cacheKey(resource, key string) string {
	return fmt.Sprintf("emf:cache:%s:%s", resource, key)
}

// readThrough returns the cached value or loads, stores and returns it. Redis failures
// fall through to load.
func readThrough[T any](ctx context.Context, c *Cached, resource, key string, load func() T, keep func(T) bool) T {
	k := cacheKey(resource, key)

	raw, err := c.client.Get(ctx, k).Bytes()
	switch {
	case err == nil:
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			c.metrics.ObserveCacheLookup(resource, true)
			return cached
		}
		c.logger.Warn("discarding undecodable cache entry", zap.String("key", k))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("cache read failed", zap.String("key", k), zap.Error(err))
	}
	c.metrics.ObserveCacheLookup(resource, false)

	value := load()
	if !keep(value) {
		return value
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("key", k), zap.Error(err))
		return value
	}
	if err := c.client.Set(ctx, k, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", k), zap.Error(err))
	}
	return value
}

func nonEmpty[T any](items []T) bool { return len(items) > 0 }

// FetchMeasurementPoints implements Gateway.
func (c *Cached) FetchMeasurementPoints(ctx context.Context, filters models.Filters) []models.MeasurementPoint {
	return readThrough(ctx, c, resourceMeasurements, filters.CacheKey(), func() []models.MeasurementPoint {
		return c.next.FetchMeasurementPoints(ctx, filters)
	}, nonEmpty[models.MeasurementPoint])
}

// FetchSensorData implements Gateway.
func (c *Cached) FetchSensorData(ctx context.Context, sensorID models.ID, tr *models.TimeRange) []models.SensorReading {
	key := sensorID.String()
	if tr != nil {
		// Readings are hourly, so ranges within the same hours share an entry.
		key += ":" + strconv.FormatInt(tr.From.UTC().Truncate(time.Hour).Unix(), 10) +
			"-" + strconv.FormatInt(tr.To.UTC().Truncate(time.Hour).Unix(), 10)
	}
	return readThrough(ctx, c, resourceSensorData, key, func() []models.SensorReading {
		return c.next.FetchSensorData(ctx, sensorID, tr)
	}, nonEmpty[models.SensorReading])
}

// FetchMonitoringStations implements Gateway.
func (c *Cached) FetchMonitoringStations(ctx context.Context) []models.Station {
	return readThrough(ctx, c, resourceStations, "all", func() []models.Station {
		return c.next.FetchMonitoringStations(ctx)
	}, nonEmpty[models.Station])
}

// FetchCampaigns implements Gateway.
func (c *Cached) FetchCampaigns(ctx context.Context, filters models.Filters) []models.Campaign {
	return readThrough(ctx, c, resourceCampaigns, filters.CacheKey(), func() []models.Campaign {
		return c.next.FetchCampaigns(ctx, filters)
	}, nonEmpty[models.Campaign])
}

// FetchCampaignDetails implements Gateway.
func (c *Cached) FetchCampaignDetails(ctx context.Context, id models.ID) *models.Campaign {
	return readThrough(ctx, c, resourceCampaign, id.String(), func() *models.Campaign {
		return c.next.FetchCampaignDetails(ctx, id)
	}, func(v *models.Campaign) bool { return v != nil })
}

// FetchLegalDocuments implements Gateway.
func (c *Cached) FetchLegalDocuments(ctx context.Context) []models.LegalDocument {
	return readThrough(ctx, c, resourceLegal, "all", func() []models.LegalDocument {
		return c.next.FetchLegalDocuments(ctx)
	}, nonEmpty[models.LegalDocument])
}

// ExportData implements Gateway.
func (c *Cached) ExportData(ctx context.Context, format models.ExportFormat, filters models.Filters, sink Sink) {
	c.next.ExportData(ctx, format, filters, sink)
}

// SubmitContactForm implements Gateway.
func (c *Cached) SubmitContactForm(ctx context.Context, form models.ContactForm) (models.ContactResult, error) {
	return c.next.SubmitContactForm(ctx, form)
}

var _ Gateway = (*Cached)(nil)
