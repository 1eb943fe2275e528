package gateway

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"emfmonitor/backend/libs/metrics"
	"emfmonitor/backend/services/dashboard/internal/models"
)

// countingGateway wraps another gateway and counts reads.
type countingGateway struct {
	Gateway
	stations  atomic.Int32
	campaigns atomic.Int32
	details   atomic.Int32
	sensor    atomic.Int32
	empty     bool
}

func (g *countingGateway) FetchMonitoringStations(ctx context.Context) []models.Station {
	g.stations.Add(1)
	if g.empty {
		return []models.Station{}
	}
	return g.Gateway.FetchMonitoringStations(ctx)
}

func (g *countingGateway) FetchCampaigns(ctx context.Context, filters models.Filters) []models.Campaign {
	g.campaigns.Add(1)
	return g.Gateway.FetchCampaigns(ctx, filters)
}

func (g *countingGateway) FetchCampaignDetails(ctx context.Context, id models.ID) *models.Campaign {
	g.details.Add(1)
	return g.Gateway.FetchCampaignDetails(ctx, id)
}

func (g *countingGateway) FetchSensorData(ctx context.Context, sensorID models.ID, tr *models.TimeRange) []models.SensorReading {
	g.sensor.Add(1)
	return g.Gateway.FetchSensorData(ctx, sensorID, tr)
}

func newCached(t *testing.T, inner *countingGateway) (*Cached, *miniredis.Miniredis, *metrics.Metrics) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	m := metrics.New("test")
	return NewCached(inner, client, time.Minute, zap.NewNop(), m), mr, m
}

func TestCachedServesSecondReadFromRedis(t *testing.T) {
	inner := &countingGateway{Gateway: newSynthetic(0)}
	gw, mr, m := newCached(t, inner)
	ctx := context.Background()

	first := gw.FetchMonitoringStations(ctx)
	second := gw.FetchMonitoringStations(ctx)

	assert.Equal(t, int32(1), inner.stations.Load())
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("emf:cache:stations:all"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues(resourceStations, "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues(resourceStations, "miss")))

	mr.FastForward(2 * time.Minute)
	gw.FetchMonitoringStations(ctx)
	assert.Equal(t, int32(2), inner.stations.Load())
}

func TestCachedKeysByFilters(t *testing.T) {
	inner := &countingGateway{Gateway: newSynthetic(0)}
	gw, mr, _ := newCached(t, inner)
	ctx := context.Background()

	gw.FetchCampaigns(ctx, models.Filters{})
	gw.FetchCampaigns(ctx, models.Filters{Region: "Belgrade"})
	gw.FetchCampaigns(ctx, models.Filters{})

	assert.Equal(t, int32(2), inner.campaigns.Load())
	assert.True(t, mr.Exists("emf:cache:campaigns:_"))
}

func TestCachedSensorDataSharesHourBucket(t *testing.T) {
	inner := &countingGateway{Gateway: newSynthetic(0)}
	gw, mr, _ := newCached(t, inner)
	ctx := context.Background()

	to := fixedNow.Add(17 * time.Minute)
	first := gw.FetchSensorData(ctx, "3", &models.TimeRange{From: to.Add(-24 * time.Hour), To: to})
	to = to.Add(5 * time.Second)
	second := gw.FetchSensorData(ctx, "3", &models.TimeRange{From: to.Add(-24 * time.Hour), To: to})
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), inner.sensor.Load())

	key := "emf:cache:sensor_data:3:" + strconv.FormatInt(fixedNow.Add(-24*time.Hour).Unix(), 10) + "-" + strconv.FormatInt(fixedNow.Unix(), 10)
	assert.True(t, mr.Exists(key))

	next := fixedNow.Add(time.Hour)
	gw.FetchSensorData(ctx, "3", &models.TimeRange{From: next.Add(-24 * time.Hour), To: next})
	assert.Equal(t, int32(2), inner.sensor.Load())

	gw.FetchSensorData(ctx, "4", &models.TimeRange{From: to.Add(-24 * time.Hour), To: to})
	assert.Equal(t, int32(3), inner.sensor.Load())
}

func TestCachedSkipsEmptyAndMissingResults(t *testing.T) {
	inner := &countingGateway{Gateway: newSynthetic(0), empty: true}
	gw, mr, _ := newCached(t, inner)
	ctx := context.Background()

	gw.FetchMonitoringStations(ctx)
	gw.FetchMonitoringStations(ctx)
	assert.Equal(t, int32(2), inner.stations.Load())

	assert.Nil(t, gw.FetchCampaignDetails(ctx, "404"))
	assert.Nil(t, gw.FetchCampaignDetails(ctx, "404"))
	assert.Equal(t, int32(2), inner.details.Load())
	assert.False(t, mr.Exists("emf:cache:campaign:404"))

	detail := gw.FetchCampaignDetails(ctx, "1")
	require.NotNil(t, detail)
	cached := gw.FetchCampaignDetails(ctx, "1")
	require.NotNil(t, cached)
	assert.Equal(t, detail.Stats, cached.Stats)
	assert.Equal(t, int32(3), inner.details.Load())
}

func TestCachedFallsThroughWhenRedisIsDown(t *testing.T) {
	inner := &countingGateway{Gateway: newSynthetic(0)}
	gw, mr, _ := newCached(t, inner)
	mr.Close()

	stations := gw.FetchMonitoringStations(context.Background())
	assert.NotEmpty(t, stations)
	assert.Equal(t, int32(1), inner.stations.Load())
}

func TestCachedPassesWritesThrough(t *testing.T) {
	inner := &countingGateway{Gateway: newSynthetic(0)}
	gw, mr, _ := newCached(t, inner)

	sink := &capturedFile{}
	gw.ExportData(context.Background(), models.FormatJSON, models.Filters{}, sink)
	assert.Equal(t, 1, sink.calls)

	result, err := gw.SubmitContactForm(context.Background(), models.ContactForm{Name: "Ana", Email: "ana@example.com", Message: "hi"})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, mr.Keys())
}
