package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"emfmonitor/backend/services/dashboard/internal/config"
)

func syntheticConfig() *config.Config {
	cfg := &config.Config{}
	cfg.HTTP.Port = "0"
	cfg.Source.UseSynthetic = true
	cfg.Source.Seed = 3
	cfg.Redis.CacheTTL = time.Minute
	cfg.Live.Interval = time.Hour
	return cfg
}

func TestNewServesSyntheticData(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := syntheticConfig()
	cfg.Redis.Addr = mr.Addr()

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/stations")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Monitoring Station")
	assert.True(t, mr.Exists("emf:cache:stations:all"))

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.JSONEq(t, `{"status":"ok","source":"synthetic"}`, string(body))
}

func TestNewWithoutRedis(t *testing.T) {
	a, err := New(context.Background(), syntheticConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, a.redisClient)
	a.Close()
}

func TestNewFailsOnUnreachableRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := syntheticConfig()
	cfg.Redis.Addr = addr
	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewFailsWithoutRemoteURL(t *testing.T) {
	cfg := syntheticConfig()
	cfg.Source.UseSynthetic = false
	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	a, err := New(context.Background(), syntheticConfig(), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
