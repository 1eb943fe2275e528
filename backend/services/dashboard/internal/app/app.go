package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"emfmonitor/backend/libs/metrics"
	libredis "emfmonitor/backend/libs/redis"
	"emfmonitor/backend/services/dashboard/internal/clients"
	"emfmonitor/backend/services/dashboard/internal/config"
	"emfmonitor/backend/services/dashboard/internal/gateway"
	httpserver "emfmonitor/backend/services/dashboard/internal/http"
	"emfmonitor/backend/services/dashboard/internal/http/handlers"
	"emfmonitor/backend/services/dashboard/internal/http/middleware"
	"emfmonitor/backend/services/dashboard/internal/live"
	"emfmonitor/backend/services/dashboard/internal/service"
)

const metricsNamespace = "dashboard"

// App wires dashboard dependencies.
type App struct {
	server      *httpserver.Server
	hub         *live.Hub
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	m := metrics.New(metricsNamespace)

	redisClient, err := libredis.NewRedisClient(ctx, libredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	switch {
	case errors.Is(err, libredis.ErrDisabled):
		logger.Info("redis not configured, gateway cache disabled")
	case err != nil:
		return nil, fmt.Errorf("app: connect redis: %w", err)
	}

	gw, err := gateway.New(gateway.Options{
		UseSynthetic: cfg.Source.UseSynthetic,
		BaseURL:      cfg.Source.APIURL,
		HTTPClient:   clients.NewDefaultHTTPClient(cfg.HTTPTimeout()),
		Seed:         cfg.Source.Seed,
		ContactDelay: cfg.Source.ContactDelay,
		Redis:        redisClient,
		CacheTTL:     cfg.Redis.CacheTTL,
		Logger:       logger,
		Metrics:      m,
	})
	if err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, err
	}
	logger.Info("data gateway ready", zap.String("source", cfg.SourceName()), zap.Bool("cache", redisClient != nil))

	svc := service.NewDashboardService(gw, logger.Named("service"))

	hub := live.NewHub(svc, cfg.Live.Interval, logger.Named("live"), m)
	liveServer := live.NewServer(hub, 0, middleware.OriginChecker(cfg.HTTP.CORSOrigins), logger.Named("live"))

	router := httpserver.NewRouter(httpserver.RouterDeps{
		MeasurementsHandlers: handlers.NewMeasurementsHandlers(svc, logger),
		CampaignsHandlers:    handlers.NewCampaignsHandlers(svc, logger),
		StationsHandlers:     handlers.NewStationsHandlers(svc, liveServer, nil, logger),
		LegalHandlers:        handlers.NewLegalHandlers(svc, logger),
		DownloadHandlers:     handlers.NewDownloadHandlers(svc, logger),
		ContactHandlers:      handlers.NewContactHandlers(svc, logger),
		HealthHandler:        handlers.NewHealthHandler(cfg.SourceName()),
		Metrics:              m,
		CORSOrigins:          cfg.HTTP.CORSOrigins,
	})

	server := httpserver.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		middleware.RequestIDMiddleware(),
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
	)

	return &App{
		server:      server,
		hub:         hub,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Handler exposes the wrapped HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

// Run serves HTTP traffic and the live feed until ctx ends.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		a.hub.Start(ctx)
	}()

	err := a.server.Run(ctx)
	cancel()
	<-hubDone
	return err
}

// Close releases resources.
func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
