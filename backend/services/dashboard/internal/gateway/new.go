package gateway

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"emfmonitor/backend/libs/metrics"
	"emfmonitor/backend/services/dashboard/internal/clients"
)

const defaultHTTPTimeout = 10 * time.Second

// Options select and configure the gateway implementation.
type Options struct {
	UseSynthetic bool
	BaseURL      string
	HTTPClient   clients.HTTPDoer

	Seed         int64
	ContactDelay time.Duration

	// Redis enables the read cache when non-nil.
	Redis    *redis.Client
	CacheTTL time.Duration

	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// New builds the gateway once; callers never switch sources afterwards.
func New(opts Options) (Gateway, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("gateway")

	var gw Gateway
	if opts.UseSynthetic {
		gw = NewSynthetic(SyntheticConfig{
			Seed:         opts.Seed,
			ContactDelay: opts.ContactDelay,
			Now:          opts.Now,
		}, logger, opts.Metrics)
	} else {
		if opts.BaseURL == "" {
			return nil, errors.New("gateway: base url is required for the remote source")
		}
		httpClient := opts.HTTPClient
		if httpClient == nil {
			httpClient = clients.NewDefaultHTTPClient(defaultHTTPTimeout)
		}
		gw = NewRemote(clients.NewEMFClient(opts.BaseURL, httpClient), logger, opts.Metrics, opts.Now)
	}

	if opts.Redis != nil && opts.CacheTTL > 0 {
		gw = NewCached(gw, opts.Redis, opts.CacheTTL, logger.Named("cache"), opts.Metrics)
	}
	return gw, nil
}
