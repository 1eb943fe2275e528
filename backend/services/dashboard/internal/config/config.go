package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "emfmonitor/backend/libs/config"
)

const (
	defaultPort         = "8080"
	defaultHTTPTimeout  = 5 * time.Second
	defaultCacheTTL     = time.Minute
	defaultLiveInterval = 30 * time.Second
	defaultContactDelay = time.Second
)

// Config defines dashboard configuration.
type Config struct {
	HTTP struct {
		Port        string   `yaml:"port" env:"DASHBOARD_HTTP_PORT"`
		CORSOrigins []string `yaml:"corsOrigins" env:"DASHBOARD_CORS_ORIGINS"`
	} `yaml:"http"`
	Source struct {
		APIURL       string        `yaml:"apiUrl" env:"EMF_API_URL"`
		UseSynthetic bool          `yaml:"useSynthetic" env:"EMF_USE_SYNTHETIC"`
		Seed         int64         `yaml:"seed" env:"EMF_SYNTHETIC_SEED"`
		ContactDelay time.Duration `yaml:"contactDelay" env:"EMF_CONTACT_DELAY"`
		HTTPTimeout  time.Duration `yaml:"httpTimeout" env:"EMF_HTTP_TIMEOUT"`
	} `yaml:"source"`
	Redis struct {
		Addr     string        `yaml:"addr" env:"DASHBOARD_REDIS_ADDR"`
		Password string        `yaml:"password" env:"DASHBOARD_REDIS_PASSWORD"`
		DB       int           `yaml:"db" env:"DASHBOARD_REDIS_DB"`
		CacheTTL time.Duration `yaml:"cacheTtl" env:"DASHBOARD_CACHE_TTL"`
	} `yaml:"redis"`
	Live struct {
		Interval time.Duration `yaml:"interval" env:"DASHBOARD_LIVE_INTERVAL"`
	} `yaml:"live"`
}

// Load configuration via shared helper. The source is fixed here for the process lifetime.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = defaultPort
	cfg.Source.HTTPTimeout = defaultHTTPTimeout
	cfg.Source.ContactDelay = defaultContactDelay
	cfg.Redis.CacheTTL = defaultCacheTTL
	cfg.Live.Interval = defaultLiveInterval

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	if !c.Source.UseSynthetic && strings.TrimSpace(c.Source.APIURL) == "" {
		return errors.New("config: EMF_API_URL required unless EMF_USE_SYNTHETIC is set")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: invalid redis db %d", c.Redis.DB)
	}
	return nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = defaultPort
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// HTTPTimeout returns the backend client timeout.
func (c *Config) HTTPTimeout() time.Duration {
	if c.Source.HTTPTimeout <= 0 {
		return defaultHTTPTimeout
	}
	return c.Source.HTTPTimeout
}

// SourceName names the configured data source.
func (c *Config) SourceName() string {
	if c.Source.UseSynthetic {
		return "synthetic"
	}
	return "remote"
}
