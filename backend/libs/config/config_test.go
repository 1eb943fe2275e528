package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	HTTP struct {
		Port string `yaml:"port" env:"SAMPLE_HTTP_PORT"`
	} `yaml:"http"`
	Upstream struct {
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout" env:"SAMPLE_TIMEOUT"`
	} `yaml:"upstream"`
	Synthetic bool     `yaml:"synthetic" env:"SAMPLE_SYNTHETIC"`
	Origins   []string `yaml:"origins" env:"SAMPLE_ORIGINS"`
	Skipped   string   `env:"-"`
}

func TestLoadConfigRejectsNonPointer(t *testing.T) {
	var cfg sampleConfig
	assert.Error(t, LoadConfig(cfg))
	assert.Error(t, LoadConfig(nil))
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "http:\n  port: \"9000\"\nupstream:\n  url: http://from-file\n  timeout: 3s\nsynthetic: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DOTENV_FILE", "")
	t.Setenv("SAMPLE_SYNTHETIC", "true")
	t.Setenv("SAMPLE_ORIGINS", "http://a.example, http://b.example,")
	t.Setenv("UPSTREAM_URL", "http://from-env")

	var cfg sampleConfig
	require.NoError(t, LoadConfig(&cfg))

	assert.Equal(t, "9000", cfg.HTTP.Port)
	assert.Equal(t, "http://from-env", cfg.Upstream.URL)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.True(t, cfg.Synthetic)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Origins)
}

func TestLoadConfigDurationAsSeconds(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DOTENV_FILE", "")
	t.Setenv("SAMPLE_TIMEOUT", "7")

	var cfg sampleConfig
	require.NoError(t, LoadConfig(&cfg))
	assert.Equal(t, 7*time.Second, cfg.Upstream.Timeout)
}

func TestLoadConfigDotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SAMPLE_HTTP_PORT=7777\nSAMPLE_TIMEOUT=2s\n"), 0o600))

	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DOTENV_FILE", path)
	t.Setenv("SAMPLE_HTTP_PORT", "8080")
	t.Setenv("SAMPLE_TIMEOUT", "")
	os.Unsetenv("SAMPLE_TIMEOUT")

	var cfg sampleConfig
	require.NoError(t, LoadConfig(&cfg))
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout)
	os.Unsetenv("SAMPLE_TIMEOUT")
}

func TestLoadConfigMissingExplicitDotEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DOTENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	var cfg sampleConfig
	assert.Error(t, LoadConfig(&cfg))
}

func TestLoadConfigInvalidBool(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DOTENV_FILE", "")
	t.Setenv("SAMPLE_SYNTHETIC", "sometimes")

	var cfg sampleConfig
	err := LoadConfig(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAMPLE_SYNTHETIC")
}
