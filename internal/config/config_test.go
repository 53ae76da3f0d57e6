package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	// Run from an empty directory so no ./config/config.yaml or .env is picked up.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "chart", cfg.Market.Source)
	assert.Equal(t, "INR=X", cfg.Market.FXSymbol)
	assert.Equal(t, 3600, cfg.Market.CacheTTL)
	assert.Equal(t, time.Hour, cfg.Market.TTL())
	assert.Equal(t, 30*time.Second, cfg.Market.Timeout())
	assert.Equal(t, 5, cfg.Market.RateLimit)
	assert.Empty(t, cfg.Market.CatalogFile)

	assert.Equal(t, "0.0.0.0", cfg.API.Host)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.API.Addr())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.API.CORSOrigins)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AGRITRADE_MARKET_CACHE_TTL", "120")
	t.Setenv("AGRITRADE_MARKET_SOURCE", "page")
	t.Setenv("AGRITRADE_API_PORT", "9191")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Market.CacheTTL)
	assert.Equal(t, "page", cfg.Market.Source)
	assert.Equal(t, 9191, cfg.API.Port)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AGRITRADE_LOGGING_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("AGRITRADE_LOGGING_LEVEL") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

// ── LoadFromFile ──

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	cfgPath := filepath.Join(tmpDir, "test_config.yaml")
	content := []byte(`
market:
  source: "page"
  fx_symbol: "USDINR=X"
  cache_ttl: 900
  rate_limit: 0
  catalog_file: "/etc/agritrade/commodities.yaml"
api:
  port: 9090
  cors_origins: ["*"]
logging:
  level: "debug"
  format: "json"
`)
	require.NoError(t, os.WriteFile(cfgPath, content, 0o644))

	cfg, err := LoadFromFile(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "page", cfg.Market.Source)
	assert.Equal(t, "USDINR=X", cfg.Market.FXSymbol)
	assert.Equal(t, 15*time.Minute, cfg.Market.TTL())
	assert.Equal(t, 0, cfg.Market.RateLimit)
	assert.Equal(t, "/etc/agritrade/commodities.yaml", cfg.Market.CatalogFile)
	assert.Equal(t, 30, cfg.Market.RequestTimeout, "unset keys keep defaults")
	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, []string{"*"}, cfg.API.CORSOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	cfgPath := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("market:\n  source: bloomberg\n  cache_ttl: 0\n"), 0o644))

	_, err := LoadFromFile(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Source")
	assert.Contains(t, err.Error(), "CacheTTL")
}

// ── Validate ──

func TestValidate(t *testing.T) {
	valid := Config{
		Market:  MarketConfig{Source: "chart", FXSymbol: "INR=X", CacheTTL: 3600, RequestTimeout: 30},
		API:     APIConfig{Port: 8080},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
	assert.NoError(t, Validate(&valid))

	bad := valid
	bad.API.Port = 70000
	assert.ErrorContains(t, Validate(&bad), "Port")

	bad = valid
	bad.Market.BaseURL = "not a url"
	assert.ErrorContains(t, Validate(&bad), "BaseURL")

	bad = valid
	bad.Logging.Format = "xml"
	assert.ErrorContains(t, Validate(&bad), "Format")
}
