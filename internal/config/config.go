// Package config handles configuration loading for agritrade.
// It supports YAML config files with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "AGRITRADE"

// Config represents the complete application configuration.
type Config struct {
	Market  MarketConfig  `mapstructure:"market"  yaml:"market"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// MarketConfig holds upstream price source and snapshot cache settings.
type MarketConfig struct {
	// Source selects the upstream: "chart" (JSON API) or "page" (HTML scrape).
	Source string `mapstructure:"source" yaml:"source" validate:"oneof=chart page"`

	// BaseURL overrides the upstream host.
	BaseURL string `mapstructure:"base_url" yaml:"base_url" validate:"omitempty,url"`

	FXSymbol string `mapstructure:"fx_symbol" yaml:"fx_symbol" validate:"required"`

	// Durations in seconds.
	CacheTTL       int `mapstructure:"cache_ttl"       yaml:"cache_ttl"       validate:"gt=0"`
	RequestTimeout int `mapstructure:"request_timeout" yaml:"request_timeout" validate:"gt=0"`

	// RateLimit is upstream requests per second; 0 means unlimited.
	RateLimit int `mapstructure:"rate_limit" yaml:"rate_limit" validate:"gte=0"`

	// CatalogFile is an optional external commodity table.
	CatalogFile string `mapstructure:"catalog_file" yaml:"catalog_file"`
}

// TTL returns the snapshot cache lifetime.
func (m MarketConfig) TTL() time.Duration {
	return time.Duration(m.CacheTTL) * time.Second
}

// Timeout returns the upstream request timeout.
func (m MarketConfig) Timeout() time.Duration {
	return time.Duration(m.RequestTimeout) * time.Second
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"         validate:"min=1,max=65535"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Addr returns the listen address.
func (a APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.agritrade/config.yaml (home directory)
//  3. /etc/agritrade/config.yaml (system)
//
// A .env file in the working directory is loaded first if present.
// Environment variables override config file values.
// Format: AGRITRADE_<SECTION>_<KEY>, e.g., AGRITRADE_MARKET_CACHE_TTL
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".agritrade"))
	v.AddConfigPath("/etc/agritrade")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Market defaults
	v.SetDefault("market.source", "chart")
	v.SetDefault("market.base_url", "")
	v.SetDefault("market.fx_symbol", "INR=X")
	v.SetDefault("market.cache_ttl", 3600) // 1 hour
	v.SetDefault("market.request_timeout", 30)
	v.SetDefault("market.rate_limit", 5)
	v.SetDefault("market.catalog_file", "")

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

var validate = validator.New()

// Validate checks the configuration against its field constraints.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed validation: %s (value: '%v')", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(msgs, "\n  "))
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
