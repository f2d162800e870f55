package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the cosmic weather service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8080"`

	// NASA DONKI configuration. DEMO_KEY works without registration but
	// carries aggressive rate limits.
	NASAAPIKey   string `env:"NASA_API_KEY,default=DEMO_KEY"`
	DONKIBaseURL string `env:"DONKI_BASE_URL,default=https://api.nasa.gov/DONKI"`

	// NOAA SWPC data sources
	NOAAScalesURL string `env:"NOAA_SCALES_URL,default=https://services.swpc.noaa.gov/products/noaa-scales.json"`
	SWPCNewsURL   string `env:"SWPC_NEWS_URL,default=https://www.swpc.noaa.gov/rss.xml"`

	// Aggregation configuration
	CacheTTL     time.Duration `env:"CACHE_TTL,default=5m"`
	LookbackDays int           `env:"LOOKBACK_DAYS,default=30"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
