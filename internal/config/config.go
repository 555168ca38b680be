package config

import (
	"fmt"
	"strings"
	"time"

	pkgconfig "github.com/cintaaprilianti/medina-stuff-sub001/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Commerce API the storefront fronts.
	UpstreamBaseURL string `env:"UPSTREAM_BASE_URL" envDefault:"http://localhost:3000/api"`

	// Redis session store. Leave RedisAddr empty to run on the in-memory
	// store (single replica, state lost on restart).
	RedisAddr string `env:"REDIS_ADDR" envDefault:""`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Session TTL in hours (default: 7 days)
	SessionTTLHours int `env:"SESSION_TTL_HOURS" envDefault:"168"`

	// Catalog cache window in minutes.
	CatalogCacheTTLMinutes int `env:"CATALOG_CACHE_TTL_MINUTES" envDefault:"15"`

	// Kafka. Leave brokers empty to disable event publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"" envSeparator:","`

	// Rate limiting
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"100"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SessionTTL returns the session TTL as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// CatalogCacheTTL returns the catalog cache window as a duration.
func (c *Config) CatalogCacheTTL() time.Duration {
	return time.Duration(c.CatalogCacheTTLMinutes) * time.Minute
}

// KafkaEnabled reports whether event publishing is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0 && c.KafkaBrokers[0] != ""
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if !strings.HasPrefix(c.UpstreamBaseURL, "http://") && !strings.HasPrefix(c.UpstreamBaseURL, "https://") {
		return fmt.Errorf("invalid upstream base URL: %q", c.UpstreamBaseURL)
	}
	if c.CatalogCacheTTLMinutes < 1 {
		return fmt.Errorf("catalog cache TTL must be at least 1 minute, got %d", c.CatalogCacheTTLMinutes)
	}
	return nil
}
