package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	LogLevel    string `koanf:"log_level"`

	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Quota    QuotaConfig    `koanf:"quota"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

type RateLimitConfig struct {
	RequestsPerSecond int `koanf:"requests_per_second"`
	BurstSize         int `koanf:"burst_size"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// QuotaConfig carries the platform-wide admission constants. They are
// resolved here once at startup; nothing looks quotas up by string name
// at admission time.
type QuotaConfig struct {
	// MaxConcurrentAuctions caps overlapping auctions per seller (K).
	MaxConcurrentAuctions int `koanf:"max_concurrent_auctions"`

	// MaxConcurrentPerCategory caps overlapping auctions per seller
	// within one category (M).
	MaxConcurrentPerCategory int `koanf:"max_concurrent_per_category"`

	// MinDescriptionDistance is the smallest edit distance allowed
	// between a new description and any active one (L).
	MinDescriptionDistance int `koanf:"min_description_distance"`

	// Fallback per-account limits when no row exists for the account.
	DefaultMaxActiveBids   int `koanf:"default_max_active_bids"`
	DefaultMaxOpenListings int `koanf:"default_max_open_listings"`

	// LimitsCacheTTL bounds staleness of cached per-account limits.
	LimitsCacheTTL time.Duration `koanf:"limits_cache_ttl"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := &Config{
		Version:     "dev",
		Environment: "development",
		LogLevel:    "info",
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 100,
				BurstSize:         200,
			},
		},
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Quota: QuotaConfig{
			MaxConcurrentAuctions:    10,
			MaxConcurrentPerCategory: 3,
			MinDescriptionDistance:   20,
			DefaultMaxActiveBids:     25,
			DefaultMaxOpenListings:   50,
			LimitsCacheTTL:           time.Minute,
		},
	}

	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		path = "configs/config.yaml"
	}
	// Config file is optional; env vars and defaults cover the rest.
	_ = k.Load(file.Provider(path), yaml.Parser())

	if err := k.Load(env.Provider("AXB_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "AXB_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Quota.MaxConcurrentAuctions <= 0 {
		return fmt.Errorf("quota.max_concurrent_auctions must be positive")
	}
	if c.Quota.MaxConcurrentPerCategory <= 0 {
		return fmt.Errorf("quota.max_concurrent_per_category must be positive")
	}
	if c.Quota.MinDescriptionDistance < 0 {
		return fmt.Errorf("quota.min_description_distance cannot be negative")
	}
	if c.Quota.MaxConcurrentPerCategory > c.Quota.MaxConcurrentAuctions {
		return fmt.Errorf("quota.max_concurrent_per_category cannot exceed quota.max_concurrent_auctions")
	}
	return nil
}
