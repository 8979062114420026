package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime settings of the clinic backend
type Config struct {
	// RedisAddr is the cache backend address
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	// RedisPassword is the cache backend password, if any
	RedisPassword string `env:"REDIS_PASSWORD"`

	// DatabasePath is the SQLite file backing the durable store
	DatabasePath string `env:"DATABASE_PATH" envDefault:"clinic.db"`

	// CacheTTL bounds how stale a cached entity may be
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"15m"`
}

// Load parses configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return &cfg, nil
}
