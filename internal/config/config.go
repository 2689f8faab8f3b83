// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds every tunable the binaries need
type Config struct {
	MongoURI      string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string        `env:"MONGO_DB" envDefault:"survey"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	HTTPPort      string        `env:"HTTP_PORT" envDefault:"8080"`
	StatsCacheTTL time.Duration `env:"STATS_CACHE_TTL" envDefault:"1m"`

	// Legacy fixed-column database, read only by the migration command
	LegacySQLitePath string `env:"LEGACY_SQLITE_PATH" envDefault:"survey.db"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// Load reads .env if present, then the environment
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}
