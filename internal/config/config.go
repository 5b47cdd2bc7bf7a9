package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

type DatabaseType string

const (
	DatabaseTypeMemory     DatabaseType = "memory"
	DatabaseTypePostgreSQL DatabaseType = "postgresql"
	DatabaseTypeMongoDB    DatabaseType = "mongodb"
)

// StorageType selects the key-value backend drafts are persisted to
type StorageType string

const (
	StorageTypeNone   StorageType = "none"
	StorageTypeMemory StorageType = "memory"
	StorageTypeFile   StorageType = "file"
	StorageTypeRedis  StorageType = "redis"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "MCP_BUILDER_"

// Config holds the application configuration
type Config struct {
	ServerAddress string       `env:"SERVER_ADDRESS" envDefault:":8080"`
	DatabaseType  DatabaseType `env:"DATABASE_TYPE" envDefault:"memory"`
	DatabaseURL   string       `env:"DATABASE_URL" envDefault:"postgres://localhost:5432/mcp-builder?sslmode=disable"`
	DatabaseName  string       `env:"DATABASE_NAME" envDefault:"mcp-builder"`
	SeedFrom      string       `env:"SEED_FROM" envDefault:""`
	Version       string       `env:"VERSION" envDefault:"dev"`

	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	PrettyLogs bool   `env:"PRETTY_LOGS" envDefault:"false"`

	// Proxy and simulated service
	ProxyTarget     string `env:"PROXY_TARGET" envDefault:"http://localhost:8000"`
	SimulateLatency bool   `env:"SIMULATE_LATENCY" envDefault:"true"`

	// Draft storage
	StorageType       StorageType `env:"STORAGE_TYPE" envDefault:"memory"`
	StoragePath       string      `env:"STORAGE_PATH" envDefault:"mcp-drafts.json"`
	StorageQuotaBytes int         `env:"STORAGE_QUOTA_BYTES" envDefault:"5242880"`
	RedisAddr         string      `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword     string      `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB           int         `env:"REDIS_DB" envDefault:"0"`
	AutosaveSchedule  string      `env:"AUTOSAVE_SCHEDULE" envDefault:"*/30 * * * * *"`
}

// Load parses the environment into a Config
func Load() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseType {
	case DatabaseTypeMemory, DatabaseTypePostgreSQL, DatabaseTypeMongoDB:
	default:
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}
	switch c.StorageType {
	case StorageTypeNone, StorageTypeMemory, StorageTypeFile, StorageTypeRedis:
	default:
		return fmt.Errorf("unsupported storage type %q", c.StorageType)
	}
	if c.StorageQuotaBytes < 0 {
		return fmt.Errorf("storage quota must not be negative: %d", c.StorageQuotaBytes)
	}
	return nil
}
