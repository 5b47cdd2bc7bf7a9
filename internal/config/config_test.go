package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, DatabaseTypeMemory, cfg.DatabaseType)
	assert.Equal(t, "dev", cfg.Version)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://localhost:8000", cfg.ProxyTarget)
	assert.True(t, cfg.SimulateLatency)
	assert.Equal(t, StorageTypeMemory, cfg.StorageType)
	assert.Equal(t, 5*1024*1024, cfg.StorageQuotaBytes)
	assert.Equal(t, "*/30 * * * * *", cfg.AutosaveSchedule)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("MCP_BUILDER_SERVER_ADDRESS", ":9090")
	t.Setenv("MCP_BUILDER_DATABASE_TYPE", "mongodb")
	t.Setenv("MCP_BUILDER_DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("MCP_BUILDER_SIMULATE_LATENCY", "false")
	t.Setenv("MCP_BUILDER_STORAGE_TYPE", "redis")
	t.Setenv("MCP_BUILDER_REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, DatabaseTypeMongoDB, cfg.DatabaseType)
	assert.Equal(t, "mongodb://localhost:27017", cfg.DatabaseURL)
	assert.False(t, cfg.SimulateLatency)
	assert.Equal(t, StorageTypeRedis, cfg.StorageType)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown database", "MCP_BUILDER_DATABASE_TYPE", "sqlite"},
		{"unknown storage", "MCP_BUILDER_STORAGE_TYPE", "s3"},
		{"negative quota", "MCP_BUILDER_STORAGE_QUOTA_BYTES", "-1"},
		{"malformed bool", "MCP_BUILDER_PRETTY_LOGS", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
