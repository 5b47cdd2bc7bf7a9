package service

import (
	"time"

	"github.com/mcpbuilder/mcp-builder/internal/database"
)

// NewFakeIntegrationService creates a service over an in-memory database holding
// the example integrations, without artificial latency
//
//nolint:ireturn // Factory function intentionally returns interface for dependency injection
func NewFakeIntegrationService(opts ...Option) IntegrationService {
	opts = append([]Option{WithLatency(NoLatency())}, opts...)
	return NewIntegrationService(database.NewSeededMemoryDB(time.Now().UTC()), opts...)
}
