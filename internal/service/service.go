package service

import (
	"context"

	"github.com/mcpbuilder/mcp-builder/internal/database"
	v0 "github.com/mcpbuilder/mcp-builder/pkg/api/v0"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// IntegrationService defines the interface for integration operations.
// By-id operations return database.ErrNotFound for unknown ids.
type IntegrationService interface {
	// List retrieves integrations with cursor-based pagination
	List(ctx context.Context, filter *database.IntegrationFilter, cursor string, limit int) ([]model.Integration, string, error)
	// GetAll retrieves every integration
	GetAll(ctx context.Context) ([]model.Integration, error)
	// GetByID retrieves a single integration
	GetByID(ctx context.Context, id string) (*model.Integration, error)
	// Create stores a new integration built from the defaults with patch on top
	Create(ctx context.Context, patch model.IntegrationPatch) (*model.Integration, error)
	// Update merges patch into an integration and refreshes its update timestamp
	Update(ctx context.Context, id string, patch model.IntegrationPatch) (*model.Integration, error)
	// Delete removes an integration
	Delete(ctx context.Context, id string) error
	// Publish validates an integration and marks it published
	Publish(ctx context.Context, id string) (*model.Integration, error)
	// Fork copies an integration under a new id
	Fork(ctx context.Context, id string) (*model.Integration, error)
	// Execute runs a query against an integration
	Execute(ctx context.Context, id, query string) (*v0.ExecutionResult, error)
	// UsageStats returns the dashboard counters
	UsageStats(ctx context.Context) (*v0.UsageStats, error)
}
