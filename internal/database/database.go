package database

import (
	"context"
	"errors"

	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// Common database errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabase      = errors.New("database error")
)

// IntegrationFilter narrows a List call. Zero values do not filter.
type IntegrationFilter struct {
	Published *bool
	// Search is matched case-insensitively against name and description
	Search string
}

// Database stores integrations. Implementations return copies the caller may mutate.
type Database interface {
	// List returns integrations in insertion order, starting after cursor. A limit <= 0 returns everything.
	List(ctx context.Context, filter *IntegrationFilter, cursor string, limit int) ([]*model.Integration, string, error)
	// GetByID retrieves a single integration by its ID
	GetByID(ctx context.Context, id string) (*model.Integration, error)
	// Create stores a new integration
	Create(ctx context.Context, integration *model.Integration) (*model.Integration, error)
	// Update replaces the stored integration with the given ID
	Update(ctx context.Context, id string, integration *model.Integration) (*model.Integration, error)
	// Delete removes the integration with the given ID
	Delete(ctx context.Context, id string) error
	// Close closes the database connection
	Close() error
}

// ConnectionType represents the type of database connection
type ConnectionType string

const (
	ConnectionTypeMemory     ConnectionType = "memory"
	ConnectionTypePostgreSQL ConnectionType = "postgresql"
	ConnectionTypeMongoDB    ConnectionType = "mongodb"
)
