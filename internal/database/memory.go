package database

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// MemoryDB is an in-memory implementation of the Database interface.
// Entries keep their insertion order.
type MemoryDB struct {
	entries []model.Integration
	mu      sync.RWMutex
}

// NewMemoryDB creates a new instance of the in-memory database holding copies of seed
func NewMemoryDB(seed ...model.Integration) *MemoryDB {
	db := &MemoryDB{entries: make([]model.Integration, 0, len(seed))}
	for _, i := range seed {
		db.entries = append(db.entries, i.Clone())
	}
	return db
}

// List retrieves integrations with optional filtering and pagination
func (db *MemoryDB) List(ctx context.Context, filter *IntegrationFilter, cursor string, limit int) ([]*model.Integration, string, error) {
	if ctx.Err() != nil {
		return nil, "", ctx.Err()
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	startIdx := 0
	if cursor != "" {
		idx := db.indexOf(cursor)
		if idx < 0 {
			return nil, "", ErrInvalidInput
		}
		startIdx = idx + 1
	}

	result := []*model.Integration{}
	nextCursor := ""
	for _, entry := range db.entries[startIdx:] {
		if !filter.matches(&entry) {
			continue
		}
		if limit > 0 && len(result) == limit {
			nextCursor = result[len(result)-1].ID
			break
		}
		c := entry.Clone()
		result = append(result, &c)
	}

	return result, nextCursor, nil
}

// GetByID retrieves a single integration by its ID
func (db *MemoryDB) GetByID(ctx context.Context, id string) (*model.Integration, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	idx := db.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	c := db.entries[idx].Clone()
	return &c, nil
}

// Create appends a new integration
func (db *MemoryDB) Create(ctx context.Context, integration *model.Integration) (*model.Integration, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if integration == nil || integration.ID == "" {
		return nil, ErrInvalidInput
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if db.indexOf(integration.ID) >= 0 {
		return nil, ErrAlreadyExists
	}
	db.entries = append(db.entries, integration.Clone())

	c := integration.Clone()
	return &c, nil
}

// Update replaces the integration stored under id, keeping its position
func (db *MemoryDB) Update(ctx context.Context, id string, integration *model.Integration) (*model.Integration, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if integration == nil {
		return nil, ErrInvalidInput
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	idx := db.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	if integration.ID != id && db.indexOf(integration.ID) >= 0 {
		return nil, ErrAlreadyExists
	}
	db.entries[idx] = integration.Clone()

	c := integration.Clone()
	return &c, nil
}

// Delete removes the integration stored under id
func (db *MemoryDB) Delete(ctx context.Context, id string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	idx := db.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	db.entries = slices.Delete(db.entries, idx, idx+1)
	return nil
}

// Close closes the database connection
// For an in-memory database, this is a no-op
func (db *MemoryDB) Close() error {
	return nil
}

func (db *MemoryDB) indexOf(id string) int {
	return slices.IndexFunc(db.entries, func(i model.Integration) bool { return i.ID == id })
}

func (f *IntegrationFilter) matches(i *model.Integration) bool {
	if f == nil {
		return true
	}
	if f.Published != nil && i.Published != *f.Published {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(i.Name), q) && !strings.Contains(strings.ToLower(i.Description), q) {
			return false
		}
	}
	return true
}
