package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

const (
	keyPrefix = "mcp_"
	indexKey  = "mcp_list"
)

// ItemKey is the storage key of one integration
func ItemKey(id string) string {
	return keyPrefix + id
}

// LocalStore saves integrations under mcp_<id> and keeps their ids in the mcp_list index.
// Failures are logged and swallowed. A nil Storage turns every call into a no-op.
type LocalStore struct {
	storage Storage
	logger  *zap.Logger
	now     func() time.Time
	mu      sync.Mutex
}

// NewLocalStore creates a LocalStore over storage, which may be nil
func NewLocalStore(storage Storage, logger *zap.Logger) *LocalStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalStore{storage: storage, logger: logger, now: time.Now}
}

// Enabled reports whether a storage backend is attached
func (s *LocalStore) Enabled() bool {
	return s.storage != nil
}

// Save writes the integration and adds its id to the index. It reports whether both were written;
// when the index cannot be updated the record is removed again.
func (s *LocalStore) Save(ctx context.Context, i *model.Integration) bool {
	if s.storage == nil || i == nil {
		return false
	}

	data, err := json.Marshal(i)
	if err != nil {
		s.logger.Error("failed to encode integration", zap.String("id", i.ID), zap.Error(err))
		return false
	}
	if err := s.storage.SetItem(ctx, ItemKey(i.ID), string(data)); err != nil {
		s.logger.Error("failed to save integration", zap.String("id", i.ID), zap.Error(err))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.readIndex(ctx)
	if slices.Contains(ids, i.ID) {
		return true
	}
	if err := s.writeIndex(ctx, append(ids, i.ID)); err != nil {
		s.logger.Error("failed to index integration", zap.String("id", i.ID), zap.Error(err))
		if err := s.storage.RemoveItem(ctx, ItemKey(i.ID)); err != nil {
			s.logger.Error("failed to remove unindexed integration", zap.String("id", i.ID), zap.Error(err))
		}
		return false
	}
	return true
}

// Load returns the saved integration, or nil when it is missing or unreadable
func (s *LocalStore) Load(ctx context.Context, id string) *model.Integration {
	if s.storage == nil {
		return nil
	}

	raw, ok, err := s.storage.GetItem(ctx, ItemKey(id))
	if err != nil {
		s.logger.Error("failed to load integration", zap.String("id", id), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var i model.Integration
	if err := json.Unmarshal([]byte(raw), &i); err != nil {
		s.logger.Warn("skipping unreadable integration", zap.String("id", id), zap.Error(err))
		return nil
	}
	return &i
}

// LoadAll returns every indexed integration that can be read, in index order
func (s *LocalStore) LoadAll(ctx context.Context) []model.Integration {
	if s.storage == nil {
		return []model.Integration{}
	}

	s.mu.Lock()
	ids := s.readIndex(ctx)
	s.mu.Unlock()

	out := make([]model.Integration, 0, len(ids))
	for _, id := range ids {
		if i := s.Load(ctx, id); i != nil {
			out = append(out, *i)
		}
	}
	return out
}

// IDs returns the indexed ids
func (s *LocalStore) IDs(ctx context.Context) []string {
	if s.storage == nil {
		return []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readIndex(ctx)
}

// Delete removes the integration and its index entry
func (s *LocalStore) Delete(ctx context.Context, id string) {
	if s.storage == nil {
		return
	}

	if err := s.storage.RemoveItem(ctx, ItemKey(id)); err != nil {
		s.logger.Error("failed to delete integration", zap.String("id", id), zap.Error(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.readIndex(ctx)
	if idx := slices.Index(ids, id); idx >= 0 {
		if err := s.writeIndex(ctx, slices.Delete(ids, idx, idx+1)); err != nil {
			s.logger.Error("failed to update index", zap.String("id", id), zap.Error(err))
		}
	}
}

// CreateNew returns a fresh default integration. Nothing is written.
func (s *LocalStore) CreateNew() model.Integration {
	now := s.now().UTC()
	return model.NewIntegration(model.NewID(now), now)
}

func (s *LocalStore) readIndex(ctx context.Context) []string {
	raw, ok, err := s.storage.GetItem(ctx, indexKey)
	if err != nil {
		s.logger.Error("failed to read index", zap.Error(err))
		return []string{}
	}
	if !ok {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.logger.Warn("index is unreadable, starting over", zap.Error(err))
		return []string{}
	}
	return ids
}

func (s *LocalStore) writeIndex(ctx context.Context, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := s.storage.SetItem(ctx, indexKey, string(data)); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}
