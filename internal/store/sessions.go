package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// ErrSessionNotFound is returned when a session id is unknown
var ErrSessionNotFound = errors.New("session not found")

type session struct {
	store   *Store
	created time.Time
}

// Sessions keeps one Store per builder session
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*session
	now      func() time.Time
}

// NewSessions creates an empty session registry
func NewSessions() *Sessions {
	return &Sessions{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// Create opens a new session with an empty store
func (s *Sessions) Create() (string, *Store) {
	id := uuid.NewString()
	st := New()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{store: st, created: s.now()}
	return id, st
}

// Get returns the store of a session
func (s *Sessions) Get(id string) (*Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.store, nil
}

// Delete closes a session
func (s *Sessions) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// List returns the ids of all open sessions, oldest first
func (s *Sessions) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(a, b int) bool {
		ca, cb := s.sessions[ids[a]].created, s.sessions[ids[b]].created
		if ca.Equal(cb) {
			return ids[a] < ids[b]
		}
		return ca.Before(cb)
	})
	return ids
}

// Snapshots returns the integration currently held by every session that has one
func (s *Sessions) Snapshots() []model.Integration {
	ids := s.List()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Integration, 0, len(ids))
	for _, id := range ids {
		sess, ok := s.sessions[id]
		if !ok {
			continue
		}
		if i := sess.store.State().Integration; i != nil {
			out = append(out, i.Clone())
		}
	}
	return out
}
