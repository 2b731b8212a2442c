// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Sessions are ephemeral by design: nothing survives a process restart.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Tracks each owner's most recent session so a browser can resume it.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Errors are returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/totototosssss/num/internal/game"
)

// ErrNotFound is returned when no session matches the lookup.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a session, making it the owner's current one.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*game.Session, error)

	// FindByOwner retrieves the owner's most recently saved session.
	FindByOwner(ctx context.Context, owner string) (*game.Session, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session // keyed by Session.ID
	byOwner  map[string]string        // owner → latest Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		sessions: make(map[string]*game.Session),
		byOwner:  make(map[string]string),
	}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	if s.Owner != "" {
		m.byOwner[s.Owner] = s.ID
	}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) FindByOwner(ctx context.Context, owner string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.byOwner[owner]; ok {
		if s, ok := m.sessions[id]; ok {
			return s, nil
		}
	}
	return nil, ErrNotFound
}
