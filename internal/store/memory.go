// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Sessions are ephemeral: games are never persisted, so memory is the only
// backend.
//
// Characteristics:
//   - Stores *session.Session values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Idle sessions can be evicted with Evict or the Janitor loop.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-core/internal/session"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store defines the registry interface for live sessions.
type Store interface {
	// Save adds or replaces a session under its ID.
	Save(ctx context.Context, s *session.Session) error

	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session is not registered.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Delete closes and removes a session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Evict closes and removes sessions idle since before cutoff.
	Evict(ctx context.Context, cutoff time.Time) int

	// Len returns the number of live sessions.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex                // guards sessions map
	sessions map[string]*session.Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*session.Session)}
}

// Save adds or replaces the session in the map. A replaced session is closed.
func (m *memory) Save(ctx context.Context, s *session.Session) error {
	m.mu.Lock()
	old, ok := m.sessions[s.ID()]
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	if ok && old != s {
		old.Close()
	}
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
	return nil
}

func (m *memory) Evict(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	var idle []*session.Session
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	return len(idle)
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Janitor evicts sessions idle longer than ttl every interval until ctx is done.
func Janitor(ctx context.Context, st Store, ttl, interval time.Duration, logger zerolog.Logger) {
	if ttl <= 0 || interval <= 0 {
		return
	}
	logger = logger.With().Str("component", "janitor").Logger()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := st.Evict(ctx, now.Add(-ttl)); n > 0 {
				logger.Info().Int("evicted", n).Int("live", st.Len()).Msg("evicted idle sessions")
			}
		}
	}
}
