package store

import (
	"sync"

	"github.com/ghpulse/ghpulse/internal/models"
)

// MemoryStore is the in-memory event store shared between the single
// poller (writer) and concurrent metrics queries (readers).
//
// It is append-only: events are never mutated or removed, and the
// sequence preserves arrival order. Arrival order is not guaranteed to
// match created_at order; consumers sort when they need chronology.
// Unbounded growth is accepted.
type MemoryStore struct {
	mu     sync.RWMutex
	events []models.Event
	seen   map[string]struct{}
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		seen: make(map[string]struct{}),
	}
}

// TryAppend stores the event unless its ID was already seen.
// It returns false (and changes nothing) for duplicates, so repeated
// deliveries of the same feed item are idempotent.
func (s *MemoryStore) TryAppend(ev models.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.seen[ev.ID]; dup {
		return false
	}
	s.seen[ev.ID] = struct{}{}
	s.events = append(s.events, ev)
	return true
}

// Snapshot returns a consistent copy of all stored events in arrival
// order. An in-flight append is either fully visible or not at all.
func (s *MemoryStore) Snapshot() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Count returns the number of distinct events stored.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
