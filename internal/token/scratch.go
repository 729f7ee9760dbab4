package token

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/triply/triply-go/internal/models"
)

// Scratch is an ephemeral per-session cache holding a created trip's
// canonical payload between creation and first display. Entries are keyed by
// a generated identifier and expire after the TTL; nothing is persisted.
type Scratch struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]scratchEntry
}

type scratchEntry struct {
	trip    *models.Trip
	expires time.Time
}

// NewScratch creates a scratch cache whose entries live for ttl.
func NewScratch(ttl time.Duration) *Scratch {
	return &Scratch{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]scratchEntry),
	}
}

// Put caches a trip and returns its generated key.
func (s *Scratch) Put(trip *models.Trip) string {
	key := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = scratchEntry{trip: trip, expires: s.now().Add(s.ttl)}
	return key
}

// Get returns the cached trip for key, or false when absent or expired.
// Expired entries are dropped on access.
func (s *Scratch) Get(key string) (*models.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().After(entry.expires) {
		delete(s.entries, key)
		return nil, false
	}
	return entry.trip, true
}
