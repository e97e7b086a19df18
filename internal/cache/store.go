package cache

import (
	"fmt"
	"sync"
	"time"
)

// Store is a concurrency-safe expiring key-value store for one namespace.
//
// Get is the single source of truth for freshness: every read re-checks the
// entry's expiry (lazy expiration). The periodic sweep is never required for
// read correctness; it only bounds memory held by entries nobody reads again.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]entry
	clock   Clock
}

type entry struct {
	value     any
	expiresAt time.Time
}

// NewStore creates an empty store using clock for expiry decisions.
func NewStore(clock Clock) *Store {
	return &Store{
		entries: make(map[Key]entry),
		clock:   clock,
	}
}

// Get returns the live value for key. An entry found at or past its expiry is
// deleted and reported as absent.
func (s *Store) Get(key Key) (any, bool) {
	now := s.clock.Now()

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if !now.Before(e.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock: the entry may have been replaced
		// with a fresh one since the read above.
		if cur, ok := s.entries[key]; ok && !now.Before(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Put stores value under key for ttl, unconditionally replacing any prior
// entry. A non-positive ttl is a caller bug and is rejected before any state
// changes.
func (s *Store) Put(key Key, value any, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("%w: non-positive ttl %v", ErrInvalidConfig, ttl)
	}

	expiresAt := s.clock.Now().Add(ttl)

	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

// Delete removes key if present.
func (s *Store) Delete(key Key) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Sweep removes every entry expired as of now and returns how many were
// removed. Unexpired entries are untouched.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// Size reports the live entry count, including entries that have expired but
// have not yet been swept or read.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
