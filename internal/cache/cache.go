// Package cache provides write-once memoization keyed by exact value.
//
// Entries are created lazily on first computation and never mutated: the
// first write for a key wins and every later write for the same key returns
// the original entry. That discipline makes concurrent population from
// parallel recursive branches safe without per-entry coordination. The
// cache is purely an optimization; clearing it must never change a result,
// only speed.
package cache

import (
	"sync"
	"sync/atomic"
)

// Store is a write-once map from decimal value keys to entries of type V.
type Store[V any] struct {
	mu sync.RWMutex
	m  map[string]V

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewStore creates an empty store.
func NewStore[V any]() *Store[V] {
	return &Store[V]{m: make(map[string]V)}
}

// Get returns the entry for key, if present.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	v, ok := s.m[key]
	s.mu.RUnlock()
	if ok {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
	return v, ok
}

// PutOnce inserts value for key unless an entry already exists, and returns
// the winning entry. Two parallel branches requesting the same sub-value
// therefore always observe a single canonical result.
func (s *Store[V]) PutOnce(key string, value V) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.m[key]; ok {
		return existing
	}
	s.m[key] = value
	return value
}

// Len returns the number of entries.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Clear discards every entry. Hit and miss counters survive a clear so
// long-running processes keep meaningful totals.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	s.m = make(map[string]V)
	s.mu.Unlock()
}

// Stats reports cumulative hit and miss counts.
func (s *Store[V]) Stats() Stats {
	return Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
	}
}

// Stats describes a store's lookup history.
type Stats struct {
	Hits   uint64
	Misses uint64
}
