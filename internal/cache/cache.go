// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache provides a bounded in-memory key/value store with a fixed
// TTL, used by the search orchestrator to short-circuit repeated lookups.
//
// Eviction is by insertion order, not LRU: when the population exceeds the
// cap, the single oldest-inserted entry is removed. Reads never reorder
// entries, and expiry is checked lazily on read.
package cache

import (
	"sync"
	"time"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultMaxEntries is the maximum population before the oldest
	// insertion is evicted.
	DefaultMaxEntries = 100

	// DefaultTTL is how long an entry is served after insertion.
	DefaultTTL = 5 * time.Minute
)

// =============================================================================
// STORE
// =============================================================================

// Store is a bounded TTL cache keyed by string.
// The zero value is not usable; construct with New.
type Store[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	order      []string // insertion order, oldest first
	maxEntries int
	ttl        time.Duration

	// now is swapped out by tests to drive expiry deterministically.
	now func() time.Time

	hits      int
	misses    int
	evictions int
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Stats holds counters for observability.
type Stats struct {
	Hits      int
	Misses    int
	Evictions int
	Entries   int
}

// New creates a store with the given limits. Non-positive arguments fall
// back to the defaults.
func New[V any](maxEntries int, ttl time.Duration) *Store[V] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store[V]{
		entries:    make(map[string]entry[V]),
		order:      make([]string, 0, maxEntries),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Get returns the value stored under key if it exists and has not expired.
// Expired entries are removed on read. A hit does not refresh the entry's
// age or its position in the eviction order.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	e, ok := s.entries[key]
	if !ok {
		s.misses++
		return zero, false
	}
	if s.now().Sub(e.storedAt) >= s.ttl {
		s.removeLocked(key)
		s.misses++
		return zero, false
	}

	s.hits++
	return e.value, true
}

// Put stores value under key, refreshing the timestamp. Re-inserting an
// existing key keeps its original position in the eviction order. When the
// population exceeds the cap, the single oldest-inserted entry is evicted.
func (s *Store[V]) Put(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists {
		s.order = append(s.order, key)
	}
	s.entries[key] = entry[V]{value: value, storedAt: s.now()}

	if len(s.entries) > s.maxEntries {
		oldest := s.order[0]
		s.removeLocked(oldest)
		s.evictions++
	}
}

// Len returns the current population.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear removes all entries.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry[V])
	s.order = s.order[:0]
}

// Stats returns a snapshot of the store's counters.
func (s *Store[V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
		Entries:   len(s.entries),
	}
}

// removeLocked deletes key from the map and the order slice. Caller holds
// the lock.
func (s *Store[V]) removeLocked(key string) {
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
