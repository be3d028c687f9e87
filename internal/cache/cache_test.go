// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPut(t *testing.T) {
	s := New[string](10, time.Minute)

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Put("k", "v")
	got, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	stats := s.Stats()
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestTTLExpiry(t *testing.T) {
	s := New[int](10, 5*time.Minute)

	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	s.Put("k", 42)

	// Just inside the window.
	clock = clock.Add(5*time.Minute - time.Second)
	_, ok := s.Get("k")
	assert.True(t, ok)

	// At the boundary the entry is expired and removed on read.
	clock = clock.Add(time.Second)
	_, ok = s.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

// Inserting a 101st distinct key must evict exactly the first-inserted key,
// regardless of how recently it was read.
func TestEvictionIsInsertionOrderNotLRU(t *testing.T) {
	s := New[int](100, time.Minute)

	for i := 0; i < 100; i++ {
		s.Put(fmt.Sprintf("key-%d", i), i)
	}

	// Touch the oldest key; under LRU this would protect it.
	_, ok := s.Get("key-0")
	require.True(t, ok)

	s.Put("key-100", 100)

	_, ok = s.Get("key-0")
	assert.False(t, ok, "oldest insertion must be evicted even after a recent read")
	_, ok = s.Get("key-1")
	assert.True(t, ok)
	_, ok = s.Get("key-100")
	assert.True(t, ok)
	assert.Equal(t, 100, s.Len())
}

func TestReinsertKeepsPosition(t *testing.T) {
	s := New[int](2, time.Minute)

	s.Put("a", 1)
	s.Put("b", 2)
	s.Put("a", 3) // refresh value, position unchanged: "a" is still oldest
	s.Put("c", 4) // exceeds cap, evicts "a"

	_, ok := s.Get("a")
	assert.False(t, ok)
	got, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestClear(t *testing.T) {
	s := New[int](10, time.Minute)
	s.Put("a", 1)
	s.Put("b", 2)
	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, ok := s.Get("a")
	assert.False(t, ok)
}
