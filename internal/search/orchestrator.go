// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ahamlabs/aham/internal/cache"
)

// Provider is one search backend. Both bundled clients satisfy it.
type Provider interface {
	Search(ctx context.Context, query string) (*Result, error)
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator routes queries to a backend and caches every outcome,
// successful or not, so a repeated query never re-dispatches within the
// cache TTL.
type Orchestrator struct {
	wikipedia Provider
	duckduck  Provider
	cache     *cache.Store[Result]

	mu    sync.Mutex
	stats Stats
}

// OrchestratorConfig wires the orchestrator. Nil providers get the default
// clients; a nil cache gets the default bounds.
type OrchestratorConfig struct {
	Wikipedia  Provider
	DuckDuckGo Provider
	Cache      *cache.Store[Result]
}

// NewOrchestrator builds an orchestrator from cfg.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	if cfg.Wikipedia == nil {
		cfg.Wikipedia = NewWikipediaClient(WikipediaConfig{})
	}
	if cfg.DuckDuckGo == nil {
		cfg.DuckDuckGo = NewDuckDuckGoClient(DuckDuckGoConfig{})
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.New[Result](0, 0)
	}
	return &Orchestrator{
		wikipedia: cfg.Wikipedia,
		duckduck:  cfg.DuckDuckGo,
		cache:     cfg.Cache,
	}
}

// Search resolves query via the requested source. The cache key uses the
// requested source, so an "auto" lookup and an explicit one are cached
// independently even when they hit the same backend.
func (o *Orchestrator) Search(ctx context.Context, query string, source Source) *Result {
	if !source.Valid() {
		source = SourceAuto
	}

	q := CleanQuery(query)
	if q == "" {
		return &Result{
			Source:    source,
			Query:     q,
			Err:       ErrEmptyQuery.Error(),
			Timestamp: time.Now(),
		}
	}

	o.count(func(s *Stats) { s.Lookups++ })

	key := string(source) + ":" + q
	if cached, ok := o.cache.Get(key); ok {
		o.count(func(s *Stats) { s.CacheHits++ })
		return &cached
	}

	res := o.dispatch(ctx, q, source)
	if !res.Success {
		o.count(func(s *Stats) { s.Failures++ })
	}

	// Failures are cached too: a backend that just refused a query will
	// refuse it again for the next few minutes.
	o.cache.Put(key, *res)
	return res
}

func (o *Orchestrator) dispatch(ctx context.Context, q string, source Source) *Result {
	switch source {
	case SourceWikipedia:
		return o.callWikipedia(ctx, q)
	case SourceDuckDuckGo:
		return o.callDuckDuckGo(ctx, q)
	}

	// Auto routing: factual and definitional queries go to Wikipedia
	// first; anything else, or a Wikipedia miss, falls through to
	// DuckDuckGo silently.
	if preferWikipedia(q) {
		if res := o.callWikipedia(ctx, q); res.Success {
			return res
		}
		log.Printf("search: wikipedia had no answer for %q, falling back", q)
	}
	return o.callDuckDuckGo(ctx, q)
}

func (o *Orchestrator) callWikipedia(ctx context.Context, q string) *Result {
	o.count(func(s *Stats) { s.Wikipedia++ })
	res, err := o.wikipedia.Search(ctx, q)
	if err != nil {
		return failureResult(SourceWikipedia, q, err)
	}
	return res
}

func (o *Orchestrator) callDuckDuckGo(ctx context.Context, q string) *Result {
	o.count(func(s *Stats) { s.DuckDuckGo++ })
	res, err := o.duckduck.Search(ctx, q)
	if err != nil {
		return failureResult(SourceDuckDuckGo, q, err)
	}
	return res
}

func failureResult(source Source, q string, err error) *Result {
	return &Result{
		Source:    source,
		Query:     q,
		Err:       err.Error(),
		Results:   []Item{degradedItem(source, q)},
		Timestamp: time.Now(),
	}
}

// Stats returns a snapshot of the orchestrator counters.
func (o *Orchestrator) Stats() Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats
}

// CacheStats exposes the underlying cache counters.
func (o *Orchestrator) CacheStats() cache.Stats {
	return o.cache.Stats()
}

// ClearCache drops all cached lookups.
func (o *Orchestrator) ClearCache() {
	o.cache.Clear()
}

func (o *Orchestrator) count(f func(*Stats)) {
	o.mu.Lock()
	f(&o.stats)
	o.mu.Unlock()
}
