// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package search queries external knowledge sources (Wikipedia and
// DuckDuckGo) and caches the outcomes. The Orchestrator is the only entry
// point the assistant uses; it owns source selection, caching, and
// degraded fallbacks so that a lookup always yields something displayable.
package search

import (
	"fmt"
	"net/url"
	"time"
)

// =============================================================================
// SOURCES
// =============================================================================

// Source identifies which backend a query is routed to. SourceAuto lets
// the orchestrator pick based on the query shape.
type Source string

const (
	SourceWikipedia  Source = "wikipedia"
	SourceDuckDuckGo Source = "duckduckgo"
	SourceAuto       Source = "auto"
)

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	switch s {
	case SourceWikipedia, SourceDuckDuckGo, SourceAuto:
		return true
	}
	return false
}

// =============================================================================
// RESULTS
// =============================================================================

// Item kinds. The kind tells the renderer how much weight to give an
// entry; it mirrors what the backend actually returned.
const (
	ItemSummary       = "summary"
	ItemSearchResult  = "search_result"
	ItemInstantAnswer = "instant_answer"
	ItemDefinition    = "definition"
	ItemRelatedTopic  = "related_topic"
	ItemFallback      = "fallback"
)

// Item is one displayable search hit.
type Item struct {
	Title     string
	Summary   string
	URL       string
	Thumbnail string
	Type      string
}

// degradedItem is the synthetic entry shown when a backend is
// unreachable. It names the failed source and links to a manual search
// the user can open instead.
func degradedItem(source Source, query string) Item {
	name := "the search backend"
	searchURL := "https://duckduckgo.com/?q=" + url.QueryEscape(query)
	switch source {
	case SourceWikipedia:
		name = "Wikipedia"
		searchURL = "https://en.wikipedia.org/wiki/Special:Search?search=" + url.QueryEscape(query)
	case SourceDuckDuckGo:
		name = "DuckDuckGo"
	}
	return Item{
		Title:   "Search unavailable",
		Summary: fmt.Sprintf("Could not reach %s for %q. Open the web search to continue.", name, query),
		URL:     searchURL,
		Type:    ItemFallback,
	}
}

// Result is the outcome of one lookup. A degraded lookup still carries at
// least one Item so the caller always has something to show; Success
// records whether the backend actually answered.
type Result struct {
	Source    Source
	Query     string
	Success   bool
	Err       string
	Results   []Item
	Timestamp time.Time
}

// Degraded reports whether the lookup failed but still carries placeholder
// results a caller can display, such as an open-in-browser link.
func (r *Result) Degraded() bool {
	return !r.Success && len(r.Results) > 0
}

// Stats aggregates orchestrator counters with the underlying cache
// counters.
type Stats struct {
	Lookups    int
	CacheHits  int
	Wikipedia  int
	DuckDuckGo int
	Failures   int
}
