// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"regexp"
	"strings"

	"github.com/ahamlabs/aham/internal/util"
)

var disallowedRe = regexp.MustCompile(`[^\w\s-]`)

// CleanQuery normalizes a raw query for lookup and cache keying: strip
// punctuation other than hyphens, collapse whitespace, lowercase.
func CleanQuery(raw string) string {
	q := disallowedRe.ReplaceAllString(raw, "")
	q = util.CollapseWhitespace(q)
	return strings.ToLower(strings.TrimSpace(q))
}

// factualPrefixes mark questions whose answer is an encyclopedia entry
// rather than open web results.
var factualPrefixes = []string{
	"who is", "who was", "who were",
	"what is", "what was", "what are",
	"when did", "when was", "when is",
	"where is", "where was",
	"define", "definition of", "meaning of",
	"history of", "biography of",
}

// preferWikipedia reports whether an auto-routed query should go to
// Wikipedia first. The query must already be normalized by CleanQuery.
func preferWikipedia(query string) bool {
	for _, p := range factualPrefixes {
		if strings.HasPrefix(query, p+" ") || query == p {
			return true
		}
	}
	// Short noun-phrase queries read as topic lookups.
	words := strings.Fields(query)
	return len(words) > 0 && len(words) <= 3 && !strings.ContainsAny(query, "0123456789")
}

// stripFactualPrefix removes a leading question prefix so the remainder
// can be used as a Wikipedia page title.
func stripFactualPrefix(query string) string {
	for _, p := range factualPrefixes {
		if strings.HasPrefix(query, p+" ") {
			return strings.TrimSpace(query[len(p):])
		}
	}
	return query
}
