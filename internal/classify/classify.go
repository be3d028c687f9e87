// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package classify turns a raw model response into a tagged intent.
//
// The model is instructed to lead its response with one of a small set of
// literal markers ([PRESENTATION], [DIAGRAM], [WIKIPEDIA:term],
// [SEARCH:term], [VISUAL]). Detection is prefix-based and ordered: the
// first structural match wins, so a response can never carry more than one
// primary intent. Anything without a leading marker is plain prose.
package classify

import "strings"

// =============================================================================
// INTENT
// =============================================================================

// Intent is the classified purpose of a model response. The type is a
// closed enumeration so "at most one intent" is enforced structurally
// rather than by convention.
type Intent int

const (
	// IntentPlain is prose with no leading marker.
	IntentPlain Intent = iota
	// IntentPresentation marks the rest of the text as slide source.
	IntentPresentation
	// IntentDiagram marks the rest of the text as diagram source.
	IntentDiagram
	// IntentWikipedia requests a Wikipedia lookup for the payload term.
	IntentWikipedia
	// IntentSearch requests a generic web lookup for the payload term.
	IntentSearch
	// IntentVisual requests image/visual content.
	IntentVisual
)

// String returns the human-readable name of the intent.
func (i Intent) String() string {
	switch i {
	case IntentPlain:
		return "plain"
	case IntentPresentation:
		return "presentation"
	case IntentDiagram:
		return "diagram"
	case IntentWikipedia:
		return "wikipedia-search"
	case IntentSearch:
		return "web-search"
	case IntentVisual:
		return "visual"
	default:
		return "unknown"
	}
}

// Markers the classifier recognizes, in detection order.
const (
	markerPresentation = "[PRESENTATION]"
	markerDiagram      = "[DIAGRAM]"
	markerWikipedia    = "[WIKIPEDIA:"
	markerSearch       = "[SEARCH:"
	markerVisual       = "[VISUAL]"
)

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Classification is the result of classifying one model response.
type Classification struct {
	// Intent is the detected primary intent.
	Intent Intent

	// Term is the payload of a parametrized marker (the search or
	// Wikipedia term). Empty for every other intent.
	Term string

	// Content is the residual text with the leading marker stripped.
	// For plain responses it is the input unchanged.
	Content string
}

// Classify inspects the full text of a model response and returns its
// tagged intent plus the residual content. Classification never mutates
// its input beyond stripping the leading marker from the returned copy.
func Classify(content string) Classification {
	if strings.HasPrefix(content, markerPresentation) {
		return Classification{
			Intent:  IntentPresentation,
			Content: stripMarker(content, markerPresentation),
		}
	}
	if strings.HasPrefix(content, markerDiagram) {
		return Classification{
			Intent:  IntentDiagram,
			Content: stripMarker(content, markerDiagram),
		}
	}
	if term, rest, ok := parseTagged(content, markerWikipedia); ok {
		return Classification{Intent: IntentWikipedia, Term: term, Content: rest}
	}
	if term, rest, ok := parseTagged(content, markerSearch); ok {
		return Classification{Intent: IntentSearch, Term: term, Content: rest}
	}
	if strings.HasPrefix(content, markerVisual) {
		return Classification{
			Intent:  IntentVisual,
			Content: stripMarker(content, markerVisual),
		}
	}
	return Classification{Intent: IntentPlain, Content: content}
}

// parseTagged matches a leading "marker:payload]" form. The payload must be
// non-empty and close on the same tag; otherwise the prefix is not a match
// and classification falls through to the next rule.
func parseTagged(content, marker string) (term, rest string, ok bool) {
	if !strings.HasPrefix(content, marker) {
		return "", "", false
	}
	after := content[len(marker):]
	end := strings.IndexByte(after, ']')
	if end <= 0 {
		return "", "", false
	}
	term = strings.TrimSpace(after[:end])
	if term == "" {
		return "", "", false
	}
	rest = strings.TrimLeft(after[end+1:], " \t\r\n")
	return term, rest, true
}

func stripMarker(content, marker string) string {
	return strings.TrimLeft(content[len(marker):], " \t\r\n")
}

// =============================================================================
// LEGACY RECORD
// =============================================================================

// ToolUsage is the flat boolean record consumed by the response router.
// At most the fields matching the one detected intent are set; the tagged
// Classification is the source of truth and this shape is derived from it.
type ToolUsage struct {
	Presentation  bool
	Diagram       bool
	Wikipedia     bool
	Search        bool
	Visual        bool
	SearchTerm    string
	WikipediaTerm string
}

// Legacy converts the classification into the flat ToolUsage record.
func (c Classification) Legacy() ToolUsage {
	u := ToolUsage{}
	switch c.Intent {
	case IntentPresentation:
		u.Presentation = true
	case IntentDiagram:
		u.Diagram = true
	case IntentWikipedia:
		u.Wikipedia = true
		u.WikipediaTerm = c.Term
	case IntentSearch:
		u.Search = true
		u.SearchTerm = c.Term
	case IntentVisual:
		u.Visual = true
	}
	return u
}
