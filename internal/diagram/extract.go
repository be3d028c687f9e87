// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package diagram

import (
	"strings"

	"github.com/ahamlabs/aham/internal/util"
)

// maxNodeLabel caps synthesized node labels.
const maxNodeLabel = 50

// =============================================================================
// SOURCE PARSING
// =============================================================================

// source is the parsed diagram source before rendering.
type source struct {
	Title       string
	Description string
	Syntax      string
	Type        Type
}

// parseSource pulls an optional title/description header off the content,
// runs the extraction chain, and detects the dialect.
func parseSource(content string) source {
	clean := strings.TrimSpace(content)

	title, clean := takeHeaderLine(clean, "Title:", "Diagram:")
	description, clean := takeHeaderLine(clean, "Description:", "About:")

	syntax := extract(clean)
	typ := DetectType(syntax)

	if title == "" {
		title = typ.Title()
	}

	return source{
		Title:       title,
		Description: description,
		Syntax:      syntax,
		Type:        typ,
	}
}

// takeHeaderLine removes the first line starting with one of the prefixes
// and returns its value plus the remaining content.
func takeHeaderLine(content string, prefixes ...string) (string, string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, p := range prefixes {
			if strings.HasPrefix(trimmed, p) {
				value := strings.TrimSpace(strings.TrimPrefix(trimmed, p))
				rest := append(lines[:i:i], lines[i+1:]...)
				return value, strings.TrimSpace(strings.Join(rest, "\n"))
			}
		}
	}
	return "", content
}

// =============================================================================
// EXTRACTION CHAIN
// =============================================================================

// extractor attempts one extraction strategy; ok reports whether it
// produced a usable body.
type extractor func(string) (string, bool)

// extractors is the ordered fallback chain. Each step runs only when every
// earlier step came up empty; the final synthesis step always succeeds.
var extractors = []extractor{
	extractTaggedFence,
	extractUntaggedFence,
	extractKeywordScan,
	synthesizeFlow,
}

// extract returns the diagram body embedded in content, falling through
// the chain until a step yields a non-empty result.
func extract(content string) string {
	for _, ex := range extractors {
		if syntax, ok := ex(content); ok {
			return syntax
		}
	}
	return ""
}

// extractTaggedFence returns the trimmed inner text of a ```mermaid fence.
func extractTaggedFence(content string) (string, bool) {
	inner, ok := innerFence(content, "```mermaid")
	if !ok {
		return "", false
	}
	inner = strings.TrimSpace(inner)
	return inner, inner != ""
}

// extractUntaggedFence returns the inner text of a bare ``` fence, accepted
// only if it contains at least one declaration keyword or connector token.
func extractUntaggedFence(content string) (string, bool) {
	inner, ok := innerFence(content, "```")
	if !ok {
		return "", false
	}
	inner = strings.TrimSpace(inner)
	if inner == "" || !ContainsDiagramToken(inner) {
		return "", false
	}
	return inner, true
}

// innerFence returns the text between the first fence opened by marker and
// the next closing ```.
func innerFence(content, marker string) (string, bool) {
	start := strings.Index(content, marker)
	if start < 0 {
		return "", false
	}
	rest := content[start+len(marker):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// extractKeywordScan looks line by line for a diagram declaration; the body
// is everything from that line onward.
func extractKeywordScan(content string) (string, bool) {
	var lines []string
	for _, raw := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	for i, line := range lines {
		for _, kw := range declarationKeywords {
			if strings.HasPrefix(line, kw) {
				return strings.Join(lines[i:], "\n"), true
			}
		}
	}
	return "", false
}

// synthesizeFlow is the terminal fallback: split the content into
// sentence-like units and chain them as sequential top-down nodes. With no
// usable units the trivial Start -> End diagram is emitted.
func synthesizeFlow(content string) (string, bool) {
	var steps []string
	for _, unit := range strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '\n'
	}) {
		if trimmed := strings.TrimSpace(unit); trimmed != "" {
			steps = append(steps, trimmed)
		}
	}

	if len(steps) == 0 {
		return "graph TD\n    A[Start] --> B[End]", true
	}

	var b strings.Builder
	b.WriteString("graph TD")
	for i, step := range steps {
		id := nodeID(i)
		label := util.TruncateRunesNoEllipsis(step, maxNodeLabel)
		b.WriteString("\n    " + id + "[" + label + "]")
		if i > 0 {
			b.WriteString("\n    " + nodeID(i-1) + " --> " + id)
		}
	}
	return b.String(), true
}

// nodeID yields A, B, ..., Z, AA, AB, ... for synthesized nodes.
func nodeID(i int) string {
	id := string(rune('A' + i%26))
	for i >= 26 {
		i = i/26 - 1
		id = string(rune('A'+i%26)) + id
	}
	return id
}

// =============================================================================
// TOKEN DETECTION
// =============================================================================

// ContainsDiagramToken reports whether text contains any declaration
// keyword or connector token.
func ContainsDiagramToken(text string) bool {
	for _, d := range detectionOrder {
		if strings.Contains(text, d.keyword) {
			return true
		}
	}
	for _, tok := range connectorTokens {
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}

// DetectType returns the dialect of a diagram body. Detection is keyword
// containment in a fixed priority order; a body with markers for several
// dialects resolves to the highest-priority one, never by position.
func DetectType(syntax string) Type {
	for _, d := range detectionOrder {
		if strings.Contains(syntax, d.keyword) {
			return d.typ
		}
	}
	return TypeUnknown
}
