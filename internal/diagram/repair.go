// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package diagram

import (
	"regexp"
	"strings"
)

// Connector tokens are padded with a single surrounding space each side.
var (
	connectorRe = regexp.MustCompile(`[ \t]*(-{2,3}>)[ \t]*`)
	bracketRe   = regexp.MustCompile(`\[([^\]]*)\]`)
)

// Repair applies the one-shot fix pass to a diagram body the engine
// rejected:
//
//   - a body with no diagram keyword gets a default top-down declaration
//   - angle brackets inside [...] node labels are stripped
//   - connector arrows are normalized to have surrounding whitespace
//   - all lines after the first are re-indented to a canonical 4 spaces
//
// Repair runs exactly once; repaired output is rendered without another
// validation round, so a render failure after repair is terminal.
func Repair(syntax string) string {
	fixed := syntax

	if !ContainsDiagramToken(fixed) {
		fixed = "graph TD\n" + fixed
	}

	fixed = bracketRe.ReplaceAllStringFunc(fixed, func(m string) string {
		inner := m[1 : len(m)-1]
		inner = strings.NewReplacer("<", "", ">", "").Replace(inner)
		return "[" + inner + "]"
	})

	fixed = connectorRe.ReplaceAllString(fixed, " $1 ")

	lines := strings.Split(fixed, "\n")
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed != "" {
			lines[i] = "    " + trimmed
		}
	}
	return strings.Join(lines, "\n")
}
