// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package diagram

import (
	"strings"
	"testing"
)

func TestRepair(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "missing_declaration_prepended",
			input: "A[one] B[two]",
			want:  "graph TD\n    A[one] B[two]",
		},
		{
			name:  "angle_brackets_stripped_from_labels",
			input: "graph TD\nA[uses <b>bold</b>] --> B[plain]",
			want:  "graph TD\n    A[uses bbold/b] --> B[plain]",
		},
		{
			name:  "connectors_padded",
			input: "graph TD\nA-->B",
			want:  "graph TD\n    A --> B",
		},
		{
			name:  "long_connector_padded",
			input: "graph TD\nA--->B",
			want:  "graph TD\n    A ---> B",
		},
		{
			name:  "reindent_preserves_first_line",
			input: "graph TD\n  A --> B\n\tB --> C",
			want:  "graph TD\n    A --> B\n    B --> C",
		},
		{
			name:  "blank_lines_untouched",
			input: "graph TD\n\nA --> B",
			want:  "graph TD\n\n    A --> B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Repair(tt.input); got != tt.want {
				t.Errorf("Repair(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Repair must not merge lines when a connector sits at a line boundary.
func TestRepairKeepsLineBreaks(t *testing.T) {
	got := Repair("graph TD\nA --> B\nB --> C")
	if strings.Count(got, "\n") != 2 {
		t.Errorf("line count changed: %q", got)
	}
}
