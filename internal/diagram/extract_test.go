// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package diagram

import (
	"strings"
	"testing"
)

func TestExtractTaggedFence(t *testing.T) {
	content := "Here you go:\n```mermaid\ngraph TD\nA --> B\n```\nEnjoy."
	want := "graph TD\nA --> B"

	got := extract(content)
	if got != want {
		t.Errorf("extract() = %q, want %q", got, want)
	}

	// Idempotent under re-extraction: feeding the extracted body back in
	// yields the same body (via the keyword scanner).
	if again := extract(got); again != want {
		t.Errorf("re-extract() = %q, want %q", again, want)
	}
}

func TestExtractUntaggedFence(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "accepted_with_keyword",
			content: "```\nsequenceDiagram\n    A->>B: hi\n```",
			want:    "sequenceDiagram\n    A->>B: hi",
		},
		{
			name:    "accepted_with_connector",
			content: "```\nA --> B\n```",
			want:    "A --> B",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract(tt.content); got != tt.want {
				t.Errorf("extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractUntaggedFenceRejectsPlainCode(t *testing.T) {
	// A fence with no diagram tokens must fall through; the content around
	// it then drives the sentence synthesizer.
	content := "```\nfmt_Println(hello)\n```"
	got := extract(content)
	if !strings.HasPrefix(got, "graph TD") {
		t.Errorf("expected synthesized fallback, got %q", got)
	}
}

func TestExtractKeywordScan(t *testing.T) {
	content := "The flow is as follows:\n\nflowchart LR\nA --> B\nB --> C"
	want := "flowchart LR\nA --> B\nB --> C"
	if got := extract(content); got != want {
		t.Errorf("extract() = %q, want %q", got, want)
	}
}

// Input with no diagram keywords and no fence yields a top-down diagram
// with exactly one chained node per sentence, in order.
func TestSynthesizeFromSentences(t *testing.T) {
	got := extract("Step one. Step two. Step three.")
	want := "graph TD\n" +
		"    A[Step one]\n" +
		"    B[Step two]\n" +
		"    A --> B\n" +
		"    C[Step three]\n" +
		"    B --> C"
	if got != want {
		t.Errorf("extract() =\n%s\nwant:\n%s", got, want)
	}
}

func TestSynthesizeTrivial(t *testing.T) {
	if got := extract("   "); got != "graph TD\n    A[Start] --> B[End]" {
		t.Errorf("extract() = %q", got)
	}
}

func TestSynthesizeLabelCap(t *testing.T) {
	long := strings.Repeat("x", 80)
	got := extract(long)
	if strings.Contains(got, strings.Repeat("x", 51)) {
		t.Errorf("node label longer than 50 runes: %q", got)
	}
	if !strings.Contains(got, "A["+strings.Repeat("x", 50)+"]") {
		t.Errorf("expected 50-rune label, got %q", got)
	}
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		name   string
		syntax string
		want   Type
	}{
		{"sequence", "sequenceDiagram\nA->>B: hi", TypeSequence},
		{"class", "classDiagram\nclass A", TypeClass},
		{"state", "stateDiagram-v2\n[*] --> S", TypeState},
		{"er", "erDiagram\nA ||--o{ B : has", TypeER},
		{"journey", "journey\ntitle T", TypeJourney},
		{"gantt", "gantt\ntitle T", TypeGantt},
		{"pie", "pie title T", TypePie},
		{"git", "gitGraph\ncommit", TypeGit},
		{"flowchart", "flowchart LR\nA --> B", TypeFlowchart},
		{"graph", "graph TD\nA --> B", TypeFlowchart},
		{"unknown", "just some text", TypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectType(tt.syntax); got != tt.want {
				t.Errorf("DetectType(%q) = %v, want %v", tt.syntax, got, tt.want)
			}
		})
	}
}

// A body containing markers for multiple dialects resolves by the fixed
// priority order, never by position.
func TestDetectTypePriority(t *testing.T) {
	tests := []struct {
		name   string
		syntax string
		want   Type
	}{
		{"sequence_beats_class", "classDiagram first, then sequenceDiagram", TypeSequence},
		{"class_beats_flowchart", "graph TD mentions classDiagram later", TypeClass},
		{"gantt_beats_pie", "pie chart inside a gantt plan", TypeGantt},
		{"git_beats_graph", "gitGraph\ncommit", TypeGit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectType(tt.syntax); got != tt.want {
				t.Errorf("DetectType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSourceHeaders(t *testing.T) {
	content := "Title: Deployment Flow\nDescription: How we ship\ngraph TD\nA --> B"
	src := parseSource(content)
	if src.Title != "Deployment Flow" {
		t.Errorf("Title = %q", src.Title)
	}
	if src.Description != "How we ship" {
		t.Errorf("Description = %q", src.Description)
	}
	if src.Type != TypeFlowchart {
		t.Errorf("Type = %v", src.Type)
	}
	if !strings.HasPrefix(src.Syntax, "graph TD") {
		t.Errorf("Syntax = %q", src.Syntax)
	}
}

func TestParseSourceDefaultTitle(t *testing.T) {
	src := parseSource("sequenceDiagram\nA->>B: hi")
	if src.Title != "Sequence Diagram" {
		t.Errorf("Title = %q, want default for dialect", src.Title)
	}
}
