// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantIntent  Intent
		wantTerm    string
		wantContent string
	}{
		{
			name:        "plain_passthrough",
			input:       "Just a normal answer.",
			wantIntent:  IntentPlain,
			wantContent: "Just a normal answer.",
		},
		{
			name:        "presentation",
			input:       "[PRESENTATION]\nSlide 1: Intro\nWelcome",
			wantIntent:  IntentPresentation,
			wantContent: "Slide 1: Intro\nWelcome",
		},
		{
			name:        "diagram",
			input:       "[DIAGRAM] graph TD\n    A --> B",
			wantIntent:  IntentDiagram,
			wantContent: "graph TD\n    A --> B",
		},
		{
			name:        "wikipedia_with_term",
			input:       "[WIKIPEDIA:Alan Turing] Looking that up for you.",
			wantIntent:  IntentWikipedia,
			wantTerm:    "Alan Turing",
			wantContent: "Looking that up for you.",
		},
		{
			name:        "search_with_term",
			input:       "[SEARCH:weather in oslo]",
			wantIntent:  IntentSearch,
			wantTerm:    "weather in oslo",
			wantContent: "",
		},
		{
			name:        "visual",
			input:       "[VISUAL] a red circle on a white field",
			wantIntent:  IntentVisual,
			wantContent: "a red circle on a white field",
		},
		{
			name:        "marker_not_at_start_is_plain",
			input:       "Sure. [DIAGRAM] graph TD",
			wantIntent:  IntentPlain,
			wantContent: "Sure. [DIAGRAM] graph TD",
		},
		{
			name:        "empty_wikipedia_term_is_plain",
			input:       "[WIKIPEDIA:] nothing",
			wantIntent:  IntentPlain,
			wantContent: "[WIKIPEDIA:] nothing",
		},
		{
			name:        "unclosed_search_tag_is_plain",
			input:       "[SEARCH:unterminated",
			wantIntent:  IntentPlain,
			wantContent: "[SEARCH:unterminated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			if got.Intent != tt.wantIntent {
				t.Errorf("Intent = %v, want %v", got.Intent, tt.wantIntent)
			}
			if got.Term != tt.wantTerm {
				t.Errorf("Term = %q, want %q", got.Term, tt.wantTerm)
			}
			if got.Content != tt.wantContent {
				t.Errorf("Content = %q, want %q", got.Content, tt.wantContent)
			}
		})
	}
}

// A response beginning with [PRESENTATION] must never be classified as
// diagram or search even when those markers also appear later in the text.
func TestFirstMarkerWins(t *testing.T) {
	input := "[PRESENTATION]\nSlide 1: Tags\n[DIAGRAM] graph TD\n[SEARCH:later]"
	got := Classify(input)
	if got.Intent != IntentPresentation {
		t.Fatalf("Intent = %v, want IntentPresentation", got.Intent)
	}
	if got.Term != "" {
		t.Errorf("Term = %q, want empty", got.Term)
	}
}

func TestLegacyRecord(t *testing.T) {
	u := Classify("[WIKIPEDIA:go programming] ...").Legacy()
	if !u.Wikipedia || u.WikipediaTerm != "go programming" {
		t.Errorf("unexpected legacy record: %+v", u)
	}
	if u.Presentation || u.Diagram || u.Search || u.Visual {
		t.Errorf("more than one intent active: %+v", u)
	}

	plain := Classify("hello").Legacy()
	if plain != (ToolUsage{}) {
		t.Errorf("plain response should produce zero record, got %+v", plain)
	}
}
