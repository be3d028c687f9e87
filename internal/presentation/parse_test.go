// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package presentation

import (
	"strings"
	"testing"
)

func TestParseGenericParagraphs(t *testing.T) {
	slides := parseSlides("Topic A\n\nPoint one\n\nPoint two")
	if len(slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(slides))
	}
	if slides[0].Type != SlideTitle || slides[0].Title != "Topic A" {
		t.Errorf("title slide = %+v", slides[0])
	}
	if slides[0].Subtitle != "Point one" {
		t.Errorf("subtitle = %q, want %q", slides[0].Subtitle, "Point one")
	}
	if slides[1].Type != SlideContent || slides[1].Title != "Point one" {
		t.Errorf("slide 1 = %+v", slides[1])
	}
	if slides[2].Title != "Point two" {
		t.Errorf("slide 2 = %+v", slides[2])
	}
}

func TestParseStructuredMarkers(t *testing.T) {
	content := strings.Join([]string{
		"Slide 1: Launch Plan",
		"The quarterly launch",
		"Slide 2: Timeline",
		"Phase one in March",
		"Phase two in June",
		"Notes: keep this section brief",
	}, "\n")

	slides := parseSlides(content)
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
	if slides[0].Type != SlideTitle || slides[0].Title != "Launch Plan" {
		t.Errorf("title slide = %+v", slides[0])
	}
	if slides[0].Subtitle != "The quarterly launch" {
		t.Errorf("subtitle = %q", slides[0].Subtitle)
	}
	if slides[1].Title != "Timeline" {
		t.Errorf("slide 1 title = %q", slides[1].Title)
	}
	if !strings.Contains(slides[1].Content, "Phase one in March") {
		t.Errorf("slide 1 content = %q", slides[1].Content)
	}
	if slides[1].Notes != "keep this section brief" {
		t.Errorf("notes = %q", slides[1].Notes)
	}
}

func TestParseStructuredNotesNeverLeakIntoContent(t *testing.T) {
	content := "Slide 1: A\nintro\nSlide 2: B\nvisible\nSpeaker notes: hidden line\nmore hidden"
	slides := parseSlides(content)
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
	if strings.Contains(slides[1].Content, "hidden") {
		t.Errorf("notes leaked into content: %q", slides[1].Content)
	}
	if want := "hidden line\nmore hidden"; slides[1].Notes != want {
		t.Errorf("notes = %q, want %q", slides[1].Notes, want)
	}
}

func TestParseMarkdownSeparators(t *testing.T) {
	content := "# Overview\nAn introduction\n---\n## Details\nFirst detail\nSecond detail\n## Wrap Up\nClosing thought"

	slides := parseSlides(content)
	if len(slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(slides))
	}
	if slides[0].Type != SlideTitle || slides[0].Title != "Overview" {
		t.Errorf("title slide = %+v", slides[0])
	}
	if slides[1].Title != "Details" || !strings.Contains(slides[1].Content, "First detail") {
		t.Errorf("slide 1 = %+v", slides[1])
	}
	if slides[2].Title != "Wrap Up" {
		t.Errorf("slide 2 = %+v", slides[2])
	}
}

func TestParseEnumeratedMarkers(t *testing.T) {
	content := "1. Kickoff\nWelcome everyone\n2. Goals\nShip the feature"
	slides := parseSlides(content)
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
	if slides[0].Title != "Kickoff" || slides[1].Title != "Goals" {
		t.Errorf("titles = %q, %q", slides[0].Title, slides[1].Title)
	}
}

func TestParseEmptyContent(t *testing.T) {
	if slides := parseSlides("   \n\n  "); slides != nil {
		t.Errorf("expected nil, got %v", slides)
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short line verbatim", "Road Map", "Road Map"},
		{
			"sentence truncated to leading words",
			"This paragraph opens with a complete sentence about the roadmap.",
			"This paragraph opens with a complete...",
		},
		{
			"long line truncated",
			strings.Repeat("word ", 20) + "tail",
			"word word word word word word...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractTitle(tt.in); got != tt.want {
				t.Errorf("extractTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
