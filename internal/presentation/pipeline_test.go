// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package presentation

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateInstallsCurrentDeck(t *testing.T) {
	p := NewPipeline()
	res := p.Generate("Topic A\n\nPoint one\n\nPoint two")
	if !res.Success {
		t.Fatalf("Generate failed: %s", res.Err)
	}
	if res.SlideCount != 3 {
		t.Errorf("SlideCount = %d, want 3", res.SlideCount)
	}
	deck := p.Current()
	if deck == nil {
		t.Fatal("no current deck")
	}
	if deck.Title != "Topic A" {
		t.Errorf("deck title = %q", deck.Title)
	}
	if !strings.Contains(deck.Markup, "<h1>Topic A</h1>") {
		t.Errorf("markup = %q", deck.Markup)
	}
}

func TestGenerateEmptyContentFails(t *testing.T) {
	p := NewPipeline()
	res := p.Generate("   ")
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Err == "" {
		t.Error("expected a displayable error message")
	}
	if p.Current() != nil {
		t.Error("failed generation must not install a deck")
	}
}

func TestRenderDeckBypassesParsing(t *testing.T) {
	p := NewPipeline()
	slides := []Slide{
		{Type: SlideTitle, Title: "Offline Deck", Subtitle: "generated"},
		{Type: SlideContent, Title: "Point", Content: "- item"},
	}
	res := p.RenderDeck("Offline Deck", slides)
	if !res.Success || res.SlideCount != 2 {
		t.Fatalf("RenderDeck result = %+v", res)
	}
	if p.Current().Title != "Offline Deck" {
		t.Errorf("deck title = %q", p.Current().Title)
	}
}

func TestStaleGenerationDiscarded(t *testing.T) {
	p := NewPipeline()
	first := p.nextSeq()
	second := p.nextSeq()

	p.store(second, &Deck{ID: "newer"})
	p.store(first, &Deck{ID: "stale"})

	if got := p.Current().ID; got != "newer" {
		t.Errorf("current deck = %q, want %q", got, "newer")
	}
}

func TestStatsCountsAndDuration(t *testing.T) {
	p := NewPipeline()
	p.RenderDeck("T", []Slide{
		{Type: SlideTitle, Title: "Two words"},
		{Type: SlideContent, Title: "One", Content: "alpha beta"},
		{Type: SlideContent, Title: "Two"},
	})

	st := p.Stats()
	if st.SlideCount != 3 || st.TitleSlides != 1 || st.ContentSlides != 2 {
		t.Errorf("counts = %+v", st)
	}
	if st.TotalWords != 6 {
		t.Errorf("TotalWords = %d, want 6", st.TotalWords)
	}
	if st.EstimatedDuration != 6*time.Minute {
		t.Errorf("EstimatedDuration = %v", st.EstimatedDuration)
	}

	p.Clear()
	if st := p.Stats(); st.SlideCount != 0 {
		t.Errorf("stats after clear = %+v", st)
	}
}
