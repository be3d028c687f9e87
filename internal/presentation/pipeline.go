// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package presentation

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// PIPELINE
// ============================================================================

// Pipeline turns assistant output into slide decks. It keeps at most one
// current deck; a newer generation always wins over a slower older one.
type Pipeline struct {
	mu         sync.Mutex
	seq        uint64
	currentSeq uint64
	current    *Deck
}

// NewPipeline returns an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Generate parses content into slides, renders the markup, and installs
// the deck as current. The returned Result is displayable even on failure.
func (p *Pipeline) Generate(content string) *Result {
	seq := p.nextSeq()

	slides := parseSlides(content)
	if len(slides) == 0 {
		return &Result{
			Success: false,
			Err:     "no slides could be derived from content",
		}
	}

	deck := p.buildDeck(slides[0].Title, slides)
	p.store(seq, deck)

	return &Result{
		Success:    true,
		Slides:     slides,
		Markup:     deck.Markup,
		SlideCount: len(slides),
	}
}

// RenderDeck builds a deck from already-structured slides, bypassing the
// content tokenizers. Used when slides are produced directly, e.g. by the
// offline generator.
func (p *Pipeline) RenderDeck(title string, slides []Slide) *Result {
	seq := p.nextSeq()

	if len(slides) == 0 {
		return &Result{
			Success: false,
			Err:     "deck has no slides",
		}
	}
	if title == "" {
		title = slides[0].Title
	}

	deck := p.buildDeck(title, slides)
	p.store(seq, deck)

	return &Result{
		Success:    true,
		Slides:     slides,
		Markup:     deck.Markup,
		SlideCount: len(slides),
	}
}

func (p *Pipeline) buildDeck(title string, slides []Slide) *Deck {
	return &Deck{
		ID:        fmt.Sprintf("deck-%d-%s", time.Now().UnixMilli(), strings.Split(uuid.NewString(), "-")[0]),
		Title:     title,
		Slides:    slides,
		Markup:    renderDeck(slides),
		CreatedAt: time.Now(),
	}
}

func (p *Pipeline) nextSeq() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	return p.seq
}

// store installs the deck unless a newer generation finished first.
func (p *Pipeline) store(seq uint64, deck *Deck) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seq < p.currentSeq {
		return
	}
	p.currentSeq = seq
	p.current = deck
}

// Current returns the current deck, or nil when none exists.
func (p *Pipeline) Current() *Deck {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Clear discards the current deck.
func (p *Pipeline) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = nil
}

// Stats summarizes the current deck. The duration estimate allows two
// minutes per slide.
func (p *Pipeline) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := Stats{}
	if p.current == nil {
		return st
	}

	st.SlideCount = len(p.current.Slides)
	for _, s := range p.current.Slides {
		if s.Type == SlideTitle {
			st.TitleSlides++
		} else {
			st.ContentSlides++
		}
		st.TotalWords += len(strings.Fields(s.Title)) +
			len(strings.Fields(s.Subtitle)) +
			len(strings.Fields(s.Content))
	}
	st.EstimatedDuration = time.Duration(st.SlideCount) * perSlideDuration
	st.CreatedAt = p.current.CreatedAt
	return st
}
