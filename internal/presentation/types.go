// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package presentation extracts an ordered slide deck from free-form model
// output and renders it to slide markup.
//
// Three alternative grammars are tried in order and never merged:
// structured ("Slide N:" markers), markdown-like ("---"/"##" separators),
// and generic paragraph splitting. See parse.go for the tokenizers.
package presentation

import "time"

// =============================================================================
// SLIDES
// =============================================================================

// SlideType distinguishes the opening title slide from content slides.
type SlideType int

const (
	SlideTitle SlideType = iota
	SlideContent
)

// String returns the slide type name.
func (t SlideType) String() string {
	if t == SlideTitle {
		return "title"
	}
	return "content"
}

// Slide is one slide record. Notes hold speaker notes accumulated after a
// notes marker in the structured grammar.
type Slide struct {
	Type     SlideType
	Title    string
	Subtitle string
	Content  string
	Notes    string
}

// Deck is the current presentation artifact: the ordered slides plus their
// rendered markup.
type Deck struct {
	ID        string
	Title     string
	Slides    []Slide
	Markup    string
	CreatedAt time.Time
}

// Result is the contract returned by Pipeline.Generate.
type Result struct {
	Success    bool
	Slides     []Slide
	Markup     string
	SlideCount int
	Err        string
}

// Stats summarizes the current deck.
type Stats struct {
	SlideCount        int
	TitleSlides       int
	ContentSlides     int
	TotalWords        int
	EstimatedDuration time.Duration
	CreatedAt         time.Time
}

// perSlideDuration is the fixed time budget used for the duration
// estimate.
const perSlideDuration = 2 * time.Minute
