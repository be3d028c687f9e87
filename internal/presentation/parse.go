// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package presentation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ahamlabs/aham/internal/util"
)

// maxTitleLen is the cutoff above which a first line is treated as prose
// rather than a ready-made title.
const maxTitleLen = 60

var (
	slideMarkerRe = regexp.MustCompile(`(?i)^slide\s+\d+\s*:`)
	enumMarkerRe  = regexp.MustCompile(`^\d+\.\s*`)
	headerRe      = regexp.MustCompile(`^#+\s+`)
)

// =============================================================================
// GRAMMAR SELECTION
// =============================================================================

// parseSlides runs the three extraction grammars in order; the first
// applicable one is used exclusively (no merging across grammars).
func parseSlides(content string) []Slide {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	if isStructured(content) {
		return parseStructured(content)
	}
	if strings.Contains(content, "---") || strings.Contains(content, "##") {
		return parseMarkdown(content)
	}
	return parseGeneric(content)
}

// isStructured reports whether content carries explicit slide markers: a
// "Slide N:" line, a leading Title:/Content: line, or leading enumerated
// list markers.
func isStructured(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if slideMarkerRe.MatchString(trimmed) || enumMarkerRe.MatchString(trimmed) {
			return true
		}
		if strings.HasPrefix(trimmed, "Title:") || strings.HasPrefix(trimmed, "Content:") {
			return true
		}
	}
	return false
}

// =============================================================================
// STRUCTURED GRAMMAR
// =============================================================================

// parseStructured splits content at slide markers. Within a segment the
// first line is the title (a Title: prefix is stripped); a line containing
// a notes marker switches the rest of the segment into speaker-notes
// accumulation.
func parseStructured(content string) []Slide {
	var segments []string
	var current []string

	flush := func() {
		seg := strings.TrimSpace(strings.Join(current, "\n"))
		if seg != "" {
			segments = append(segments, seg)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if m := slideMarkerRe.FindString(trimmed); m != "" {
			flush()
			if rest := strings.TrimSpace(trimmed[len(m):]); rest != "" {
				current = append(current, rest)
			}
			continue
		}
		if m := enumMarkerRe.FindString(trimmed); m != "" {
			flush()
			if rest := strings.TrimSpace(trimmed[len(m):]); rest != "" {
				current = append(current, rest)
			}
			continue
		}
		current = append(current, line)
	}
	flush()

	var slides []Slide
	for i, seg := range segments {
		if s, ok := parseSegment(seg, i); ok {
			slides = append(slides, s)
		}
	}
	return slides
}

// parseSegment builds one slide from a structured segment.
func parseSegment(segment string, index int) (Slide, bool) {
	var lines []string
	for _, l := range strings.Split(segment, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) == 0 {
		return Slide{}, false
	}

	title := strings.TrimSpace(strings.TrimPrefix(lines[0], "Title:"))
	lines = lines[1:]

	var body []string
	var notes []string
	inNotes := false
	for _, line := range lines {
		lower := strings.ToLower(line)
		if idx := strings.Index(lower, "notes:"); idx >= 0 {
			inNotes = true
			if rest := strings.TrimSpace(line[idx+len("notes:"):]); rest != "" {
				notes = append(notes, rest)
			}
			continue
		}
		if inNotes {
			notes = append(notes, line)
		} else {
			body = append(body, line)
		}
	}

	slide := Slide{
		Title: title,
		Notes: strings.Join(notes, "\n"),
	}
	if slide.Title == "" {
		slide.Title = fmt.Sprintf("Slide %d", index+1)
	}
	if index == 0 {
		slide.Type = SlideTitle
		if len(body) > 0 {
			slide.Subtitle = body[0]
		}
	} else {
		slide.Type = SlideContent
		slide.Content = strings.Join(body, "\n")
	}
	return slide, true
}

// =============================================================================
// MARKDOWN GRAMMAR
// =============================================================================

// parseMarkdown splits content at "---" separator lines and "##" headers.
// Each segment's first header line becomes its title; the remaining lines
// are the content.
func parseMarkdown(content string) []Slide {
	var segments []string
	var current []string

	flush := func() {
		seg := strings.TrimSpace(strings.Join(current, "\n"))
		if seg != "" {
			segments = append(segments, seg)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "---" {
			flush()
			continue
		}
		if strings.HasPrefix(trimmed, "##") {
			flush()
		}
		current = append(current, line)
	}
	flush()

	var slides []Slide
	for i, seg := range segments {
		if s, ok := parseMarkdownSegment(seg, i); ok {
			slides = append(slides, s)
		}
	}
	return slides
}

func parseMarkdownSegment(segment string, index int) (Slide, bool) {
	var lines []string
	for _, l := range strings.Split(segment, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) == 0 {
		return Slide{}, false
	}

	title := ""
	for i, line := range lines {
		if headerRe.MatchString(line) {
			title = strings.TrimSpace(headerRe.ReplaceAllString(line, ""))
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}
	if title == "" {
		title = fmt.Sprintf("Slide %d", index+1)
	}

	slide := Slide{Title: title}
	if index == 0 {
		slide.Type = SlideTitle
		if len(lines) > 0 {
			slide.Subtitle = lines[0]
		}
	} else {
		slide.Type = SlideContent
		slide.Content = strings.Join(lines, "\n")
	}
	return slide, true
}

// =============================================================================
// GENERIC GRAMMAR
// =============================================================================

// parseGeneric splits content into paragraphs on blank lines. The first
// paragraph becomes the title slide (second paragraph as subtitle when
// present); every subsequent paragraph becomes one content slide with its
// own first line promoted to a per-slide title.
func parseGeneric(content string) []Slide {
	var paragraphs []string
	for _, p := range regexp.MustCompile(`\n\s*\n`).Split(content, -1) {
		if t := strings.TrimSpace(p); t != "" {
			paragraphs = append(paragraphs, t)
		}
	}
	if len(paragraphs) == 0 {
		return nil
	}

	slides := []Slide{{
		Type:  SlideTitle,
		Title: extractTitle(paragraphs[0]),
	}}
	if len(paragraphs) > 1 {
		slides[0].Subtitle = paragraphs[1]
	}

	for _, p := range paragraphs[1:] {
		if s, ok := contentSlide(p); ok {
			slides = append(slides, s)
		}
	}
	return slides
}

// extractTitle promotes a paragraph's first line to a title: used verbatim
// when short and unpunctuated, otherwise truncated to a leading clause.
func extractTitle(paragraph string) string {
	first := util.FirstLine(paragraph)
	if len([]rune(first)) < maxTitleLen && !strings.ContainsAny(lastRune(first), ".!?") {
		return first
	}
	words := strings.Fields(first)
	if len(words) > 6 {
		return strings.Join(words[:6], " ") + "..."
	}
	return strings.Join(words, " ")
}

func lastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[len(runes)-1])
}

// contentSlide builds one content slide from a paragraph: first line
// becomes the title, the rest the content (or the first line itself when
// the paragraph is a single line).
func contentSlide(paragraph string) (Slide, bool) {
	var lines []string
	for _, l := range strings.Split(paragraph, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) == 0 {
		return Slide{}, false
	}

	content := strings.Join(lines[1:], "\n")
	if content == "" {
		content = lines[0]
	}
	return Slide{
		Type:    SlideContent,
		Title:   extractTitle(lines[0]),
		Content: content,
	}, true
}
