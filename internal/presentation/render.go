// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package presentation

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var numberedRe = regexp.MustCompile(`^\d+\.\s`)

// renderDeck renders all slides to section markup.
func renderDeck(slides []Slide) string {
	var b strings.Builder
	for _, s := range slides {
		b.WriteString(renderSlide(s))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// renderSlide renders one slide to a <section> block. Content is always
// escaped before embedding.
func renderSlide(s Slide) string {
	var b strings.Builder

	b.WriteString("<section")
	if s.Notes != "" {
		fmt.Fprintf(&b, " data-notes=%q", html.EscapeString(s.Notes))
	}
	b.WriteString(">")

	if s.Type == SlideTitle {
		fmt.Fprintf(&b, "<h1>%s</h1>", html.EscapeString(s.Title))
		if s.Subtitle != "" {
			fmt.Fprintf(&b, `<p class="subtitle">%s</p>`, html.EscapeString(s.Subtitle))
		}
	} else {
		fmt.Fprintf(&b, "<h2>%s</h2>", html.EscapeString(s.Title))
		if s.Subtitle != "" {
			fmt.Fprintf(&b, "<h3>%s</h3>", html.EscapeString(s.Subtitle))
		}
		if s.Content != "" {
			fmt.Fprintf(&b, `<div class="content">%s</div>`, formatContent(s.Content))
		}
	}

	b.WriteString("</section>")
	return b.String()
}

// formatContent reformats slide content line-wise: bullet and numbered
// lines become list items grouped in one <ul> container (consecutive
// containers merged), every other non-empty line becomes a paragraph.
func formatContent(content string) string {
	var b strings.Builder
	inList := false

	closeList := func() {
		if inList {
			b.WriteString("</ul>")
			inList = false
		}
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			if !inList {
				b.WriteString("<ul>")
				inList = true
			}
			fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(line[2:]))
		case numberedRe.MatchString(line):
			if !inList {
				b.WriteString("<ul>")
				inList = true
			}
			item := numberedRe.ReplaceAllString(line, "")
			fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(item))
		default:
			closeList()
			fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(line))
		}
	}
	closeList()

	return b.String()
}
