// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package offline produces template-based responses when no model backend
// is reachable. The generator recognizes diagram and presentation requests
// by keyword and fills a matching template with the topic extracted from
// the message; everything else gets a canned text reply.
//
// Output is deterministic for a given message so offline behavior is
// reproducible and testable.
package offline

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ahamlabs/aham/internal/presentation"
)

// ResponseType tells the caller which pipeline the response feeds.
type ResponseType int

const (
	TypeText ResponseType = iota
	TypeDiagram
	TypePresentation
)

// String returns the response type name.
func (t ResponseType) String() string {
	switch t {
	case TypeDiagram:
		return "diagram"
	case TypePresentation:
		return "presentation"
	default:
		return "text"
	}
}

// Response is a fully-formed offline reply. Diagram responses carry ready
// mermaid syntax; presentation responses carry structured slides.
type Response struct {
	Type   ResponseType
	Text   string
	Title  string
	Syntax string
	Slides []presentation.Slide
}

// defaultTopic is used when a message has no meaningful words left after
// stop-word filtering.
const defaultTopic = "Process"

var diagramKeywords = []string{
	"diagram", "flowchart", "chart", "flow", "process",
	"workflow", "sequence", "class diagram", "state diagram",
	"visualization", "graph", "tree", "hierarchy",
}

var presentationKeywords = []string{
	"presentation", "slides", "slideshow", "powerpoint",
	"present", "deck", "slide deck",
}

var stopWords = map[string]bool{
	"create": true, "make": true, "generate": true, "show": true, "draw": true,
	"diagram": true, "flowchart": true, "chart": true, "graph": true,
	"presentation": true, "slides": true, "slideshow": true,
	"powerpoint": true, "deck": true,
	"about": true, "for": true, "of": true, "the": true, "a": true, "an": true,
}

var generalResponses = []string{
	"I understand you're asking about that topic. While I'm currently working in offline mode, I can help you create diagrams and presentations.",
	"That's an interesting question! I can assist you with creating visual content like flowcharts and presentations.",
	"I'd be happy to help! I specialize in creating diagrams and presentations. Try asking me to create a flowchart or presentation on your topic.",
	"Great question! I can help you visualize information through diagrams and presentations. What would you like me to create?",
}

// Generator builds offline responses. The zero value is ready to use.
type Generator struct{}

// NewGenerator returns a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Respond builds the offline reply for message. Presentation requests win
// over diagram requests only when the diagram keywords are absent, so
// "diagram for my presentation" still draws a diagram.
func (g *Generator) Respond(message string) *Response {
	lower := strings.ToLower(message)

	if containsAny(lower, diagramKeywords) {
		return g.diagramResponse(message, lower)
	}
	if containsAny(lower, presentationKeywords) {
		return g.presentationResponse(message)
	}
	return g.textResponse(message)
}

func (g *Generator) diagramResponse(message, lower string) *Response {
	topic := extractTopic(message)

	var syntax, text string
	switch detectShape(lower) {
	case shapeSoftware:
		syntax = softwareFlowchart
		text = "Here's a comprehensive flowchart showing the software development process:"
	case shapeSequence:
		syntax = sequenceTemplate(topic)
		text = fmt.Sprintf("Here's a sequence diagram for %s:", topic)
	case shapeClass:
		syntax = classTemplate(topic)
		text = fmt.Sprintf("Here's a class diagram for %s:", topic)
	case shapeBusiness:
		syntax = businessTemplate(topic)
		text = fmt.Sprintf("Here's a business process flowchart for %s:", topic)
	default:
		syntax = genericTemplate(topic)
		text = fmt.Sprintf("Here's a flowchart diagram for %s:", topic)
	}

	return &Response{
		Type:   TypeDiagram,
		Text:   text,
		Title:  topic + " Diagram",
		Syntax: syntax,
	}
}

func (g *Generator) presentationResponse(message string) *Response {
	topic := extractTopic(message)
	return &Response{
		Type:   TypePresentation,
		Text:   fmt.Sprintf("I've created a presentation about %s. Here are the slides:", topic),
		Title:  topic,
		Slides: deckTemplate(topic),
	}
}

// textResponse picks a canned reply keyed off the message length, keeping
// the choice stable for a given input.
func (g *Generator) textResponse(message string) *Response {
	return &Response{
		Type: TypeText,
		Text: generalResponses[len(message)%len(generalResponses)],
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// extractTopic drops stop words and short words and keeps the first three
// meaningful ones.
func extractTopic(message string) string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(message)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
		})
		if len(w) <= 2 || stopWords[w] {
			continue
		}
		words = append(words, w)
		if len(words) == 3 {
			break
		}
	}
	if len(words) == 0 {
		return defaultTopic
	}
	return strings.Join(words, " ")
}

// =============================================================================
// SHAPE DETECTION
// =============================================================================

type shape int

const (
	shapeGeneric shape = iota
	shapeSoftware
	shapeSequence
	shapeClass
	shapeBusiness
)

// detectShape picks a template family. The checks run in a fixed priority
// order so overlapping keywords resolve the same way every time.
func detectShape(lower string) shape {
	switch {
	case strings.Contains(lower, "software") || strings.Contains(lower, "development") || strings.Contains(lower, "coding"):
		return shapeSoftware
	case strings.Contains(lower, "sequence") || strings.Contains(lower, "interaction"):
		return shapeSequence
	case strings.Contains(lower, "class") || strings.Contains(lower, "object") || strings.Contains(lower, "inheritance"):
		return shapeClass
	case strings.Contains(lower, "business") || strings.Contains(lower, "process") || strings.Contains(lower, "workflow"):
		return shapeBusiness
	default:
		return shapeGeneric
	}
}
