// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diagram extracts diagram markup from free-form model output,
// detects its dialect, validates and repairs it, and renders it to a
// displayable artifact.
//
// Extraction is an ordered fallback chain (tagged fence, untagged fence,
// keyword scan, sentence synthesis); every entry point returns a result
// record rather than failing, and a static preformatted rendering is
// always available when no render engine is.
package diagram

import "time"

// =============================================================================
// DIAGRAM TYPE
// =============================================================================

// Type is the detected diagram dialect.
type Type int

const (
	TypeUnknown Type = iota
	TypeFlowchart
	TypeSequence
	TypeClass
	TypeState
	TypeER
	TypeJourney
	TypeGantt
	TypePie
	TypeGit
)

// String returns the short dialect name.
func (t Type) String() string {
	switch t {
	case TypeFlowchart:
		return "flowchart"
	case TypeSequence:
		return "sequence"
	case TypeClass:
		return "class"
	case TypeState:
		return "state"
	case TypeER:
		return "er"
	case TypeJourney:
		return "journey"
	case TypeGantt:
		return "gantt"
	case TypePie:
		return "pie"
	case TypeGit:
		return "git"
	default:
		return "unknown"
	}
}

// Title returns the default human-readable title for the dialect, used
// when the source text carries no explicit title.
func (t Type) Title() string {
	switch t {
	case TypeFlowchart:
		return "Flowchart Diagram"
	case TypeSequence:
		return "Sequence Diagram"
	case TypeClass:
		return "Class Diagram"
	case TypeState:
		return "State Diagram"
	case TypeER:
		return "Entity Relationship Diagram"
	case TypeJourney:
		return "User Journey Map"
	case TypeGantt:
		return "Gantt Chart"
	case TypePie:
		return "Pie Chart"
	case TypeGit:
		return "Git Graph"
	default:
		return "Diagram"
	}
}

// declarationKeywords are the line-leading tokens that open a diagram body,
// in the order the line scanner checks them.
var declarationKeywords = []string{
	"graph ",
	"flowchart ",
	"sequenceDiagram",
	"classDiagram",
	"stateDiagram",
	"erDiagram",
	"journey",
	"gantt",
	"pie",
	"gitGraph",
}

// detectionOrder fixes the dialect priority when a body contains markers
// for more than one dialect: the first containment match wins.
var detectionOrder = []struct {
	keyword string
	typ     Type
}{
	{"sequenceDiagram", TypeSequence},
	{"classDiagram", TypeClass},
	{"stateDiagram", TypeState},
	{"erDiagram", TypeER},
	{"journey", TypeJourney},
	{"gantt", TypeGantt},
	{"pie", TypePie},
	{"gitGraph", TypeGit},
	{"flowchart", TypeFlowchart},
	{"graph", TypeFlowchart},
}

// connectorTokens are edge/relation tokens that identify diagram markup in
// an untagged code fence.
var connectorTokens = []string{"-->", "--->", "===>", "-.", "==", "--"}

// =============================================================================
// ARTIFACT AND RESULT
// =============================================================================

// Artifact is a rendered diagram. The pipeline owns a single current
// artifact; each successful generation replaces the previous one.
type Artifact struct {
	ID              string
	Syntax          string
	Type            Type
	Title           string
	Description     string
	RenderedContent string
	CreatedAt       time.Time
}

// Result is the contract returned by Pipeline.Generate. On failure Err is
// set and Success is false, but Syntax is still populated when extraction
// succeeded so callers can show the raw markup as plain text.
type Result struct {
	Success         bool
	DiagramID       string
	Syntax          string
	Type            Type
	Title           string
	RenderedContent string
	Err             string
}

// Stats summarizes the current artifact for display.
type Stats struct {
	ID             string
	Type           Type
	Title          string
	SyntaxLength   int
	HasDescription bool
	CreatedAt      time.Time
}
