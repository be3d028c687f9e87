// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package diagram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline turns model output into a rendered diagram artifact.
//
// It owns a single current artifact. Overlapping generations are resolved
// by a monotonic sequence number taken when a generation starts: a
// completion whose sequence is older than the stored artifact's is
// discarded, so the last generation to start wins regardless of which
// finishes last.
type Pipeline struct {
	engine Engine

	seq        uint64
	currentSeq uint64
	current    *Artifact
}

// NewPipeline creates a pipeline. A nil engine is allowed; every render
// then goes through the static fallback.
func NewPipeline(engine Engine) *Pipeline {
	return &Pipeline{engine: engine}
}

// Generate extracts, validates, and renders a diagram from content.
// Failure is returned as a record, never an unhandled fault; on failure
// the extracted syntax is still present so callers can display it as text.
func (p *Pipeline) Generate(ctx context.Context, content string) Result {
	p.seq++
	seq := p.seq

	src := parseSource(content)
	if src.Syntax == "" {
		return Result{
			Success: false,
			Type:    TypeUnknown,
			Err:     "no usable diagram syntax found in content",
		}
	}

	id := fmt.Sprintf("diagram-%d-%s", seq, shortID())
	rendered, renderErr := p.render(ctx, &src, id)
	if renderErr != nil {
		return Result{
			Success: false,
			Syntax:  src.Syntax,
			Type:    src.Type,
			Title:   src.Title,
			Err:     renderErr.Error(),
		}
	}

	artifact := &Artifact{
		ID:              id,
		Syntax:          src.Syntax,
		Type:            src.Type,
		Title:           src.Title,
		Description:     src.Description,
		RenderedContent: rendered,
		CreatedAt:       time.Now(),
	}
	p.store(seq, artifact)

	return Result{
		Success:         true,
		DiagramID:       artifact.ID,
		Syntax:          artifact.Syntax,
		Type:            artifact.Type,
		Title:           artifact.Title,
		RenderedContent: artifact.RenderedContent,
	}
}

// RenderSyntax renders ready-made diagram syntax, bypassing extraction.
// Used when syntax is produced directly, e.g. by an offline template.
func (p *Pipeline) RenderSyntax(ctx context.Context, title, syntax string) Result {
	p.seq++
	seq := p.seq

	syntax = strings.TrimSpace(syntax)
	if syntax == "" {
		return Result{
			Success: false,
			Type:    TypeUnknown,
			Err:     "no diagram syntax provided",
		}
	}

	src := source{
		Syntax: syntax,
		Type:   DetectType(syntax),
		Title:  title,
	}
	if src.Title == "" {
		src.Title = src.Type.Title()
	}

	id := fmt.Sprintf("diagram-%d-%s", seq, shortID())
	rendered, err := p.render(ctx, &src, id)
	if err != nil {
		return Result{
			Success: false,
			Syntax:  src.Syntax,
			Type:    src.Type,
			Title:   src.Title,
			Err:     err.Error(),
		}
	}

	artifact := &Artifact{
		ID:              id,
		Syntax:          src.Syntax,
		Type:            src.Type,
		Title:           src.Title,
		RenderedContent: rendered,
		CreatedAt:       time.Now(),
	}
	p.store(seq, artifact)

	return Result{
		Success:         true,
		DiagramID:       artifact.ID,
		Syntax:          artifact.Syntax,
		Type:            artifact.Type,
		Title:           artifact.Title,
		RenderedContent: artifact.RenderedContent,
	}
}

// render validates against the engine, repairs once on rejection, and
// renders. With no usable engine the static fallback block is returned.
func (p *Pipeline) render(ctx context.Context, src *source, id string) (string, error) {
	if p.engine == nil || !p.engine.Available(ctx) {
		return renderFallback(*src), nil
	}

	if err := p.engine.Parse(ctx, src.Syntax); err != nil {
		if !IsSyntaxError(err) {
			// Engine fault, not a grammar rejection: degrade to the
			// static block rather than failing the generation.
			return renderFallback(*src), nil
		}
		log.Printf("diagram: syntax rejected, applying repair pass: %v", err)
		src.Syntax = Repair(src.Syntax)
	}

	// Repaired output is rendered without re-validating; a failure here is
	// terminal for this diagram.
	rendered, err := p.engine.Render(ctx, src.Syntax, id)
	if err != nil {
		return "", fmt.Errorf("failed to render diagram: %w", err)
	}
	return rendered, nil
}

// store replaces the current artifact unless a newer generation has
// already stored one.
func (p *Pipeline) store(seq uint64, a *Artifact) {
	if seq < p.currentSeq {
		log.Printf("diagram: discarding stale generation %d (current %d)", seq, p.currentSeq)
		return
	}
	p.currentSeq = seq
	p.current = a
}

// Current returns the current artifact, or nil when none has been
// generated since the last Clear.
func (p *Pipeline) Current() *Artifact {
	return p.current
}

// Clear drops the current artifact.
func (p *Pipeline) Clear() {
	p.current = nil
}

// Stats summarizes the current artifact; nil when there is none.
func (p *Pipeline) Stats() *Stats {
	if p.current == nil {
		return nil
	}
	return &Stats{
		ID:             p.current.ID,
		Type:           p.current.Type,
		Title:          p.current.Title,
		SyntaxLength:   len(p.current.Syntax),
		HasDescription: p.current.Description != "",
		CreatedAt:      p.current.CreatedAt,
	}
}

func shortID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// =============================================================================
// EXAMPLES
// =============================================================================

// Examples returns starter syntax per dialect, used by help output and by
// the offline generator's templates.
func Examples() map[Type]string {
	return map[Type]string{
		TypeFlowchart: `graph TD
    A[Start] --> B{Decision}
    B -->|Yes| C[Action 1]
    B -->|No| D[Action 2]
    C --> E[End]
    D --> E`,
		TypeSequence: `sequenceDiagram
    participant A as User
    participant B as System
    A->>B: Request
    B-->>A: Response`,
		TypeClass: `classDiagram
    class Animal {
        +String name
        +int age
        +speak()
    }
    class Dog {
        +bark()
    }
    Animal <|-- Dog`,
		TypePie: `pie title Pet Ownership
    "Dogs" : 45
    "Cats" : 35
    "Birds" : 15
    "Fish" : 5`,
		TypeGantt: `gantt
    title Project Timeline
    dateFormat YYYY-MM-DD
    section Phase 1
    Task 1: 2024-01-01, 30d
    Task 2: after task1, 20d`,
	}
}
