// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant is the conversation core: it sends the user's message
// to the model (or the offline generator), classifies the response for
// tool tags, and routes tagged content to the diagram, presentation, and
// search pipelines. Every path returns a displayable Reply.
package assistant

import (
	"context"
	"fmt"
	"log"

	"github.com/ahamlabs/aham/internal/classify"
	"github.com/ahamlabs/aham/internal/diagram"
	"github.com/ahamlabs/aham/internal/llm"
	"github.com/ahamlabs/aham/internal/mode"
	"github.com/ahamlabs/aham/internal/offline"
	"github.com/ahamlabs/aham/internal/presentation"
	"github.com/ahamlabs/aham/internal/search"
)

// Reply is the displayable outcome of one message. Text is always safe to
// show; the artifact fields are set when the corresponding pipeline ran.
type Reply struct {
	Text   string
	Mode   mode.Mode
	Intent classify.Intent

	Diagram      *diagram.Result
	Presentation *presentation.Result
	Search       *search.Result
}

// Assistant wires the conversation pipelines together. Construct with New
// and share one instance per conversation.
type Assistant struct {
	client   llm.Client
	modes    *mode.Controller
	offline  *offline.Generator
	diagrams *diagram.Pipeline
	decks    *presentation.Pipeline
	searcher *search.Orchestrator
}

// Config wires an Assistant. Client may be nil only when the controller
// starts offline.
type Config struct {
	Client   llm.Client
	Modes    *mode.Controller
	Diagrams *diagram.Pipeline
	Decks    *presentation.Pipeline
	Searcher *search.Orchestrator
}

// New builds an Assistant. Nil pipelines get working defaults.
func New(cfg Config) *Assistant {
	if cfg.Modes == nil {
		cfg.Modes = mode.New(cfg.Client == nil)
	}
	if cfg.Diagrams == nil {
		cfg.Diagrams = diagram.NewPipeline(nil)
	}
	if cfg.Decks == nil {
		cfg.Decks = presentation.NewPipeline()
	}
	if cfg.Searcher == nil {
		cfg.Searcher = search.NewOrchestrator(search.OrchestratorConfig{})
	}
	return &Assistant{
		client:   cfg.Client,
		modes:    cfg.Modes,
		offline:  offline.NewGenerator(),
		diagrams: cfg.Diagrams,
		decks:    cfg.Decks,
		searcher: cfg.Searcher,
	}
}

// Modes exposes the mode controller for status display.
func (a *Assistant) Modes() *mode.Controller { return a.modes }

// Diagrams exposes the diagram pipeline for export commands.
func (a *Assistant) Diagrams() *diagram.Pipeline { return a.diagrams }

// Decks exposes the presentation pipeline for export commands.
func (a *Assistant) Decks() *presentation.Pipeline { return a.decks }

// Searcher exposes the search orchestrator for cache commands.
func (a *Assistant) Searcher() *search.Orchestrator { return a.searcher }

// Process handles one user message end to end. Any failed model call
// flips the assistant offline and the same message is answered by the
// offline generator, so the user always gets a reply.
func (a *Assistant) Process(ctx context.Context, message string) *Reply {
	if a.modes.Offline() || a.client == nil {
		return a.processOffline(ctx, message)
	}

	raw, err := a.client.Send(ctx, message)
	if err != nil {
		a.modes.Fail(err)
		log.Printf("assistant: model call failed, answering offline: %v", err)
		reply := a.processOffline(ctx, message)
		reply.Text = llm.UserFacingMessage(err) + "\n\n" + reply.Text
		return reply
	}

	return a.route(ctx, raw)
}

// ProbeOnline checks the backend and restores online mode on success.
func (a *Assistant) ProbeOnline(ctx context.Context) error {
	if a.client == nil {
		return llm.ErrNotConfigured
	}
	return a.modes.Probe(ctx, a.client)
}

// route dispatches a classified model response to the matching pipeline.
func (a *Assistant) route(ctx context.Context, raw string) *Reply {
	c := classify.Classify(raw)
	reply := &Reply{Intent: c.Intent}

	switch c.Intent {
	case classify.IntentPresentation:
		res := a.decks.Generate(c.Content)
		reply.Presentation = res
		if res.Success {
			reply.Text = fmt.Sprintf("Created a %d-slide presentation.", res.SlideCount)
		} else {
			reply.Text = c.Content
		}

	case classify.IntentDiagram:
		res := a.diagrams.Generate(ctx, c.Content)
		reply.Diagram = &res
		if res.Success {
			reply.Text = fmt.Sprintf("Generated diagram: %s", res.Title)
		} else {
			reply.Text = c.Content
		}

	case classify.IntentWikipedia:
		reply.Search = a.searcher.Search(ctx, c.Term, search.SourceWikipedia)
		reply.Text = a.summarize(ctx, reply.Search)

	case classify.IntentSearch:
		reply.Search = a.searcher.Search(ctx, c.Term, search.SourceAuto)
		reply.Text = a.summarize(ctx, reply.Search)

	default:
		// Visual responses have no renderer of their own; the descriptive
		// text is the artifact.
		reply.Text = c.Content
	}
	// A summarize call can fail mid-route and trip the controller.
	reply.Mode = a.modes.Current()
	return reply
}

// summarize asks the model to digest search results into prose. When the
// lookup failed or the model is unavailable the formatted results are
// shown directly.
func (a *Assistant) summarize(ctx context.Context, res *search.Result) string {
	formatted := search.FormatResults(res)
	if !res.Success || a.client == nil {
		return formatted
	}

	prompt := fmt.Sprintf(
		"Summarize these search results for the user in a short paragraph. Do not use a tool tag.\n\n%s",
		formatted)
	summary, err := a.client.Send(ctx, prompt)
	if err != nil {
		a.modes.Fail(err)
		return formatted
	}
	return summary
}

// processOffline answers from templates and feeds structured artifacts to
// the same pipelines the online path uses.
func (a *Assistant) processOffline(ctx context.Context, message string) *Reply {
	resp := a.offline.Respond(message)
	reply := &Reply{Text: resp.Text, Mode: mode.Offline}

	switch resp.Type {
	case offline.TypeDiagram:
		res := a.diagrams.RenderSyntax(ctx, resp.Title, resp.Syntax)
		reply.Diagram = &res
		reply.Intent = classify.IntentDiagram

	case offline.TypePresentation:
		reply.Presentation = a.decks.RenderDeck(resp.Title, resp.Slides)
		reply.Intent = classify.IntentPresentation

	default:
		reply.Intent = classify.IntentPlain
	}
	return reply
}
