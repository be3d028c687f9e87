// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the aham command line interface: a one-shot ask
// command and an interactive chat loop, both backed by the same assistant
// wiring.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ahamlabs/aham/internal/assistant"
	"github.com/ahamlabs/aham/internal/cache"
	"github.com/ahamlabs/aham/internal/config"
	"github.com/ahamlabs/aham/internal/diagram"
	"github.com/ahamlabs/aham/internal/llm"
	"github.com/ahamlabs/aham/internal/mode"
	"github.com/ahamlabs/aham/internal/presentation"
	"github.com/ahamlabs/aham/internal/search"
)

// Version information, set at build time.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// Run dispatches the command line and returns the process exit code.
func Run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		errorf("config: %v", err)
		return 1
	}

	if len(args) == 0 {
		return runChat(cfg)
	}

	switch args[0] {
	case "ask":
		if len(args) < 2 {
			errorf("usage: aham ask \"question\"")
			return 1
		}
		return runAsk(cfg, strings.Join(args[1:], " "))
	case "chat":
		return runChat(cfg)
	case "version", "--version", "-v":
		fmt.Printf("aham %s (%s)\n", Version, GitCommit)
		return 0
	case "help", "--help", "-h":
		printUsage()
		return 0
	default:
		errorf("unknown command %q", args[0])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println(TitleStyle.Render("aham - conversational assistant"))
	fmt.Println(`
Usage:
  aham              Start an interactive chat
  aham chat         Start an interactive chat
  aham ask "..."    Ask a single question and exit
  aham version      Print version information
  aham help         Show this help

Chat commands:
  /status           Show mode, cache, and artifact status
  /probe            Try to go back online
  /export FORMAT    Export the current artifact (svg, png, mmd, html)
  /cache clear      Drop cached search results
  /clear            Discard current artifacts
  /quit             Exit`)
}

// build assembles the assistant from config.
func build(cfg *config.Config) *assistant.Assistant {
	var client llm.Client
	if cfg.LLM.APIKey != "" {
		client = llm.NewHTTPClient(llm.ClientConfig{
			BaseURL:      cfg.LLM.BaseURL,
			APIKey:       cfg.LLM.APIKey,
			Model:        cfg.LLM.Model,
			Timeout:      time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
			MaxRetries:   cfg.LLM.MaxRetries,
			HistoryLimit: cfg.LLM.HistoryLimit,
		})
	}

	engine := diagram.NewHTTPEngine(&diagram.HTTPEngineConfig{
		BaseURL: cfg.Render.EngineURL,
		Timeout: time.Duration(cfg.Render.TimeoutSecs) * time.Second,
	})

	searchTimeout := time.Duration(cfg.Search.TimeoutSecs) * time.Second
	searcher := search.NewOrchestrator(search.OrchestratorConfig{
		Wikipedia: search.NewWikipediaClient(search.WikipediaConfig{
			BaseURL:           cfg.Search.WikipediaURL,
			Timeout:           searchTimeout,
			RequestsPerSecond: cfg.Search.RequestsPerSecond,
		}),
		DuckDuckGo: search.NewDuckDuckGoClient(search.DuckDuckGoConfig{
			BaseURL:           cfg.Search.DuckDuckGoURL,
			Timeout:           searchTimeout,
			RequestsPerSecond: cfg.Search.RequestsPerSecond,
		}),
		Cache: cache.New[search.Result](cfg.Cache.MaxEntries, cfg.CacheTTL()),
	})

	startOffline := cfg.Offline.ForceOffline || client == nil
	return assistant.New(assistant.Config{
		Client:   client,
		Modes:    mode.New(startOffline),
		Diagrams: diagram.NewPipeline(engine),
		Decks:    presentation.NewPipeline(),
		Searcher: searcher,
	})
}

// rasterizerFor returns the configured engine when it supports PNG
// export.
func rasterizerFor(cfg *config.Config) diagram.Rasterizer {
	return diagram.NewHTTPEngine(&diagram.HTTPEngineConfig{
		BaseURL: cfg.Render.EngineURL,
		Timeout: time.Duration(cfg.Render.TimeoutSecs) * time.Second,
	})
}
