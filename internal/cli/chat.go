// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/peterh/liner"

	"github.com/ahamlabs/aham/internal/assistant"
	"github.com/ahamlabs/aham/internal/config"
	"github.com/ahamlabs/aham/internal/export"
)

// messageTimeout bounds one chat turn.
const messageTimeout = 2 * time.Minute

// =============================================================================
// INPUT
// =============================================================================

// chatInput wraps liner with persistent history, so arrow keys navigate
// previous messages across sessions.
type chatInput struct {
	line        *liner.State
	historyFile string
}

func newChatInput() *chatInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile := ""
	if path, err := config.Path(); err == nil {
		historyFile = filepath.Join(filepath.Dir(path), "chat_history")
	}

	in := &chatInput{line: line, historyFile: historyFile}
	if f, err := os.Open(in.historyFile); err == nil {
		in.line.ReadHistory(f)
		f.Close()
	}
	return in
}

func (in *chatInput) Read(prompt string) (string, error) {
	input, err := in.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		in.line.AppendHistory(input)
	}
	return input, nil
}

func (in *chatInput) Close() {
	if in.historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(in.historyFile), 0o700); err == nil {
			if f, err := os.OpenFile(in.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600); err == nil {
				in.line.WriteHistory(f)
				f.Close()
			}
		}
	}
	in.line.Close()
}

// =============================================================================
// CHAT LOOP
// =============================================================================

// session holds the live assistant and its config. A config reload swaps
// both under the mutex so the loop always reads a matched pair.
type session struct {
	mu  sync.Mutex
	cfg *config.Config
	a   *assistant.Assistant
}

func newSession(cfg *config.Config) *session {
	return &session{cfg: cfg, a: build(cfg)}
}

func (s *session) current() (*assistant.Assistant, *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a, s.cfg
}

// reload rebuilds the assistant from a changed config. Conversation
// history and current artifacts are reset along with the clients.
func (s *session) reload(cfg *config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.a = build(cfg)
	s.mu.Unlock()
	log.Printf("config: reloaded, clients rebuilt")
}

// watchConfig starts the config file watcher. A nil return means live
// reload is unavailable; the chat still works.
func watchConfig(s *session) *config.Watcher {
	path, err := config.Path()
	if err != nil {
		return nil
	}
	w, err := config.Watch(path, s.reload)
	if err != nil {
		log.Printf("config: live reload disabled: %v", err)
		return nil
	}
	return w
}

// runChat runs the interactive loop until EOF or /quit.
func runChat(cfg *config.Config) int {
	s := newSession(cfg)

	if w := watchConfig(s); w != nil {
		defer w.Close()
	}

	fmt.Println(TitleStyle.Render("aham"))
	if a, _ := s.current(); a.Modes().Offline() {
		fmt.Println(OfflineBadge.Render("OFFLINE") + DimStyle.Render(" no model backend; template responses only"))
	}
	fmt.Println(DimStyle.Render("Type a message, /help for commands, /quit to exit."))

	in := newChatInput()
	defer in.Close()

	for {
		raw, err := in.Read("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println()
				return 0
			}
			errorf("reading input: %v", err)
			return 1
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		a, cfg := s.current()

		if strings.HasPrefix(line, "/") {
			if quit := handleCommand(a, cfg, line); quit {
				return 0
			}
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), messageTimeout)
		reply := a.Process(ctx, line)
		cancel()
		printReply(reply)
	}
}

// handleCommand executes one slash command. It returns true when the loop
// should exit.
func handleCommand(a *assistant.Assistant, cfg *config.Config, line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "/quit", "/exit":
		return true

	case "/help":
		printUsage()

	case "/status":
		printStatus(a)

	case "/probe":
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		err := a.ProbeOnline(ctx)
		cancel()
		if err != nil {
			errorf("still offline: %v", err)
		} else {
			fmt.Println(SuccessStyle.Render("online"))
		}

	case "/export":
		if len(args) == 0 {
			errorf("usage: /export svg|png|mmd|html")
			break
		}
		runExport(a, cfg, args[0])

	case "/cache":
		if len(args) == 1 && args[0] == "clear" {
			a.Searcher().ClearCache()
			fmt.Println(SuccessStyle.Render("search cache cleared"))
		} else {
			stats := a.Searcher().CacheStats()
			fmt.Printf("%s %d entries, %d hits, %d misses, %d evictions\n",
				LabelStyle.Render("cache"), stats.Entries, stats.Hits, stats.Misses, stats.Evictions)
		}

	case "/clear":
		a.Diagrams().Clear()
		a.Decks().Clear()
		fmt.Println(SuccessStyle.Render("artifacts cleared"))

	default:
		errorf("unknown command %s", cmd)
	}
	return false
}

func printStatus(a *assistant.Assistant) {
	fmt.Printf("%s %s\n", LabelStyle.Render("mode"), a.Modes().Current())
	if err := a.Modes().LastFailure(); err != nil {
		fmt.Printf("%s %v\n", LabelStyle.Render("last failure"), err)
	}

	cs := a.Searcher().CacheStats()
	fmt.Printf("%s %d entries, %d hits, %d misses\n",
		LabelStyle.Render("search cache"), cs.Entries, cs.Hits, cs.Misses)

	if d := a.Diagrams().Current(); d != nil {
		fmt.Printf("%s %s (%s)\n", LabelStyle.Render("diagram"), d.Title, d.Type)
	}
	if deck := a.Decks().Current(); deck != nil {
		st := a.Decks().Stats()
		fmt.Printf("%s %s, %d slides, ~%s\n",
			LabelStyle.Render("presentation"), deck.Title, st.SlideCount, st.EstimatedDuration)
	}
}

// runExport writes the current artifact in the requested format.
func runExport(a *assistant.Assistant, cfg *config.Config, format string) {
	opts := &export.Options{OutputDir: cfg.Export.OutputDir}

	var (
		path string
		err  error
	)
	switch format {
	case "svg":
		path, err = export.WriteDiagram(a.Diagrams().Current(), export.NewSVGExporter(), opts)
	case "png":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		path, err = export.WriteDiagram(a.Diagrams().Current(),
			export.NewPNGExporter(ctx, rasterizerFor(cfg)), opts)
	case "mmd":
		path, err = export.WriteDiagram(a.Diagrams().Current(), export.NewSourceExporter(), opts)
	case "html":
		path, err = export.WriteDeck(a.Decks().Current(), opts)
	default:
		errorf("unknown export format %q (svg, png, mmd, html)", format)
		return
	}

	if err != nil {
		errorf("export: %v", err)
		return
	}
	fmt.Println(SuccessStyle.Render("exported " + path))
}
