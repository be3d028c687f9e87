// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the current diagram or presentation artifact to
// disk in a shareable format.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ahamlabs/aham/internal/diagram"
	"github.com/ahamlabs/aham/internal/presentation"
	"github.com/ahamlabs/aham/internal/util"
)

// =============================================================================
// INTERFACES
// =============================================================================

// DiagramExporter converts a diagram artifact to one output format.
type DiagramExporter interface {
	// Export converts the artifact to the target format.
	Export(a *diagram.Artifact) ([]byte, error)

	// FileExtension returns the extension including the dot, e.g. ".svg".
	FileExtension() string

	// MimeType returns the MIME type of the exported format.
	MimeType() string
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures where exports land.
type Options struct {
	// OutputDir is where files are written. Default: current directory.
	OutputDir string
}

// DefaultOptions returns the default export options.
func DefaultOptions() *Options {
	return &Options{OutputDir: "."}
}

// =============================================================================
// FILE WRITING
// =============================================================================

// WriteDiagram exports the artifact and writes it to a timestamped file.
// It returns the output path.
func WriteDiagram(a *diagram.Artifact, exporter DiagramExporter, opts *Options) (string, error) {
	if a == nil {
		return "", fmt.Errorf("no diagram to export")
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(a)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := fmt.Sprintf("diagram_%s_%s%s",
		sanitizeFilename(a.Title),
		time.Now().Format("20060102_150405"),
		exporter.FileExtension(),
	)
	return writeFile(opts.OutputDir, filename, content)
}

// WriteDeck renders the deck to a self-contained HTML file and writes it
// to a timestamped file. It returns the output path.
func WriteDeck(deck *presentation.Deck, opts *Options) (string, error) {
	if deck == nil {
		return "", fmt.Errorf("no presentation to export")
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	content := deckHTML(deck)

	filename := fmt.Sprintf("presentation_%s_%s.html",
		sanitizeFilename(deck.Title),
		time.Now().Format("20060102_150405"),
	)
	return writeFile(opts.OutputDir, filename, []byte(content))
}

func writeFile(dir, filename string, content []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outputPath := filepath.Join(dir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// sanitizeFilename replaces characters that are invalid in filenames on
// either Windows or Unix.
func sanitizeFilename(s string) string {
	const maxLen = 50
	runes := []rune(s)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}

	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			out = append(out, '-')
		case ' ', '\t', '\n', '\r':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return "untitled"
	}
	return string(out)
}
