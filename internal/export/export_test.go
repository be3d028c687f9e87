// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ahamlabs/aham/internal/diagram"
	"github.com/ahamlabs/aham/internal/presentation"
)

func svgArtifact() *diagram.Artifact {
	return &diagram.Artifact{
		ID:              "diagram-1-abc",
		Title:           "Order Flow",
		Syntax:          "graph TD\nA --> B",
		RenderedContent: `<svg xmlns="http://www.w3.org/2000/svg"><rect/></svg>`,
	}
}

func TestWriteDiagramSVG(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDiagram(svgArtifact(), NewSVGExporter(), &Options{OutputDir: dir})
	if err != nil {
		t.Fatalf("WriteDiagram: %v", err)
	}
	if !strings.HasSuffix(path, ".svg") {
		t.Errorf("path = %q", path)
	}
	if !strings.Contains(path, "Order_Flow") {
		t.Errorf("title not sanitized into filename: %q", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(content), "<svg") {
		t.Errorf("content = %q", content)
	}
}

func TestSVGExportRejectsFallbackRender(t *testing.T) {
	a := svgArtifact()
	a.RenderedContent = `<div class="diagram-fallback">no renderer</div>`
	if _, err := NewSVGExporter().Export(a); err == nil {
		t.Error("expected error for fallback-rendered artifact")
	}
}

func TestSourceExportAlwaysAvailable(t *testing.T) {
	a := svgArtifact()
	a.RenderedContent = ""
	content, err := NewSourceExporter().Export(a)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasPrefix(string(content), "graph TD") {
		t.Errorf("content = %q", content)
	}
}

type fakeRasterizer struct {
	png []byte
	err error
}

func (f *fakeRasterizer) Rasterize(ctx context.Context, svg string) ([]byte, error) {
	return f.png, f.err
}

func TestPNGExport(t *testing.T) {
	e := NewPNGExporter(context.Background(), &fakeRasterizer{png: []byte{0x89, 'P', 'N', 'G'}})
	content, err := e.Export(svgArtifact())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(content) != 4 {
		t.Errorf("content = %v", content)
	}

	e = NewPNGExporter(context.Background(), &fakeRasterizer{err: errors.New("boom")})
	if _, err := e.Export(svgArtifact()); err == nil {
		t.Error("expected rasterizer error to surface")
	}

	e = NewPNGExporter(context.Background(), nil)
	if _, err := e.Export(svgArtifact()); err == nil {
		t.Error("expected error with no rasterizer")
	}
}

func TestWriteDeck(t *testing.T) {
	dir := t.TempDir()
	deck := &presentation.Deck{
		Title:  "Quarterly Review",
		Markup: `<section><h1>Quarterly Review</h1></section>`,
	}
	path, err := WriteDeck(deck, &Options{OutputDir: dir})
	if err != nil {
		t.Fatalf("WriteDeck: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	s := string(content)
	if !strings.Contains(s, "<title>Quarterly Review</title>") {
		t.Errorf("missing title in %q", s)
	}
	if !strings.Contains(s, "Reveal.initialize") {
		t.Error("missing reveal init script")
	}
	if !strings.Contains(s, deck.Markup) {
		t.Error("slide markup not embedded")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Order Flow", "Order_Flow"},
		{`a/b\c:d`, "a-b-c-d"},
		{"", "untitled"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
