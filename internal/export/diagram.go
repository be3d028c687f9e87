// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahamlabs/aham/internal/diagram"
)

// =============================================================================
// SVG
// =============================================================================

// SVGExporter writes the rendered SVG as-is. Fallback-rendered artifacts
// carry HTML rather than SVG and are rejected.
type SVGExporter struct{}

// NewSVGExporter returns an SVG exporter.
func NewSVGExporter() *SVGExporter { return &SVGExporter{} }

func (e *SVGExporter) Export(a *diagram.Artifact) ([]byte, error) {
	if !strings.Contains(a.RenderedContent, "<svg") {
		return nil, fmt.Errorf("diagram %s has no rendered SVG", a.ID)
	}
	return []byte(a.RenderedContent), nil
}

func (e *SVGExporter) FileExtension() string { return ".svg" }
func (e *SVGExporter) MimeType() string      { return "image/svg+xml" }

// =============================================================================
// PNG
// =============================================================================

// PNGExporter rasterizes the rendered SVG through the engine, which draws
// it on a white background.
type PNGExporter struct {
	rasterizer diagram.Rasterizer
	ctx        context.Context
}

// NewPNGExporter returns a PNG exporter backed by r.
func NewPNGExporter(ctx context.Context, r diagram.Rasterizer) *PNGExporter {
	return &PNGExporter{rasterizer: r, ctx: ctx}
}

func (e *PNGExporter) Export(a *diagram.Artifact) ([]byte, error) {
	if e.rasterizer == nil {
		return nil, fmt.Errorf("no rasterizer available for PNG export")
	}
	if !strings.Contains(a.RenderedContent, "<svg") {
		return nil, fmt.Errorf("diagram %s has no rendered SVG", a.ID)
	}
	png, err := e.rasterizer.Rasterize(e.ctx, a.RenderedContent)
	if err != nil {
		return nil, fmt.Errorf("rasterizing diagram: %w", err)
	}
	return png, nil
}

func (e *PNGExporter) FileExtension() string { return ".png" }
func (e *PNGExporter) MimeType() string      { return "image/png" }

// =============================================================================
// MERMAID SOURCE
// =============================================================================

// SourceExporter writes the mermaid syntax itself, always available even
// when rendering failed.
type SourceExporter struct{}

// NewSourceExporter returns a mermaid source exporter.
func NewSourceExporter() *SourceExporter { return &SourceExporter{} }

func (e *SourceExporter) Export(a *diagram.Artifact) ([]byte, error) {
	if strings.TrimSpace(a.Syntax) == "" {
		return nil, fmt.Errorf("diagram %s has no syntax", a.ID)
	}
	return []byte(a.Syntax + "\n"), nil
}

func (e *SourceExporter) FileExtension() string { return ".mmd" }
func (e *SourceExporter) MimeType() string      { return "text/plain" }
