// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package diagram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// =============================================================================
// ENGINE CONTRACT
// =============================================================================

// Engine is the external rendering collaborator. The pipeline only needs
// "parse(syntax) -> ok | fails" and "render(syntax) -> markup"; everything
// else (themes, layout) belongs to the engine.
type Engine interface {
	// Available reports whether the engine can be used at all. An
	// unavailable engine routes every render through the static fallback.
	Available(ctx context.Context) bool

	// Parse validates syntax against the engine's own grammar.
	Parse(ctx context.Context, syntax string) error

	// Render renders syntax to vector markup under the given element ID.
	Render(ctx context.Context, syntax, id string) (string, error)
}

// Rasterizer is implemented by engines that can also rasterize rendered
// markup to a PNG against a white background. Export falls back to an
// error when the configured engine cannot.
type Rasterizer interface {
	Rasterize(ctx context.Context, svg string) ([]byte, error)
}

// =============================================================================
// ENGINE ERRORS
// =============================================================================

// EngineError represents an error from the render engine service.
type EngineError struct {
	Type    EngineErrorType
	Message string
	Cause   error
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

// EngineErrorType categorizes engine errors for handling.
type EngineErrorType int

const (
	EngineErrUnknown EngineErrorType = iota
	EngineErrUnavailable
	EngineErrSyntax
	EngineErrRender
)

// ErrEngineUnavailable means the engine service is not reachable.
var ErrEngineUnavailable = &EngineError{Type: EngineErrUnavailable, Message: "render engine is not reachable"}

// IsSyntaxError reports whether err is a grammar rejection (as opposed to
// an engine availability or render fault).
func IsSyntaxError(err error) bool {
	var ee *EngineError
	return errors.As(err, &ee) && ee.Type == EngineErrSyntax
}

// =============================================================================
// HTTP ENGINE
// =============================================================================

// HTTPEngineConfig holds configuration for the HTTP render engine client.
type HTTPEngineConfig struct {
	// BaseURL of the render service (default: http://127.0.0.1:8411)
	BaseURL string

	// Timeout for parse/render calls (default: 10s)
	Timeout time.Duration
}

// DefaultHTTPEngineConfig returns the default engine configuration.
func DefaultHTTPEngineConfig() *HTTPEngineConfig {
	return &HTTPEngineConfig{
		BaseURL: "http://127.0.0.1:8411",
		Timeout: 10 * time.Second,
	}
}

// HTTPEngine talks to a mermaid-compatible render service over HTTP.
// Endpoints: POST /parse, POST /render, POST /rasterize; GET / for health.
type HTTPEngine struct {
	config     *HTTPEngineConfig
	httpClient *http.Client
}

// NewHTTPEngine creates an engine client, filling defaults for zero values.
func NewHTTPEngine(config *HTTPEngineConfig) *HTTPEngine {
	if config == nil {
		config = DefaultHTTPEngineConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8411"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	return &HTTPEngine{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

type renderRequest struct {
	Syntax string `json:"syntax"`
	ID     string `json:"id,omitempty"`
}

type renderResponse struct {
	SVG   string `json:"svg"`
	Error string `json:"error"`
}

// Available reports whether the engine service responds to a health probe.
func (e *HTTPEngine) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.config.BaseURL, nil)
	if err != nil {
		return false
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Parse validates syntax against the engine's grammar. A 400 response is a
// syntax rejection; anything else non-OK is an engine fault.
func (e *HTTPEngine) Parse(ctx context.Context, syntax string) error {
	resp, err := e.post(ctx, "/parse", renderRequest{Syntax: syntax})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		var body renderResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &EngineError{Type: EngineErrSyntax, Message: engineMessage(body.Error, "syntax rejected")}
	default:
		return &EngineError{Type: EngineErrRender, Message: "parse request failed: " + resp.Status}
	}
}

// Render renders syntax to SVG markup.
func (e *HTTPEngine) Render(ctx context.Context, syntax, id string) (string, error) {
	resp, err := e.post(ctx, "/render", renderRequest{Syntax: syntax, ID: id})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body renderResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return "", &EngineError{Type: EngineErrRender, Message: engineMessage(body.Error, "render request failed: "+resp.Status)}
	}

	var body renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &EngineError{Type: EngineErrRender, Message: "failed to decode render response", Cause: err}
	}
	return body.SVG, nil
}

// Rasterize converts rendered SVG to PNG bytes on a white background.
func (e *HTTPEngine) Rasterize(ctx context.Context, svg string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"svg": svg, "background": "white"})
	if err != nil {
		return nil, &EngineError{Type: EngineErrRender, Message: "failed to marshal rasterize request", Cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.config.BaseURL+"/rasterize", bytes.NewReader(body))
	if err != nil {
		return nil, &EngineError{Type: EngineErrRender, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, ErrEngineUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &EngineError{Type: EngineErrRender, Message: "rasterize request failed: " + resp.Status}
	}
	return io.ReadAll(resp.Body)
}

func (e *HTTPEngine) post(ctx context.Context, path string, payload renderRequest) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &EngineError{Type: EngineErrRender, Message: "failed to marshal request", Cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &EngineError{Type: EngineErrRender, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &EngineError{Type: EngineErrUnavailable, Message: "render engine timed out", Cause: err}
		}
		return nil, ErrEngineUnavailable
	}
	return resp, nil
}

func engineMessage(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
