// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm talks to an OpenAI-compatible chat completions backend. The
// HTTPClient keeps a bounded conversation history and prefixes every
// request with the system preamble that teaches the model the tool tag
// grammar.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	// DefaultBaseURL is the default chat completions endpoint base.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultModel is used when the config names no model.
	DefaultModel = "openrouter/auto"

	// DefaultTimeout bounds one completion request.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRetries is the number of attempts for transient errors.
	DefaultMaxRetries = 3

	// retryBaseDelay is the base delay for exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// retryMaxDelay caps the backoff.
	retryMaxDelay = 10 * time.Second

	// maxResponseSize bounds how much of a response body is read.
	maxResponseSize = 10 * 1024 * 1024
)

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is the surface the assistant depends on. It is satisfied by
// HTTPClient and by test fakes.
type Client interface {
	// Send sends one user message and returns the assistant reply.
	Send(ctx context.Context, message string) (string, error)

	// Health probes the backend without touching conversation state.
	Health(ctx context.Context) error
}

// =============================================================================
// CONFIG
// =============================================================================

// ClientConfig configures HTTPClient. Zero values fall back to defaults.
type ClientConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	Timeout      time.Duration
	MaxRetries   int
	HistoryLimit int

	// SystemExtra is appended to the built-in system preamble.
	SystemExtra string
}

func (c *ClientConfig) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// HTTPClient is the production Client.
type HTTPClient struct {
	cfg     ClientConfig
	http    *http.Client
	history *History
}

// NewHTTPClient creates a client with pooled connections.
func NewHTTPClient(cfg ClientConfig) *HTTPClient {
	cfg.applyDefaults()
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &HTTPClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		history: NewHistory(cfg.HistoryLimit),
	}
}

// History exposes the conversation ring, mainly for tests and session
// reset commands.
func (c *HTTPClient) History() *History { return c.history }

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Send sends message with the system preamble and conversation window,
// retrying transient failures with exponential backoff. The exchange is
// recorded in history only on success.
func (c *HTTPClient) Send(ctx context.Context, message string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrNotConfigured
	}

	messages := []Message{{Role: RoleSystem, Content: SystemPrompt(c.cfg.SystemExtra)}}
	messages = append(messages, c.history.Messages()...)
	messages = append(messages, Message{Role: RoleUser, Content: message})

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff(attempt)):
			}
		}

		reply, err := c.complete(ctx, messages)
		if err != nil {
			if isRetryable(err) {
				lastErr = err
				continue
			}
			return "", err
		}

		c.history.Record(message, reply)
		return reply, nil
	}
	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

// Health sends a minimal completion request outside the conversation. It
// is the probe the mode controller uses to decide the backend is usable
// again.
func (c *HTTPClient) Health(ctx context.Context) error {
	if c.cfg.APIKey == "" {
		return ErrNotConfigured
	}
	_, err := c.complete(ctx, []Message{{Role: RoleUser, Content: "ping"}})
	return err
}

func (c *HTTPClient) complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.cfg.Model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, respBody)
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return cr.Choices[0].Message.Content, nil
}

func classifyStatus(status int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		switch status {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrAuthFailed, apiErr.Error.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Error.Message)
		}
		return &APIError{Code: apiErr.Error.Code, Message: apiErr.Error.Message, Status: status}
	}

	switch status {
	case http.StatusUnauthorized:
		return ErrAuthFailed
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return &APIError{Message: strings.TrimSpace(string(body)), Status: status}
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500 && apiErr.Status < 600
	}
	return false
}

func backoff(attempt int) time.Duration {
	delay := retryBaseDelay * time.Duration(1<<uint(attempt))
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}
