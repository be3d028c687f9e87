// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common model-backend failures.
var (
	// ErrNotConfigured indicates no API key is set.
	ErrNotConfigured = errors.New("model API key not configured")

	// ErrAuthFailed indicates the backend rejected the API key.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmptyResponse indicates the backend answered with no content.
	ErrEmptyResponse = errors.New("model returned an empty response")
)

// APIError represents an error status from the model backend.
type APIError struct {
	Code    string
	Message string
	Status  int
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("model error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("model error (HTTP %d): %s", e.Status, e.Message)
}

// IsConnectivity reports whether err looks like a transport-level failure
// rather than the backend refusing the request.
func IsConnectivity(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return false
	}
	switch {
	case errors.Is(err, ErrNotConfigured),
		errors.Is(err, ErrAuthFailed),
		errors.Is(err, ErrRateLimited),
		errors.Is(err, ErrEmptyResponse):
		return false
	}
	return true
}

// UserFacingMessage maps an error to a short message safe to show in the
// conversation. Internal detail stays in the logs.
func UserFacingMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotConfigured):
		return "No model API key is configured. Set one in the config file or the AHAM_LLM_API_KEY environment variable."
	case errors.Is(err, ErrAuthFailed):
		return "The model backend rejected the API key."
	case errors.Is(err, ErrRateLimited):
		return "The model backend is rate limiting requests. Try again in a moment."
	case IsConnectivity(err):
		return "Could not reach the model backend. Switching to offline mode."
	default:
		return "The model backend returned an error."
	}
}
