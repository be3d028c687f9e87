// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType classifies search failures.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeEmptyQuery
	ErrorTypeConnectivity
	ErrorTypeHTTP
	ErrorTypeDecode
)

// String returns the error type name.
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeEmptyQuery:
		return "empty_query"
	case ErrorTypeConnectivity:
		return "connectivity"
	case ErrorTypeHTTP:
		return "http"
	case ErrorTypeDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is a typed search failure carrying the source it came from.
type Error struct {
	Type    ErrorType
	Source  Source
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("search (%s): %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("search (%s): %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrEmptyQuery is returned when the query normalizes to nothing.
var ErrEmptyQuery = &Error{Type: ErrorTypeEmptyQuery, Message: "query is empty after normalization"}

// IsConnectivityError reports whether err is a network-level failure, as
// opposed to a backend answering with an error status.
func IsConnectivityError(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Type == ErrorTypeConnectivity
}
