// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import "sync"

// DefaultHistoryLimit is how many messages the conversation ring keeps.
const DefaultHistoryLimit = 20

// History is a bounded ring of conversation messages. When the limit is
// exceeded the oldest messages are dropped in pairs so a user message is
// never separated from its reply.
type History struct {
	mu       sync.Mutex
	messages []Message
	limit    int
}

// NewHistory creates a history ring. A non-positive limit falls back to
// DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Record appends one user/assistant exchange.
func (h *History) Record(user, assistant string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = append(h.messages,
		Message{Role: RoleUser, Content: user},
		Message{Role: RoleAssistant, Content: assistant},
	)
	for len(h.messages) > h.limit {
		h.messages = h.messages[2:]
	}
}

// Messages returns a copy of the current window, oldest first.
func (h *History) Messages() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of stored messages.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}

// Clear drops all stored messages.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}
