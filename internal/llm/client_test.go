// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func completionHandler(t *testing.T, reply string, gotMessages *[]Message) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Helper()
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if gotMessages != nil {
			*gotMessages = req.Messages
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		})
	}
}

func TestSendIncludesPreambleAndHistory(t *testing.T) {
	var got []Message
	srv := httptest.NewServer(completionHandler(t, "hello back", &got))
	defer srv.Close()

	c := NewHTTPClient(ClientConfig{BaseURL: srv.URL, APIKey: "key"})

	reply, err := c.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply != "hello back" {
		t.Errorf("reply = %q", reply)
	}
	if len(got) != 2 || got[0].Role != RoleSystem {
		t.Fatalf("messages = %+v", got)
	}
	if !strings.Contains(got[0].Content, "[WIKIPEDIA: term]") {
		t.Errorf("system prompt missing tag grammar: %q", got[0].Content)
	}

	// Second send carries the first exchange.
	if _, err := c.Send(context.Background(), "again"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected system + 2 history + user, got %d messages", len(got))
	}
	if got[1].Content != "hello" || got[2].Content != "hello back" {
		t.Errorf("history window = %+v", got[1:3])
	}
}

func TestSendWithoutAPIKey(t *testing.T) {
	c := NewHTTPClient(ClientConfig{})
	if _, err := c.Send(context.Background(), "hi"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestSendRetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		completionHandler(t, "recovered", nil)(w, r)
	}))
	defer srv.Close()

	c := NewHTTPClient(ClientConfig{BaseURL: srv.URL, APIKey: "key"})
	reply, err := c.Send(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply != "recovered" || calls != 2 {
		t.Errorf("reply=%q calls=%d", reply, calls)
	}
}

func TestSendAuthFailureIsTerminal(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewHTTPClient(ClientConfig{BaseURL: srv.URL, APIKey: "bad"})
	_, err := c.Send(context.Background(), "hi")
	if !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("err = %v, want ErrAuthFailed", err)
	}
	if calls != 1 {
		t.Errorf("auth failures must not retry, got %d calls", calls)
	}
	if c.History().Len() != 0 {
		t.Error("failed sends must not be recorded in history")
	}
}

func TestConnectivityClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewHTTPClient(ClientConfig{BaseURL: srv.URL, APIKey: "key", MaxRetries: 1})
	_, err := c.Send(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsConnectivity(err) {
		t.Errorf("expected connectivity classification for %v", err)
	}
	if IsConnectivity(ErrAuthFailed) || IsConnectivity(&APIError{Status: 500}) {
		t.Error("backend refusals are not connectivity failures")
	}
}

func TestHistoryRingDropsOldestPairs(t *testing.T) {
	h := NewHistory(4)
	h.Record("u1", "a1")
	h.Record("u2", "a2")
	h.Record("u3", "a3")

	msgs := h.Messages()
	if len(msgs) != 4 {
		t.Fatalf("len = %d, want 4", len(msgs))
	}
	if msgs[0].Content != "u2" || msgs[3].Content != "a3" {
		t.Errorf("window = %+v", msgs)
	}
}
