// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mode tracks whether the assistant is online (model backend
// reachable) or offline (local templates only).
//
// The transition is deliberately asymmetric: the first failed backend
// call flips the controller offline, but nothing flips it back
// implicitly. The only path back online is an explicit successful Probe.
// This keeps the assistant from flapping between modes on a marginal
// connection.
package mode

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ahamlabs/aham/internal/llm"
)

// Mode is the current operating mode.
type Mode int

const (
	Online Mode = iota
	Offline
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Offline {
		return "offline"
	}
	return "online"
}

// Controller holds the current mode. It is shared by the assistant and
// the CLI; construct one per process and inject it.
type Controller struct {
	mu      sync.Mutex
	offline bool

	lastFailure   error
	lastFlippedAt time.Time
	flips         int
}

// New creates a controller. startOffline forces offline mode from the
// first message, used when no API key is configured.
func New(startOffline bool) *Controller {
	return &Controller{offline: startOffline}
}

// Offline reports whether the controller is in offline mode.
func (c *Controller) Offline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offline
}

// Current returns the mode value.
func (c *Controller) Current() Mode {
	if c.Offline() {
		return Offline
	}
	return Online
}

// Fail records a backend failure and flips the controller offline. Every
// failed primary call counts, refusals included: once the backend has
// failed, nothing calls it again until a probe succeeds.
func (c *Controller) Fail(err error) {
	if err == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastFailure = err
	if c.offline {
		return
	}
	c.offline = true
	c.lastFlippedAt = time.Now()
	c.flips++
	log.Printf("mode: switching offline: %v", err)
}

// Probe checks the backend and, on success, restores online mode. This is
// the only transition back from offline.
func (c *Controller) Probe(ctx context.Context, client llm.Client) error {
	if err := client.Health(ctx); err != nil {
		c.Fail(err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.offline {
		c.offline = false
		c.lastFlippedAt = time.Now()
		c.flips++
		log.Printf("mode: backend reachable, back online")
	}
	return nil
}

// LastFailure returns the error that most recently tripped or kept the
// controller offline, or nil.
func (c *Controller) LastFailure() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFailure
}
