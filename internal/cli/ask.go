// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"time"

	"github.com/ahamlabs/aham/internal/config"
)

// askTimeout bounds a one-shot question end to end, including search and
// rendering.
const askTimeout = 2 * time.Minute

// runAsk sends a single question and prints the reply.
func runAsk(cfg *config.Config, question string) int {
	a := build(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	reply := a.Process(ctx, question)
	printReply(reply)
	return 0
}
