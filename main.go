// aham - conversational assistant with diagram, presentation, and search
// pipelines.
//
// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"github.com/ahamlabs/aham/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	os.Exit(cli.Run(os.Args[1:]))
}
