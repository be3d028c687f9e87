// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"fmt"
	"strings"
)

// FormatResults renders a result as markdown for direct display, used when
// no model is available to summarize the items.
func FormatResults(res *Result) string {
	if res == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### Search results for %q\n\n", res.Query)

	if len(res.Results) == 0 {
		b.WriteString("No results found.")
		if res.Err != "" {
			fmt.Fprintf(&b, " (%s)", res.Err)
		}
		return b.String()
	}

	for _, item := range res.Results {
		fmt.Fprintf(&b, "- **%s**", item.Title)
		if item.Summary != "" && item.Summary != item.Title {
			fmt.Fprintf(&b, " — %s", item.Summary)
		}
		if item.URL != "" {
			fmt.Fprintf(&b, "\n  %s", item.URL)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n_Source: %s_", res.Source)
	return b.String()
}
