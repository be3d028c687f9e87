// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/ahamlabs/aham/internal/assistant"
	"github.com/ahamlabs/aham/internal/mode"
)

// markdownRenderer renders assistant prose for the terminal. A nil
// renderer means plain text passthrough.
var markdownRenderer *glamour.TermRenderer

func init() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err == nil {
		markdownRenderer = r
	}
}

func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// printReply writes one assistant reply to stdout, badging offline
// responses and summarizing any artifact that was produced.
func printReply(reply *assistant.Reply) {
	if reply.Mode == mode.Offline {
		fmt.Println(OfflineBadge.Render("OFFLINE"))
	}

	if reply.Text != "" {
		fmt.Print(renderMarkdown(reply.Text))
		if !strings.HasSuffix(reply.Text, "\n") {
			fmt.Println()
		}
	}

	if d := reply.Diagram; d != nil {
		if d.Success {
			fmt.Println(DimStyle.Render(fmt.Sprintf("[diagram %s: %s] use /export svg to save", d.DiagramID, d.Type)))
		} else {
			fmt.Println(ErrorStyle.Render("diagram failed: " + d.Err))
			if d.Syntax != "" {
				fmt.Println(DimStyle.Render(d.Syntax))
			}
		}
	}

	if p := reply.Presentation; p != nil {
		if p.Success {
			fmt.Println(DimStyle.Render(fmt.Sprintf("[%d slides ready] use /export html to save", p.SlideCount)))
		} else {
			fmt.Println(ErrorStyle.Render("presentation failed: " + p.Err))
		}
	}
}

func errorf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}
