// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import "strings"

// systemPreamble teaches the model the tag grammar the classifier reads.
// Tags must open the response; everything after the tag line is the
// content for that tool.
const systemPreamble = `You are Aham, a helpful assistant.

When a response should be handled by a tool, start it with exactly one tag
on the first line:

[PRESENTATION] - follow with slide content; use "Slide N:" markers or
markdown headers to separate slides.
[DIAGRAM] - follow with a mermaid diagram, ideally inside a mermaid code
fence, optionally preceded by "Title:" and "Description:" lines.
[WIKIPEDIA: term] - look up "term" on Wikipedia. No other content needed.
[SEARCH: term] - run a web search for "term". No other content needed.
[VISUAL] - the response describes something to visualize.

Only use a tag when the user's request calls for it. For ordinary
conversation, reply with plain text and no tag.`

// SystemPrompt returns the preamble, with extra instructions appended when
// provided.
func SystemPrompt(extra string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return systemPreamble
	}
	return systemPreamble + "\n\n" + extra
}
