// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/ahamlabs/aham/internal/presentation"
)

// deckHTML wraps the deck's slide markup in a standalone reveal.js page.
// The CDN assets keep the file self-contained enough to open directly in a
// browser.
func deckHTML(deck *presentation.Deck) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/reveal.js@4.3.1/dist/reveal.css">
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/reveal.js@4.3.1/dist/theme/white.css">
    <style>
        .subtitle { font-style: italic; color: #666; }
        .content { text-align: left; }
        .content ul { margin-left: 1em; }
    </style>
</head>
<body>
    <div class="reveal">
        <div class="slides">
`, html.EscapeString(deck.Title))

	b.WriteString(deck.Markup)

	b.WriteString(`
        </div>
    </div>
    <script src="https://cdn.jsdelivr.net/npm/reveal.js@4.3.1/dist/reveal.js"></script>
    <script>
        Reveal.initialize({
            hash: true,
            controls: true,
            progress: true,
            center: true,
            transition: 'slide'
        });
    </script>
</body>
</html>
`)
	return b.String()
}
