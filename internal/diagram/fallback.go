// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package diagram

import (
	"fmt"
	"html"
)

// renderFallback produces the static, styled block used when no render
// engine is available: the raw syntax as preformatted text, labeled with
// the detected dialect. It guarantees the pipeline always returns
// something displayable.
func renderFallback(src source) string {
	return fmt.Sprintf(`<div class="diagram-fallback">
    <h3>%s</h3>
    <div class="diagram-fallback-body">
        <h4>Diagram type: %s</h4>
        <pre>%s</pre>
    </div>
    <p class="diagram-fallback-note">Interactive rendering requires a diagram engine.</p>
</div>`,
		html.EscapeString(src.Title),
		html.EscapeString(src.Type.String()),
		html.EscapeString(src.Syntax),
	)
}
