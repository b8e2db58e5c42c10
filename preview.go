package nbreport

import (
	"context"

	"github.com/alnah/go-nbreport/internal/preview"
)

// PreviewLimit is the excerpt length used by the CLI --preview flag.
const PreviewLimit = 1000

// PreviewText returns at most limit runes of markdown, followed by
// "\n\n[...truncated for preview...]" when something was cut.
func PreviewText(markdown string, limit int) string {
	return preview.Excerpt(markdown, limit)
}

// FirstHeading returns the text of the first level-1 heading in markdown,
// or "" when there is none. Used to derive a document title.
func FirstHeading(markdown []byte) string {
	return preview.FirstHeading(markdown)
}

// RenderHTML renders markdown as a standalone HTML page for inspection in a
// browser. Raw HTML blocks are kept only when allowRawHTML is set.
func RenderHTML(ctx context.Context, markdown []byte, title string, allowRawHTML bool) (string, error) {
	return preview.NewRenderer(allowRawHTML).Render(ctx, markdown, title)
}
