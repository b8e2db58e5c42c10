// Package preview renders Markdown for quick inspection: a standalone HTML
// page via goldmark and a truncated text excerpt.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// TruncationMarker is appended to excerpts cut by Excerpt.
const TruncationMarker = "\n\n[...truncated for preview...]"

// ErrRender indicates the HTML rendering failed.
var ErrRender = errors.New("preview rendering failed")

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { max-width: 50em; margin: 2em auto; padding: 0 1em; font-family: sans-serif; line-height: 1.5; }
pre { overflow-x: auto; padding: .5em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: .25em .5em; }
img { max-width: 100%%; }
</style>
</head>
<body>
%s
</body>
</html>`

// Renderer converts Markdown to a standalone HTML page.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GFM, footnotes and inline-styled
// syntax highlighting. Raw HTML in the Markdown (notebook tables, raw cells)
// is only passed through when allowRawHTML is set.
func NewRenderer(allowRawHTML bool) *Renderer {
	rendererOpts := []goldmark.Option{}
	if allowRawHTML {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(gmhtml.WithUnsafe()))
	}

	md := goldmark.New(append([]goldmark.Option{
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
		),
	}, rendererOpts...)...)
	return &Renderer{md: md}
}

// Render converts markdown to a complete HTML5 document titled title.
// Goldmark has no context support, so cancellation is checked around the
// conversion goroutine.
func (r *Renderer) Render(ctx context.Context, markdown []byte, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert(markdown, &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		done <- result{html: fmt.Sprintf(pageTemplate, html.EscapeString(title), buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// FirstHeading returns the plain text of the first level-1 heading, or ""
// when the document has none.
func FirstHeading(markdown []byte) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(markdown))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level == 1 {
			title = strings.TrimSpace(plainText(heading, markdown))
			return ast.WalkStop, nil
		}
		return ast.WalkSkipChildren, nil
	})
	return title
}

func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		default:
			b.WriteString(plainText(c, source))
		}
	}
	return b.String()
}

// Excerpt returns the first limit runes of markdown followed by
// TruncationMarker, or markdown unchanged when it is short enough.
// A non-positive limit disables truncation.
func Excerpt(markdown string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(markdown) <= limit {
		return markdown
	}
	n := 0
	for i := range markdown {
		if n == limit {
			return markdown[:i] + TruncationMarker
		}
		n++
	}
	return markdown
}
