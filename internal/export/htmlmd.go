package export

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// HTMLMarkdown converts HTML outputs (pandas tables, rich reprs) to
// Markdown so pandoc receives native tables instead of raw HTML.
type HTMLMarkdown struct {
	converter *converter.Converter
}

// NewHTMLMarkdown creates a converter with commonmark and GFM table rules.
// Script and style elements are dropped by the base plugin.
func NewHTMLMarkdown() *HTMLMarkdown {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &HTMLMarkdown{converter: conv}
}

// ConvertHTML implements HTMLConverter.
func (h *HTMLMarkdown) ConvertHTML(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	md, err := h.converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML output to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}
