// Package export renders decoded notebooks as Markdown.
//
// The output follows the rules of nbconvert's Markdown exporter: markdown
// cells verbatim, code inputs as fenced blocks, stream and plain-text outputs
// indented as code, rich outputs picked by mimetype priority.
package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-nbreport/internal/notebook"
)

// ImageMode controls how image outputs are written.
type ImageMode string

// Image modes.
const (
	// ImagesEmbed inlines images as base64 data URIs.
	ImagesEmbed ImageMode = "embed"
	// ImagesReference links to output_<cell>_<output>.<ext> files. The image
	// bytes themselves are not written.
	ImagesReference ImageMode = "reference"
	// ImagesOmit drops image outputs.
	ImagesOmit ImageMode = "omit"
)

// ErrInvalidImageMode is returned for an ImageMode outside the known set.
var ErrInvalidImageMode = errors.New("invalid image mode")

// Valid reports whether m is a known mode. The empty mode means ImagesEmbed.
func (m ImageMode) Valid() bool {
	switch m {
	case "", ImagesEmbed, ImagesReference, ImagesOmit:
		return true
	}
	return false
}

// HTMLConverter turns an HTML output into Markdown.
type HTMLConverter interface {
	ConvertHTML(html string) (string, error)
}

// Options selects what the exporter writes.
type Options struct {
	ExcludeInput        bool
	ExcludeInputPrompt  bool
	ExcludeOutputPrompt bool
	ExcludeOutput       bool
	ExcludeMarkdown     bool
	ExcludeRaw          bool

	// ShowPrompts writes "In [n]:" and "Out[n]:" lines. nbconvert's Markdown
	// template writes none.
	ShowPrompts bool

	Images ImageMode

	// HTML converts text/html outputs. Nil keeps them as raw HTML.
	HTML HTMLConverter

	RemoveCellTags   []string
	RemoveInputTags  []string
	RemoveOutputTags []string
}

// Markdown renders nb. Cells keep their file order and are separated by one
// blank line; non-empty output ends with a single newline.
func Markdown(nb *notebook.Notebook, opts Options) (string, error) {
	if !opts.Images.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidImageMode, opts.Images)
	}
	if opts.Images == "" {
		opts.Images = ImagesEmbed
	}

	r := &renderer{opts: opts, language: nb.Language()}
	blocks := make([]string, 0, len(nb.Cells))
	for i, cell := range nb.Cells {
		if cell.Metadata.HasTag(opts.RemoveCellTags) {
			continue
		}
		block, err := r.cell(i, cell)
		if err != nil {
			return "", fmt.Errorf("cell %d: %w", i, err)
		}
		block = strings.TrimRight(block, "\n")
		if strings.TrimSpace(block) == "" {
			continue
		}
		blocks = append(blocks, block)
	}

	if len(blocks) == 0 {
		return "", nil
	}
	return strings.Join(blocks, "\n\n") + "\n", nil
}

type renderer struct {
	opts     Options
	language string
}

func (r *renderer) cell(index int, cell notebook.Cell) (string, error) {
	switch cell.Type {
	case notebook.MarkdownCell:
		if r.opts.ExcludeMarkdown {
			return "", nil
		}
		return r.inlineAttachments(cell.Source.String(), cell.Attachments), nil
	case notebook.RawCell:
		if r.opts.ExcludeRaw || !rawMimetypes[strings.ToLower(cell.Metadata.RawFormat())] {
			return "", nil
		}
		return cell.Source.String(), nil
	case notebook.CodeCell:
		return r.codeCell(index, cell)
	}
	return "", nil
}

// rawMimetypes are the raw cell targets the Markdown exporter passes through.
var rawMimetypes = map[string]bool{
	"":              true,
	"text/markdown": true,
	"text/html":     true,
}

func (r *renderer) codeCell(index int, cell notebook.Cell) (string, error) {
	var parts []string

	if !r.opts.ExcludeInput && !cell.Metadata.HasTag(r.opts.RemoveInputTags) {
		source := strings.TrimRight(cell.Source.String(), "\n")
		if strings.TrimSpace(source) != "" {
			if r.opts.ShowPrompts && !r.opts.ExcludeInputPrompt {
				parts = append(parts, prompt("In ", cell.ExecutionCount))
			}
			parts = append(parts, fence(source, r.codeLanguage(cell)))
		}
	}

	if r.opts.ExcludeOutput || cell.Metadata.HasTag(r.opts.RemoveOutputTags) {
		return strings.Join(parts, "\n\n"), nil
	}

	for j, out := range cell.Outputs {
		text, err := r.output(index, j, out)
		if err != nil {
			return "", fmt.Errorf("output %d: %w", j, err)
		}
		if text == "" {
			continue
		}
		if out.Type == notebook.ExecuteResultOutput && r.opts.ShowPrompts && !r.opts.ExcludeOutputPrompt {
			parts = append(parts, prompt("Out", out.ExecutionCount))
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n"), nil
}

func (r *renderer) codeLanguage(cell notebook.Cell) string {
	if cell.Metadata.MagicsLanguage != "" {
		return cell.Metadata.MagicsLanguage
	}
	if lang := magicLanguage(cell.Source.String()); lang != "" {
		return lang
	}
	return r.language
}

// prompt formats an execution prompt; cells that never ran show a blank count.
func prompt(label string, count *int) string {
	n := " "
	if count != nil {
		n = strconv.Itoa(*count)
	}
	return label + "[" + n + "]:"
}

// fence wraps source in a backtick fence long enough not to collide with
// any backtick run inside it.
func fence(source, language string) string {
	longest, run := 0, 0
	for _, c := range source {
		if c == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	marker := strings.Repeat("`", max(3, longest+1))
	return marker + language + "\n" + source + "\n" + marker
}

// indent prefixes every non-empty line with four spaces, making it an
// indented code block.
func indent(text string) string {
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = "    " + line
		} else {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}
