package nbreport

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-nbreport/internal/export"
	"github.com/alnah/go-nbreport/internal/fileutil"
	"github.com/alnah/go-nbreport/internal/notebook"
)

// MIMEMarkdown is the media type of Markdown produced by NotebookConverter.
const MIMEMarkdown = "text/markdown"

// ImageMode controls how image outputs are written to Markdown.
type ImageMode = export.ImageMode

// Image modes.
const (
	ImagesEmbed     = export.ImagesEmbed
	ImagesReference = export.ImagesReference
	ImagesOmit      = export.ImagesOmit
)

// ExportOptions selects what the notebook export writes. The zero value
// keeps everything: markdown, code inputs, outputs, embedded images.
type ExportOptions struct {
	// ExcludeInput drops the source of code cells.
	ExcludeInput bool
	// ExcludeInputPrompt drops "In [n]:" prompts.
	ExcludeInputPrompt bool
	// ExcludeOutputPrompt drops "Out[n]:" prompts.
	ExcludeOutputPrompt bool
	// ExcludeOutput drops every code cell output.
	ExcludeOutput bool
	// ExcludeMarkdown drops markdown cells.
	ExcludeMarkdown bool
	// ExcludeRaw drops raw cells.
	ExcludeRaw bool

	// ShowPrompts writes execution prompts; off by default.
	ShowPrompts bool
	// HTMLToMarkdown converts HTML outputs (pandas tables) to Markdown.
	HTMLToMarkdown bool
	// Images defaults to ImagesEmbed.
	Images ImageMode

	// Cells, inputs or outputs carrying one of these tags are removed.
	RemoveCellTags   []string
	RemoveInputTags  []string
	RemoveOutputTags []string
}

// StripCodeOptions returns the options behind "remove code cells": code
// inputs and both prompt kinds excluded, outputs kept.
func StripCodeOptions() ExportOptions {
	return ExportOptions{
		ExcludeInput:        true,
		ExcludeInputPrompt:  true,
		ExcludeOutputPrompt: true,
	}
}

// Validate checks enumerated fields.
func (o ExportOptions) Validate() error {
	if !o.Images.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidImageMode, o.Images)
	}
	return nil
}

// NotebookConverter renders Jupyter notebooks as Markdown.
// It holds no per-call state and is safe for concurrent use.
type NotebookConverter struct {
	logger logrus.FieldLogger
	html   HTMLConverter
}

// NewNotebookConverter creates a converter. Relevant options are
// WithLogger and WithHTMLConverter.
func NewNotebookConverter(opts ...Option) *NotebookConverter {
	s := newSettings(opts)
	html := s.html
	if html == nil {
		html = export.NewHTMLMarkdown()
	}
	return &NotebookConverter{logger: s.logger, html: html}
}

// Convert decodes an nbformat 4 notebook and renders it as Markdown.
// The result depends only on data and opts. No files are written.
func (c *NotebookConverter) Convert(ctx context.Context, data []byte, opts ExportOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}

	nb, err := notebook.Parse(data)
	if err != nil {
		return "", err
	}

	exportOpts := export.Options{
		ExcludeInput:        opts.ExcludeInput,
		ExcludeInputPrompt:  opts.ExcludeInputPrompt,
		ExcludeOutputPrompt: opts.ExcludeOutputPrompt,
		ExcludeOutput:       opts.ExcludeOutput,
		ExcludeMarkdown:     opts.ExcludeMarkdown,
		ExcludeRaw:          opts.ExcludeRaw,
		ShowPrompts:         opts.ShowPrompts,
		Images:              opts.Images,
		RemoveCellTags:      opts.RemoveCellTags,
		RemoveInputTags:     opts.RemoveInputTags,
		RemoveOutputTags:    opts.RemoveOutputTags,
	}
	if opts.HTMLToMarkdown {
		exportOpts.HTML = c.html
	}

	md, err := export.Markdown(nb, exportOpts)
	if err != nil {
		return "", fmt.Errorf("rendering notebook: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cells":      len(nb.Cells),
		"language":   nb.Language(),
		"strip_code": opts.ExcludeInput,
		"bytes":      len(md),
	}).Debug("notebook rendered")

	return md, nil
}

// ConvertNotebook renders a notebook with default settings. When stripCode
// is set, code inputs and prompts are removed and outputs kept.
func ConvertNotebook(ctx context.Context, data []byte, stripCode bool) (string, error) {
	opts := ExportOptions{}
	if stripCode {
		opts = StripCodeOptions()
	}
	return NewNotebookConverter().Convert(ctx, data, opts)
}

// MarkdownFilename derives the Markdown file name for a notebook file name
// by replacing its .ipynb suffix.
func MarkdownFilename(notebookName string) string {
	return fileutil.ReplaceExt(notebookName, ".md", ".ipynb")
}
