package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-nbreport"
	"github.com/alnah/go-nbreport/internal/config"
	"github.com/alnah/go-nbreport/internal/fileutil"
)

// runPreview renders one Markdown file or notebook as an HTML page.
func runPreview(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}
	inputPath := positional[0]

	s, err := newSession(flags.common, env, func(cfg *config.Config) {
		mergeNotebook(flags.notebook, &cfg.Notebook)
	})
	if err != nil {
		return err
	}

	data, err := readInput(inputPath)
	if err != nil {
		return err
	}

	switch {
	case fileutil.HasExt(inputPath, notebookToMarkdown.exts...):
		md, err := s.notebookConverter().Convert(ctx, data, s.exportOptions())
		if err != nil {
			return err
		}
		data = []byte(md)
	case !fileutil.HasExt(inputPath, markdownToDocx.exts...):
		return fmt.Errorf("%w: %s (want .ipynb, .md or .markdown)", ErrInvalidExtension, inputPath)
	}

	title := nbreport.FirstHeading(data)
	if title == "" {
		title = filepath.Base(inputPath)
	}

	page, err := nbreport.RenderHTML(ctx, data, title, flags.allowHTML)
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := fmt.Fprint(env.Stdout, page)
		return err
	}
	if err := writeOutput(flags.output, []byte(page)); err != nil {
		return err
	}
	if !s.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}
	return nil
}
