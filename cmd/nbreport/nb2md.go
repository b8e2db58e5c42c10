package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-nbreport"
	"github.com/alnah/go-nbreport/internal/config"
)

// runNb2md converts notebooks to Markdown files.
func runNb2md(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseNb2mdFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	s, err := newSession(flags.common, env, func(cfg *config.Config) {
		mergeIO(flags.io, cfg)
		mergeNotebook(flags.notebook, &cfg.Notebook)
	})
	if err != nil {
		return err
	}

	opts := s.exportOptions()
	if err := opts.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, s.cfg.Input.DefaultDir)
	if err != nil {
		return err
	}
	files, err := discoverFiles(inputPath, s.cfg.Output.DefaultDir, notebookToMarkdown)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no .ipynb files in %s", ErrNoFiles, inputPath)
	}

	workers, err := s.workers(len(files))
	if err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"files":      len(files),
		"workers":    workers,
		"strip_code": opts.ExcludeInput,
	}).Debug("converting notebooks")

	conv := s.notebookConverter()
	results := convertBatch(ctx, workers, files, func(ctx context.Context, f FileToConvert) ([]string, error) {
		data, err := readInput(f.InputPath)
		if err != nil {
			return nil, err
		}
		md, err := conv.Convert(ctx, data, opts)
		if err != nil {
			return nil, err
		}
		if err := writeOutput(f.OutputPath, []byte(md)); err != nil {
			return nil, err
		}
		return []string{f.OutputPath}, nil
	})

	printResults(results, s.quiet, s.verbose, env)
	if flags.preview {
		printPreviews(results, env)
	}
	return batchError(results)
}

// printPreviews prints the beginning of each generated Markdown file.
func printPreviews(results []ConversionResult, env *Environment) {
	for _, r := range results {
		if r.Err != nil || len(r.Written) == 0 {
			continue
		}
		md, err := readInput(r.Written[0])
		if err != nil {
			fmt.Fprintf(env.Stderr, "warning: preview of %s: %v\n", r.Written[0], err)
			continue
		}
		fmt.Fprintf(env.Stdout, "\n==> %s <==\n%s\n", r.Written[0], nbreport.PreviewText(string(md), nbreport.PreviewLimit))
	}
}
