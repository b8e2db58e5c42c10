package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-nbreport/internal/config"
)

// runMd2docx converts Markdown files to Word documents with pandoc.
// pandoc is located before any file is read.
func runMd2docx(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseMd2docxFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	s, err := newSession(flags.common, env, func(cfg *config.Config) {
		mergeIO(flags.io, cfg)
		mergeDocument(flags.document, &cfg.Document)
	})
	if err != nil {
		return err
	}

	conv, err := s.documentConverter(env.Now())
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, s.cfg.Input.DefaultDir)
	if err != nil {
		return err
	}
	files, err := discoverFiles(inputPath, s.cfg.Output.DefaultDir, markdownToDocx)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no .md files in %s", ErrNoFiles, inputPath)
	}

	workers, err := s.workers(len(files))
	if err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"files":   len(files),
		"workers": workers,
		"tool":    conv.ToolPath(),
	}).Debug("converting markdown")

	results := convertBatch(ctx, workers, files, func(ctx context.Context, f FileToConvert) ([]string, error) {
		md, err := readInput(f.InputPath)
		if err != nil {
			return nil, err
		}
		doc, err := conv.ConvertDocument(ctx, s.documentInput(md))
		if err != nil {
			return nil, err
		}
		if err := writeOutput(f.OutputPath, doc); err != nil {
			return nil, err
		}
		return []string{f.OutputPath}, nil
	})

	printResults(results, s.quiet, s.verbose, env)
	return batchError(results)
}
