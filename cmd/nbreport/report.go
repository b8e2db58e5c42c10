package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-nbreport/internal/config"
	"github.com/alnah/go-nbreport/internal/fileutil"
)

// runReport converts notebooks straight to Word documents. The Markdown
// stays in memory unless --keep-md is set.
func runReport(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseReportFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	s, err := newSession(flags.common, env, func(cfg *config.Config) {
		mergeIO(flags.io, cfg)
		mergeNotebook(flags.notebook, &cfg.Notebook)
		mergeDocument(flags.document, &cfg.Document)
	})
	if err != nil {
		return err
	}

	opts := s.exportOptions()
	if err := opts.Validate(); err != nil {
		return err
	}
	docConv, err := s.documentConverter(env.Now())
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, s.cfg.Input.DefaultDir)
	if err != nil {
		return err
	}
	files, err := discoverFiles(inputPath, s.cfg.Output.DefaultDir, notebookToDocx)
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
		"files":   len(files),
		"workers": workers,
		"keep_md": flags.keepMD,
	}).Debug("building reports")

	nbConv := s.notebookConverter()
	results := convertBatch(ctx, workers, files, func(ctx context.Context, f FileToConvert) ([]string, error) {
		data, err := readInput(f.InputPath)
		if err != nil {
			return nil, err
		}
		md, err := nbConv.Convert(ctx, data, opts)
		if err != nil {
			return nil, err
		}

		var written []string
		if flags.keepMD {
			mdPath := fileutil.ReplaceExt(f.OutputPath, ".md", ".docx")
			if err := writeOutput(mdPath, []byte(md)); err != nil {
				return nil, err
			}
			written = append(written, mdPath)
		}

		doc, err := docConv.ConvertDocument(ctx, s.documentInput([]byte(md)))
		if err != nil {
			return written, err
		}
		if err := writeOutput(f.OutputPath, doc); err != nil {
			return written, err
		}
		return append(written, f.OutputPath), nil
	})

	printResults(results, s.quiet, s.verbose, env)
	return batchError(results)
}
