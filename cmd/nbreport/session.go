package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-nbreport"
	"github.com/alnah/go-nbreport/internal/config"
	"github.com/alnah/go-nbreport/internal/dateutil"
	"github.com/alnah/go-nbreport/internal/logging"
)

// session is the resolved state shared by one command run: configuration
// after env and flag overrides, the logger, and the parsed timeout.
type session struct {
	cfg     *config.Config
	logger  *logrus.Logger
	timeout time.Duration
	quiet   bool
	verbose bool
}

// newSession loads the config file (flag, then NBREPORT_CONFIG), applies
// environment overrides, then merge, then validates the result.
func newSession(common commonFlags, env *Environment, merge func(*config.Config)) (*session, error) {
	warnUnknownEnvVars(env.Stderr, env.Environ())
	envCfg := loadEnvConfig(env.Getenv)
	for _, w := range envCfg.Warnings {
		fmt.Fprintf(env.Stderr, "warning: %s\n", w)
	}

	cfg := config.DefaultConfig()
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	if merge != nil {
		merge(cfg)
	}
	if common.logLevel != "" {
		cfg.Log.Level = common.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if common.verbose {
		level = logrus.DebugLevel
	}
	logger := logging.New(env.Stderr, level)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(logger.Debugf))

	timeout, err := cfg.Document.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:     cfg,
		logger:  logger,
		timeout: timeout,
		quiet:   common.quiet,
		verbose: common.verbose,
	}, nil
}

// exportOptions maps the notebook section onto library options.
func (s *session) exportOptions() nbreport.ExportOptions {
	nb := s.cfg.Notebook

	opts := nbreport.ExportOptions{}
	if nb.StripCode {
		opts = nbreport.StripCodeOptions()
	}
	opts.ShowPrompts = nb.ShowPrompts
	opts.HTMLToMarkdown = nb.HTMLToMarkdown
	opts.Images = nbreport.ImageMode(strings.ToLower(nb.Images))
	opts.RemoveCellTags = nb.RemoveCellTags
	opts.RemoveInputTags = nb.RemoveInputTags
	opts.RemoveOutputTags = nb.RemoveOutputTags
	return opts
}

// notebookConverter returns a converter logging through the session logger.
func (s *session) notebookConverter() *nbreport.NotebookConverter {
	return nbreport.NewNotebookConverter(nbreport.WithLogger(s.logger))
}

// documentConverter locates pandoc and returns a converter carrying the
// document section. "auto" dates are resolved once against now, so every
// file of a batch gets the same date.
func (s *session) documentConverter(now time.Time) (*nbreport.DocumentConverter, error) {
	doc := s.cfg.Document

	date, err := dateutil.Resolve(doc.Date, now)
	if err != nil {
		return nil, fmt.Errorf("document date: %w", err)
	}

	opts := []nbreport.Option{
		nbreport.WithLogger(s.logger),
		nbreport.WithPandoc(doc.Pandoc),
		nbreport.WithReferenceDoc(doc.ReferenceDoc),
		nbreport.WithMetadata("title", doc.Title),
		nbreport.WithMetadata("author", doc.Author),
		nbreport.WithMetadata("date", date),
		nbreport.WithExtraArgs(doc.ExtraArgs...),
	}
	if s.timeout > 0 {
		opts = append(opts, nbreport.WithTimeout(s.timeout))
	}
	return nbreport.NewDocumentConverter(opts...)
}

// documentInput builds the request for one file, deriving the title from
// the first H1 when configured and no explicit title is set.
func (s *session) documentInput(markdown []byte) nbreport.DocumentInput {
	input := nbreport.DocumentInput{Markdown: markdown}
	if s.cfg.Document.Title == "" && s.cfg.Document.AutoTitle {
		input.Title = nbreport.FirstHeading(markdown)
	}
	return input
}

// workers resolves the worker count for n files.
func (s *session) workers(n int) (int, error) {
	if err := validateWorkers(s.cfg.Output.Workers); err != nil {
		return 0, err
	}
	return min(nbreport.ResolveWorkers(s.cfg.Output.Workers), max(n, 1)), nil
}
