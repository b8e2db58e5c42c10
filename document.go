package nbreport

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-nbreport/internal/fileutil"
	"github.com/alnah/go-nbreport/internal/pandoc"
)

// MIMEDocx is the media type of documents produced by DocumentConverter.
const MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Fixed names inside each request's temp directory.
const (
	stagedInputName  = "input.md"
	stagedOutputName = "output.docx"
	tempDirPrefix    = "nbreport-"
)

// Conversion states, logged as the "state" field.
const (
	stateStaging    = "staging_input"
	stateConverting = "converting"
	stateCleanup    = "cleanup"
	stateSucceeded  = "succeeded"
	stateFailed     = "failed"
)

// DocumentInput is one Markdown to docx request.
type DocumentInput struct {
	Markdown []byte
	// Title overrides the converter-level title metadata when set.
	Title string
	// Metadata is merged over the converter-level metadata.
	Metadata map[string]string
}

// DocumentConverter turns Markdown into Word documents with pandoc.
// Every call works in its own temp directory, so a converter is safe for
// concurrent use.
type DocumentConverter struct {
	cfg    settings
	path   string
	logger logrus.FieldLogger
}

// NewDocumentConverter locates pandoc once and returns a converter bound to
// that executable. A missing pandoc yields an error wrapping
// ErrToolUnavailable.
func NewDocumentConverter(opts ...Option) (*DocumentConverter, error) {
	s := newSettings(opts)
	path, err := CheckTool(s.binary)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"tool": path}).Debug("pandoc located")
	return &DocumentConverter{cfg: s, path: path, logger: s.logger}, nil
}

// CheckTool reports whether binary (default "pandoc") can be executed and
// returns its resolved path.
func CheckTool(binary string) (string, error) {
	path, err := pandoc.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrToolUnavailable, err)
	}
	return path, nil
}

// ToolPath returns the pandoc executable the converter runs.
func (c *DocumentConverter) ToolPath() string {
	return c.path
}

// Convert turns markdown into docx bytes using the converter-level metadata.
func (c *DocumentConverter) Convert(ctx context.Context, markdown []byte) ([]byte, error) {
	return c.ConvertDocument(ctx, DocumentInput{Markdown: markdown})
}

// ConvertDocument stages the Markdown in a fresh temp directory, runs
// `pandoc input.md -s -o output.docx`, reads the document back and removes
// the directory on every exit path. Empty Markdown is converted like any
// other input. A failed run returns *ConversionError with pandoc's stderr;
// nothing partial is returned.
func (c *DocumentConverter) ConvertDocument(ctx context.Context, input DocumentInput) (doc []byte, err error) {
	if c == nil || c.path == "" {
		return nil, ErrToolUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := c.logger.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"tool":       c.path,
	})
	start := time.Now()
	defer func() {
		fields := logrus.Fields{"state": stateSucceeded, "duration": time.Since(start).Round(time.Millisecond)}
		if err != nil {
			fields["state"] = stateFailed
			fields["error"] = err.Error()
		}
		log.WithFields(fields).Debug("conversion finished")
	}()

	err = fileutil.WithTempDir(c.cfg.tempRoot, tempDirPrefix, func(dir string) error {
		defer log.WithField("state", stateCleanup).Debug("removing temp dir")

		log.WithFields(logrus.Fields{"state": stateStaging, "dir": dir}).Debug("writing markdown")
		inPath := filepath.Join(dir, stagedInputName)
		outPath := filepath.Join(dir, stagedOutputName)
		if err := os.WriteFile(inPath, input.Markdown, 0o600); err != nil {
			return fmt.Errorf("staging markdown: %w", err)
		}

		args := pandoc.Args{
			Input:        inPath,
			Output:       outPath,
			ReferenceDoc: c.cfg.referenceDoc,
			Metadata:     c.metadataFor(input),
			Extra:        c.cfg.extraArgs,
		}.Build()

		log.WithFields(logrus.Fields{"state": stateConverting, "args": args}).Debug("running pandoc")
		if err := c.run(ctx, args); err != nil {
			return err
		}

		data, err := os.ReadFile(outPath) // #nosec G304 -- path inside our own temp dir
		if err != nil {
			return fmt.Errorf("%w: reading pandoc output: %v", ErrConversion, err)
		}
		if len(data) == 0 {
			return fmt.Errorf("%w: pandoc produced an empty document", ErrConversion)
		}
		doc = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// run executes pandoc, applying the configured timeout, and classifies
// failures as timeout, cancellation or *ConversionError.
func (c *DocumentConverter) run(ctx context.Context, args []string) error {
	runCtx := ctx
	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	_, stderr, err := c.cfg.runner.Run(runCtx, c.path, args...)
	if err == nil {
		return nil
	}

	switch {
	case ctx.Err() != nil:
		return fmt.Errorf("pandoc interrupted: %w", ctx.Err())
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w after %s", ErrConversionTimeout, c.cfg.timeout)
	}
	return &ConversionError{
		Tool:     filepath.Base(c.path),
		ExitCode: pandoc.ExitCode(err),
		Stderr:   stderr,
		Err:      err,
	}
}

func (c *DocumentConverter) metadataFor(input DocumentInput) map[string]string {
	if len(c.cfg.metadata) == 0 && len(input.Metadata) == 0 && input.Title == "" {
		return nil
	}
	meta := make(map[string]string, len(c.cfg.metadata)+len(input.Metadata)+1)
	maps.Copy(meta, c.cfg.metadata)
	for k, v := range input.Metadata {
		if k != "" && v != "" {
			meta[k] = v
		}
	}
	if input.Title != "" {
		meta["title"] = input.Title
	}
	return meta
}

// DocumentFilename derives the .docx file name for a Markdown file name.
func DocumentFilename(markdownName string) string {
	return fileutil.ReplaceExt(markdownName, ".docx", ".md", ".markdown")
}
