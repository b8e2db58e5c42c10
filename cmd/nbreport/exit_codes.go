package main

import (
	"errors"
	"os"

	"github.com/alnah/go-nbreport"
	"github.com/alnah/go-nbreport/internal/config"
	"github.com/alnah/go-nbreport/internal/dateutil"
	"github.com/alnah/go-nbreport/internal/hints"
	"github.com/alnah/go-nbreport/internal/logging"
)

// Exit codes for the nbreport CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input content
	ExitIO      = 3 // File not found, permission denied
	ExitTool    = 4 // pandoc missing, failed or timed out
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Tool errors (exit 4)
	if errors.Is(err, nbreport.ErrToolUnavailable) ||
		errors.Is(err, nbreport.ErrConversion) ||
		errors.Is(err, nbreport.ErrConversionTimeout) {
		return ExitTool
	}

	// Usage/config/content errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrReservedArg) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, nbreport.ErrMalformedNotebook) ||
		errors.Is(err, nbreport.ErrUnsupportedNotebookVersion) ||
		errors.Is(err, nbreport.ErrInvalidImageMode) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoFiles) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrCreateOutputDir) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns an actionable hint to append to the error message, or "".
func hintFor(err error) string {
	var notFound *config.NotFoundError
	switch {
	case errors.Is(err, nbreport.ErrToolUnavailable):
		return hints.ForPandocMissing()
	case errors.Is(err, nbreport.ErrConversionTimeout):
		return hints.ForTimeout()
	case errors.Is(err, nbreport.ErrConversion):
		return hints.ForConversionFailed()
	case errors.Is(err, nbreport.ErrMalformedNotebook),
		errors.Is(err, nbreport.ErrUnsupportedNotebookVersion):
		return hints.ForMalformedNotebook()
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Searched)
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
