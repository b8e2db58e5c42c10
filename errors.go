package nbreport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-nbreport/internal/export"
	"github.com/alnah/go-nbreport/internal/notebook"
)

// Sentinel errors for library operations.
var (
	// Notebook decoding errors. Aliases of the internal sentinels so
	// errors.Is works across the package boundary.
	ErrMalformedNotebook          = notebook.ErrMalformed
	ErrUnsupportedNotebookVersion = notebook.ErrUnsupportedVersion
	ErrInvalidImageMode           = export.ErrInvalidImageMode

	// Document conversion errors.
	ErrToolUnavailable   = errors.New("pandoc is not available")
	ErrConversion        = errors.New("document conversion failed")
	ErrConversionTimeout = errors.New("document conversion timed out")
)

// ConversionError reports a pandoc run that exited unsuccessfully.
// Stderr holds the tool's diagnostic output verbatim.
type ConversionError struct {
	Tool     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ConversionError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	return fmt.Sprintf("%s: %s exited with status %d: %s", ErrConversion, e.Tool, e.ExitCode, detail)
}

// Is makes errors.Is(err, ErrConversion) match.
func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

func (e *ConversionError) Unwrap() error { return e.Err }
