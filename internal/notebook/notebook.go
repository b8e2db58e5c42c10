// Package notebook decodes Jupyter notebooks (nbformat 4) into a typed model.
//
// Only the parts of the format needed to render a notebook as Markdown are
// modelled. Unknown fields are ignored so that notebooks written by newer
// front ends (JupyterLab, Colab, VS Code) still decode.
package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// SupportedFormat is the only nbformat major version accepted by Parse.
const SupportedFormat = 4

// Sentinel errors for notebook decoding.
var (
	ErrMalformed          = errors.New("malformed notebook")
	ErrUnsupportedVersion = errors.New("unsupported notebook format version")
)

// CellType identifies the kind of a cell.
type CellType string

// Cell kinds defined by nbformat 4.
const (
	CodeCell     CellType = "code"
	MarkdownCell CellType = "markdown"
	RawCell      CellType = "raw"
)

// OutputType identifies the kind of a code cell output.
type OutputType string

// Output kinds defined by nbformat 4.
const (
	StreamOutput        OutputType = "stream"
	DisplayDataOutput   OutputType = "display_data"
	ExecuteResultOutput OutputType = "execute_result"
	ErrorOutput         OutputType = "error"
)

// Notebook is a decoded nbformat 4 document.
type Notebook struct {
	Format      int      `json:"nbformat"`
	FormatMinor int      `json:"nbformat_minor"`
	Metadata    Metadata `json:"metadata"`
	Cells       []Cell   `json:"cells"`
}

// Metadata holds the notebook-level metadata used for rendering.
type Metadata struct {
	KernelSpec   *KernelSpec   `json:"kernelspec,omitempty"`
	LanguageInfo *LanguageInfo `json:"language_info,omitempty"`
	Title        string        `json:"title,omitempty"`
}

// KernelSpec describes the kernel the notebook was last run with.
type KernelSpec struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
}

// LanguageInfo describes the kernel language.
type LanguageInfo struct {
	Name          string `json:"name"`
	FileExtension string `json:"file_extension"`
}

// Cell is one notebook cell. Outputs and ExecutionCount are only set on
// code cells.
type Cell struct {
	ID             string                `json:"id,omitempty"`
	Type           CellType              `json:"cell_type"`
	Source         MultilineString       `json:"source"`
	Metadata       CellMetadata          `json:"metadata"`
	Attachments    map[string]MimeBundle `json:"attachments,omitempty"`
	ExecutionCount *int                  `json:"execution_count,omitempty"`
	Outputs        []Output              `json:"outputs,omitempty"`
}

// CellMetadata holds the per-cell metadata used for rendering.
type CellMetadata struct {
	Tags           []string `json:"tags,omitempty"`
	RawMimetype    string   `json:"raw_mimetype,omitempty"`
	Format         string   `json:"format,omitempty"`
	MagicsLanguage string   `json:"magics_language,omitempty"`
}

// HasTag reports whether the cell carries any of the given tags.
func (m CellMetadata) HasTag(tags []string) bool {
	for _, want := range tags {
		for _, got := range m.Tags {
			if got == want {
				return true
			}
		}
	}
	return false
}

// RawFormat returns the target mimetype of a raw cell. Classic Notebook
// writes raw_mimetype, the nbformat schema names it format.
func (m CellMetadata) RawFormat() string {
	if m.RawMimetype != "" {
		return m.RawMimetype
	}
	return m.Format
}

// Output is one entry of a code cell's outputs list.
type Output struct {
	Type           OutputType      `json:"output_type"`
	Name           string          `json:"name,omitempty"`
	Text           MultilineString `json:"text,omitempty"`
	Data           MimeBundle      `json:"data,omitempty"`
	ExecutionCount *int            `json:"execution_count,omitempty"`
	EName          string          `json:"ename,omitempty"`
	EValue         string          `json:"evalue,omitempty"`
	Traceback      []string        `json:"traceback,omitempty"`
}

// Language returns the kernel language name, or "" when the notebook does
// not record one.
func (nb *Notebook) Language() string {
	if nb.Metadata.LanguageInfo != nil && nb.Metadata.LanguageInfo.Name != "" {
		return nb.Metadata.LanguageInfo.Name
	}
	if nb.Metadata.KernelSpec != nil {
		return nb.Metadata.KernelSpec.Language
	}
	return ""
}

// Parse decodes and validates an nbformat 4 notebook.
// Invalid UTF-8, invalid JSON and structurally wrong documents wrap
// ErrMalformed; other major versions wrap ErrUnsupportedVersion.
func Parse(data []byte) (*Notebook, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrMalformed)
	}

	var header struct {
		Format *int            `json:"nbformat"`
		Cells  json.RawMessage `json:"cells"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if header.Format == nil {
		return nil, fmt.Errorf("%w: missing nbformat", ErrMalformed)
	}
	if *header.Format != SupportedFormat {
		return nil, fmt.Errorf("%w: nbformat %d (want %d)", ErrUnsupportedVersion, *header.Format, SupportedFormat)
	}
	if len(header.Cells) == 0 || bytes.Equal(header.Cells, []byte("null")) {
		return nil, fmt.Errorf("%w: missing cells", ErrMalformed)
	}

	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := nb.validate(); err != nil {
		return nil, err
	}
	return &nb, nil
}

func (nb *Notebook) validate() error {
	for i, cell := range nb.Cells {
		switch cell.Type {
		case CodeCell, MarkdownCell, RawCell:
		case "":
			return fmt.Errorf("%w: cell %d: missing cell_type", ErrMalformed, i)
		default:
			return fmt.Errorf("%w: cell %d: unknown cell_type %q", ErrMalformed, i, cell.Type)
		}
		for j, out := range cell.Outputs {
			switch out.Type {
			case StreamOutput, DisplayDataOutput, ExecuteResultOutput, ErrorOutput:
			default:
				return fmt.Errorf("%w: cell %d output %d: unknown output_type %q", ErrMalformed, i, j, out.Type)
			}
		}
	}
	return nil
}
