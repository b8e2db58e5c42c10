//go:build integration

package nbreport

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

const testTimeout = 30 * time.Second

func newIntegrationConverter(t *testing.T, opts ...Option) *DocumentConverter {
	t.Helper()
	if _, err := CheckTool(""); err != nil {
		t.Skipf("pandoc not installed: %v", err)
	}
	conv, err := NewDocumentConverter(append([]Option{WithTimeout(testTimeout)}, opts...)...)
	if err != nil {
		t.Fatalf("NewDocumentConverter() error = %v", err)
	}
	return conv
}

// documentXML extracts word/document.xml from a docx archive.
func documentXML(t *testing.T, doc []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", f.Name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading %s: %v", f.Name, err)
		}
		return string(data)
	}
	t.Fatal("word/document.xml not found in output")
	return ""
}

func TestDocumentConverter_Convert_Integration(t *testing.T) {
	root := t.TempDir()
	conv := newIntegrationConverter(t, WithTempRoot(root))

	doc, err := conv.Convert(context.Background(), []byte("# Report\n\nHello"))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	body := documentXML(t, doc)
	if !strings.Contains(body, "Report") || !strings.Contains(body, "Hello") {
		t.Errorf("document body missing content")
	}
	assertEmptyDir(t, root)
}

func TestNotebookToDocument_Integration(t *testing.T) {
	conv := newIntegrationConverter(t)

	md, err := ConvertNotebook(context.Background(), []byte(reportNotebook), true)
	if err != nil {
		t.Fatalf("ConvertNotebook() error = %v", err)
	}
	doc, err := conv.ConvertDocument(context.Background(), DocumentInput{
		Markdown: []byte(md),
		Title:    FirstHeading([]byte(md)),
	})
	if err != nil {
		t.Fatalf("ConvertDocument() error = %v", err)
	}
	body := documentXML(t, doc)
	if strings.Contains(body, "print(1)") {
		t.Error("stripped code should not reach the document")
	}
	if !strings.Contains(body, "Done") {
		t.Error("markdown content should reach the document")
	}
}

func TestDocumentConverter_ConversionError_Integration(t *testing.T) {
	conv := newIntegrationConverter(t, WithExtraArgs("--from=markdown+bogusextension"))

	_, err := conv.Convert(context.Background(), []byte("# x"))
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("error = %v, want *ConversionError", err)
	}
	if convErr.Stderr == "" {
		t.Error("expected pandoc diagnostics in Stderr")
	}
}
