// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrPrefixPathTraversal = errors.New("temp dir prefix contains path separator or null byte")
)

// WithTempDir creates a fresh directory under root (os.TempDir when empty),
// calls fn with its path, and removes the directory and everything in it
// when fn returns, whether fn failed or not. A removal failure is reported
// only when fn itself succeeded.
func WithTempDir(root, prefix string, fn func(dir string) error) (err error) {
	if err := ValidatePrefix(prefix); err != nil {
		return err
	}

	dir, err := os.MkdirTemp(root, prefix+"*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil && err == nil {
			err = fmt.Errorf("removing temp dir: %w", rmErr)
		}
	}()

	return fn(dir)
}

// ValidatePrefix checks that prefix is safe for use in temp dir names.
func ValidatePrefix(prefix string) error {
	if strings.ContainsAny(prefix, "/\\\x00") {
		return ErrPrefixPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "report" -> false (name)
//   - "./report.yaml" -> true (relative path)
//   - "/etc/nbreport.yaml" -> true (absolute)
//   - "C:\config\nbreport.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// HasExt reports whether name ends with one of exts, ignoring case.
func HasExt(name string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// ReplaceExt swaps a trailing extension from exts (case-insensitive) for
// newExt. Names without one of exts get newExt appended.
//
//	ReplaceExt("analysis.ipynb", ".md", ".ipynb")    -> "analysis.md"
//	ReplaceExt("a.ipynb.ipynb", ".md", ".ipynb")     -> "a.ipynb.md"
//	ReplaceExt("notes", ".docx", ".md", ".markdown") -> "notes.docx"
func ReplaceExt(name, newExt string, exts ...string) string {
	if HasExt(name, exts...) {
		return strings.TrimSuffix(name, filepath.Ext(name)) + newExt
	}
	return name + newExt
}
