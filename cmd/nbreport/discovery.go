package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nbreport"
	"github.com/alnah/go-nbreport/internal/fileutil"
)

// fileKind describes the inputs a command accepts and how outputs are named.
type fileKind struct {
	exts   []string
	outExt string
	rename func(base string) string
}

var (
	notebookToMarkdown = fileKind{
		exts:   []string{".ipynb"},
		outExt: ".md",
		rename: nbreport.MarkdownFilename,
	}
	markdownToDocx = fileKind{
		exts:   []string{".md", ".markdown"},
		outExt: ".docx",
		rename: nbreport.DocumentFilename,
	}
	notebookToDocx = fileKind{
		exts:   []string{".ipynb"},
		outExt: ".docx",
		rename: func(base string) string { return fileutil.ReplaceExt(base, ".docx", ".ipynb") },
	}
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all files of kind under inputPath. Hidden directories
// (.ipynb_checkpoints, .git) are skipped. Results are in lexical order.
func discoverFiles(inputPath, output string, kind fileKind) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.HasExt(inputPath, kind.exts...) {
			return nil, fmt.Errorf("%w: %s (want %s)", ErrInvalidExtension, inputPath, strings.Join(kind.exts, ", "))
		}
		outPath := resolveOutputPath(inputPath, output, "", kind)
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.HasExt(path, kind.exts...) {
			return nil
		}
		outPath := resolveOutputPath(path, output, inputPath, kind)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the output path for one input file.
// An output ending in the target extension names the file itself; any other
// output is a directory that mirrors the input tree.
func resolveOutputPath(inputPath, output, baseInputDir string, kind fileKind) string {
	name := kind.rename(filepath.Base(inputPath))

	if output == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if baseInputDir == "" && fileutil.HasExt(output, kind.outExt) {
		return output
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(output, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(output, name)
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, defaultDir string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if defaultDir != "" {
		return defaultDir, nil
	}
	return "", ErrNoInput
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > nbreport.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, nbreport.MaxWorkers)
	}
	return nil
}
