package main

// Notes:
// - testEnv injects Getenv/Environ from a map so tests never read the real
//   process environment and can run in parallel.
// - writeStubPandoc writes a /bin/sh stand-in for pandoc: --version prints a
//   version line; otherwise it records its arguments to args.txt next to the
//   script and copies the input into the -o target prefixed with "DOCX:".
//   Stub tests are skipped on Windows.

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"
)

// fixedNow is the clock used by all CLI tests.
var fixedNow = time.Date(2026, time.March, 7, 9, 30, 0, 0, time.UTC)

const stubPandocScript = `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "pandoc 3.1.11"
  echo "Features: +server +lua"
  exit 0
fi
dir=$(dirname "$0")
printf '%s\n' "$@" > "$dir/args.txt"
in="$1"
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "-o" ]; then out="$a"; fi
  prev="$a"
done
printf 'DOCX:' > "$out"
cat "$in" >> "$out"
`

const sampleNotebook = `{
	"nbformat": 4, "nbformat_minor": 5,
	"metadata": {"language_info": {"name": "python"}},
	"cells": [
		{"cell_type": "markdown", "metadata": {}, "source": "# Sales Review"},
		{"cell_type": "code", "metadata": {}, "execution_count": 1, "source": "print(42)",
		 "outputs": [{"output_type": "stream", "name": "stdout", "text": "42\n"}]},
		{"cell_type": "markdown", "metadata": {}, "source": "Done"}
	]
}`

// testEnv returns an Environment with captured output and vars as the
// process environment.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(key string) string { return vars[key] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			sort.Strings(out)
			return out
		},
	}
	return env, stdout, stderr
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

// writeStubPandoc writes the stub pandoc and returns its path.
func writeStubPandoc(t *testing.T) string {
	t.Helper()
	return writeScript(t, stubPandocScript)
}

// writeScript writes an executable shell script and returns its path.
func writeScript(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not supported on Windows")
	}
	path := filepath.Join(t.TempDir(), "pandoc")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil { // #nosec G306 -- test stub must be executable
		t.Fatalf("writing stub: %v", err)
	}
	return path
}

// stubArgs returns the arguments recorded by the last stub pandoc run.
func stubArgs(t *testing.T, stub string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(filepath.Dir(stub), "args.txt"))
	if err != nil {
		t.Fatalf("reading recorded args: %v", err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
