// Package pandoc runs the pandoc executable.
package pandoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-nbreport/internal/process"
)

// DefaultBinary is the executable looked up on PATH when none is configured.
const DefaultBinary = "pandoc"

// waitDelay bounds how long Run waits for pipes after the process is killed.
const waitDelay = 2 * time.Second

// ErrNotFound is returned when the pandoc executable cannot be located.
var ErrNotFound = errors.New("pandoc executable not found")

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. The child runs in its
// own process group; cancelling ctx kills the whole group.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	process.Isolate(cmd)
	cmd.Cancel = func() error {
		return process.KillGroup(cmd.Process.Pid)
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// LookPath resolves binary (a name on PATH or a path) to an executable.
func LookPath(binary string) (string, error) {
	if binary == "" {
		binary = DefaultBinary
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotFound, binary, err)
	}
	return path, nil
}

// Version returns the first line of `pandoc --version`, e.g. "pandoc 3.1.11".
func Version(ctx context.Context, runner CommandRunner, path string) (string, error) {
	stdout, stderr, err := runner.Run(ctx, path, "--version")
	if err != nil {
		return "", fmt.Errorf("pandoc --version: %w: %s", err, strings.TrimSpace(stderr))
	}
	first, _, _ := strings.Cut(strings.TrimSpace(stdout), "\n")
	return strings.TrimSpace(first), nil
}

// ExitCode extracts the process exit status from a Run error, or -1 when the
// process did not exit normally (not started, killed by a signal).
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Args describes one Markdown to docx invocation.
type Args struct {
	Input        string
	Output       string
	ReferenceDoc string
	Metadata     map[string]string
	Extra        []string
}

// Build returns the argument list: input, -s, -o output first, then the
// optional settings. Metadata keys are sorted so runs are reproducible.
func (a Args) Build() []string {
	args := []string{a.Input, "-s", "-o", a.Output}

	if a.ReferenceDoc != "" {
		args = append(args, "--reference-doc="+a.ReferenceDoc)
	}

	keys := make([]string, 0, len(a.Metadata))
	for k := range a.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--metadata="+k+":"+a.Metadata[k])
	}

	return append(args, a.Extra...)
}
