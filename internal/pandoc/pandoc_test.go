package pandoc

// Notes:
// - ExecRunner tests use small /bin/sh scripts written to t.TempDir() instead
//   of a real pandoc; they are skipped on Windows.
// - Real pandoc invocations live in the root package integration tests.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
	"time"
)

type MockRunner struct {
	Stdout     string
	Stderr     string
	Err        error
	CalledWith []string
}

func (m *MockRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	m.CalledWith = append([]string{name}, args...)
	return m.Stdout, m.Stderr, m.Err
}

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not supported on Windows")
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil { // #nosec G306 -- test stub must be executable
		t.Fatalf("writing stub: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestArgs_Build - Argument order
// ---------------------------------------------------------------------------

func TestArgs_Build(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args Args
		want []string
	}{
		{
			name: "contract only",
			args: Args{Input: "/tmp/x/input.md", Output: "/tmp/x/output.docx"},
			want: []string{"/tmp/x/input.md", "-s", "-o", "/tmp/x/output.docx"},
		},
		{
			name: "all options",
			args: Args{
				Input:        "in.md",
				Output:       "out.docx",
				ReferenceDoc: "ref.docx",
				Metadata:     map[string]string{"title": "Report", "author": "Team"},
				Extra:        []string{"--toc"},
			},
			want: []string{
				"in.md", "-s", "-o", "out.docx",
				"--reference-doc=ref.docx",
				"--metadata=author:Team",
				"--metadata=title:Report",
				"--toc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.args.Build(); !slices.Equal(got, tt.want) {
				t.Errorf("Build() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLookPath
// ---------------------------------------------------------------------------

func TestLookPath_Found(t *testing.T) {
	t.Parallel()

	stub := writeScript(t, "pandoc", "exit 0\n")

	got, err := LookPath(stub)
	if err != nil {
		t.Fatalf("LookPath() error = %v", err)
	}
	if got != stub {
		t.Errorf("LookPath() = %q, want %q", got, stub)
	}
}

func TestLookPath_NotFound(t *testing.T) {
	t.Parallel()

	_, err := LookPath(filepath.Join(t.TempDir(), "no-such-pandoc"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestLookPath_EmptyUsesDefault(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := LookPath("")
	if !errors.Is(err, ErrNotFound) || !strings.Contains(err.Error(), DefaultBinary) {
		t.Errorf("error = %v, want ErrNotFound naming %q", err, DefaultBinary)
	}
}

// ---------------------------------------------------------------------------
// TestExecRunner - Real subprocesses
// ---------------------------------------------------------------------------

func TestExecRunner_CapturesOutput(t *testing.T) {
	t.Parallel()

	stub := writeScript(t, "tool", `echo "out $1"
echo "warning: something" >&2
`)

	stdout, stderr, err := (&ExecRunner{}).Run(context.Background(), stub, "arg")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stdout != "out arg\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if stderr != "warning: something\n" {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	t.Parallel()

	stub := writeScript(t, "tool", `echo "pandoc: could not parse" >&2
exit 64
`)

	_, stderr, err := (&ExecRunner{}).Run(context.Background(), stub)
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if ExitCode(err) != 64 {
		t.Errorf("ExitCode() = %d, want 64", ExitCode(err))
	}
	if !strings.Contains(stderr, "could not parse") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestExecRunner_ContextCancelKillsProcess(t *testing.T) {
	t.Parallel()

	stub := writeScript(t, "slow", "sleep 30 &\nwait\n")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, err := (&ExecRunner{}).Run(ctx, stub)
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Run took %v, process group was not killed", elapsed)
	}
	if ExitCode(err) != -1 {
		t.Errorf("ExitCode() = %d, want -1 for a killed process", ExitCode(err))
	}
}

func TestExitCode_NonExitError(t *testing.T) {
	t.Parallel()

	if got := ExitCode(errors.New("start failed")); got != -1 {
		t.Errorf("ExitCode() = %d, want -1", got)
	}
}

// ---------------------------------------------------------------------------
// TestVersion
// ---------------------------------------------------------------------------

func TestVersion(t *testing.T) {
	t.Parallel()

	mock := &MockRunner{Stdout: "pandoc 3.1.11\nFeatures: +server +lua\n"}

	got, err := Version(context.Background(), mock, "/usr/bin/pandoc")
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if got != "pandoc 3.1.11" {
		t.Errorf("Version() = %q", got)
	}
	if !slices.Equal(mock.CalledWith, []string{"/usr/bin/pandoc", "--version"}) {
		t.Errorf("called with %v", mock.CalledWith)
	}
}

func TestVersion_Error(t *testing.T) {
	t.Parallel()

	mock := &MockRunner{Stderr: "boom", Err: errors.New("exit status 1")}

	_, err := Version(context.Background(), mock, "pandoc")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v, want stderr included", err)
	}
}
