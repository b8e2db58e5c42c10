package fileutil_test

// Notes:
// - The RemoveAll failure branch of WithTempDir is not tested: making a
//   directory unremovable is platform-specific and breaks t.TempDir cleanup.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-nbreport/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWithTempDir - Scoped temp directories
// ---------------------------------------------------------------------------

func TestWithTempDir_RemovedAfterSuccess(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	var seen string

	err := fileutil.WithTempDir(root, "nbreport-", func(dir string) error {
		seen = dir
		if !strings.HasPrefix(filepath.Base(dir), "nbreport-") {
			t.Errorf("dir %q does not have prefix", dir)
		}
		if filepath.Dir(dir) != root {
			t.Errorf("dir %q not under root %q", dir, root)
		}
		return os.WriteFile(filepath.Join(dir, "input.md"), []byte("# x"), 0o600)
	})
	if err != nil {
		t.Fatalf("WithTempDir() error = %v", err)
	}

	if _, err := os.Stat(seen); !os.IsNotExist(err) {
		t.Errorf("temp dir still exists after WithTempDir: %s", seen)
	}
}

func TestWithTempDir_RemovedAfterFailure(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	wantErr := errors.New("conversion failed")
	var seen string

	err := fileutil.WithTempDir(root, "nbreport-", func(dir string) error {
		seen = dir
		_ = os.WriteFile(filepath.Join(dir, "partial.docx"), []byte("x"), 0o600)
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithTempDir() error = %v, want %v", err, wantErr)
	}

	entries, _ := os.ReadDir(root)
	if len(entries) != 0 {
		t.Errorf("root not empty after failure: %d entries (dir %s)", len(entries), seen)
	}
}

func TestWithTempDir_UniquePerCall(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	seen := map[string]bool{}

	for range 5 {
		_ = fileutil.WithTempDir(root, "req-", func(dir string) error {
			if seen[dir] {
				t.Errorf("dir %s reused", dir)
			}
			seen[dir] = true
			return nil
		})
	}
}

func TestWithTempDir_MissingRoot(t *testing.T) {
	t.Parallel()

	called := false
	err := fileutil.WithTempDir(filepath.Join(t.TempDir(), "absent"), "x-", func(string) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if called {
		t.Error("fn should not run when the dir cannot be created")
	}
}

func TestValidatePrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prefix  string
		wantErr error
	}{
		{"simple", "nbreport-", nil},
		{"empty", "", nil},
		{"forward slash", "../etc", fileutil.ErrPrefixPathTraversal},
		{"backslash", "..\\tmp", fileutil.ErrPrefixPathTraversal},
		{"null byte", "x\x00y", fileutil.ErrPrefixPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := fileutil.ValidatePrefix(tt.prefix); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePrefix(%q) = %v, want %v", tt.prefix, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReplaceExt - Output filename derivation
// ---------------------------------------------------------------------------

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		newExt string
		exts   []string
		want   string
	}{
		{"notebook", "analysis.ipynb", ".md", []string{".ipynb"}, "analysis.md"},
		{"upper case", "Analysis.IPYNB", ".md", []string{".ipynb"}, "Analysis.md"},
		{"only suffix replaced", "a.ipynb.ipynb", ".md", []string{".ipynb"}, "a.ipynb.md"},
		{"no extension", "notes", ".docx", []string{".md", ".markdown"}, "notes.docx"},
		{"markdown", "notes.markdown", ".docx", []string{".md", ".markdown"}, "notes.docx"},
		{"other extension kept", "notes.txt", ".docx", []string{".md"}, "notes.txt.docx"},
		{"with dir", "dir/x.md", ".docx", []string{".md"}, "dir/x.docx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.ReplaceExt(tt.input, tt.newExt, tt.exts...); got != tt.want {
				t.Errorf("ReplaceExt(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHasExt(t *testing.T) {
	t.Parallel()

	if !fileutil.HasExt("x.MD", ".md") {
		t.Error("expected case-insensitive match")
	}
	if fileutil.HasExt("x.mdx", ".md") {
		t.Error("unexpected match for .mdx")
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestIsFilePath
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.yaml")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("expected file to exist")
	}
	if fileutil.FileExists(dir) {
		t.Error("directory should not count as file")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("missing file should not exist")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"report", false},
		{"./report.yaml", true},
		{"/etc/nbreport.yaml", true},
		{"C:\\config\\nbreport.yaml", true},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
