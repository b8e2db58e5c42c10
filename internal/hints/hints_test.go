package hints

// Notes:
// - ForPandocMissing tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable
// These are acceptable gaps: we test observable behavior through environment manipulation.

import (
	"strings"
	"testing"
)

func clearCI(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(key, "")
	}
}

// ---------------------------------------------------------------------------
// TestForPandocMissing - Environment-aware install hints
// ---------------------------------------------------------------------------

func TestForPandocMissing_Desktop(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	clearCI(t)
	t.Setenv("NBREPORT_PANDOC", "")

	hint := ForPandocMissing()

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("expected hint prefix, got %q", hint)
	}
	if !strings.Contains(hint, PandocInstallURL) {
		t.Error("expected install URL")
	}
	if !strings.Contains(hint, "NBREPORT_PANDOC") {
		t.Error("expected NBREPORT_PANDOC suggestion")
	}
	if strings.Contains(hint, "apt-get") {
		t.Error("should not suggest image changes outside containers")
	}
}

func TestForPandocMissing_InCI(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	clearCI(t)
	t.Setenv("GITHUB_ACTIONS", "true")
	t.Setenv("NBREPORT_PANDOC", "")

	if hint := ForPandocMissing(); !strings.Contains(hint, "apt-get install pandoc") {
		t.Errorf("expected image hint in CI, got %q", hint)
	}
}

func TestForPandocMissing_InDocker(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	clearCI(t)
	t.Setenv("NBREPORT_PANDOC", "/opt/pandoc")

	hint := ForPandocMissing()

	if !strings.Contains(hint, "apt-get install pandoc") {
		t.Error("expected image hint in Docker")
	}
	if strings.Contains(hint, "NBREPORT_PANDOC") {
		t.Error("should not suggest NBREPORT_PANDOC when already set")
	}
}

func TestIsInCI(t *testing.T) {
	clearCI(t)
	if IsInCI() {
		t.Error("expected no CI with cleared env")
	}

	t.Setenv("GITLAB_CI", "1")
	if !IsInCI() {
		t.Error("expected CI with GITLAB_CI set")
	}
}

// ---------------------------------------------------------------------------
// TestForConfigNotFound
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			contains: "--config",
		},
		{
			name:     "with user config path",
			paths:    []string{"./report.yaml", "/home/u/.config/go-nbreport/report.yaml"},
			contains: "create /home/u/.config/go-nbreport/report.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ForConfigNotFound(tt.paths)

			if !strings.Contains(hint, "hint:") {
				t.Error("expected hint prefix")
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestFormat_Consistency(t *testing.T) {
	// All hints should start with newline, spaces, and "hint:"
	hints := []string{
		ForTimeout(),
		ForMalformedNotebook(),
		ForConversionFailed(),
		ForOutputDirectory(),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
	if !strings.Contains(ForTimeout(), "--timeout") {
		t.Error("expected --timeout flag mention")
	}
}

func TestFormatHints_Empty(t *testing.T) {
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
}
