// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-nbreport/internal/fileutil"
)

// PandocInstallURL is where users are sent when pandoc is missing.
const PandocInstallURL = "https://pandoc.org/installing.html"

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// IsInCI detects common CI environments.
func IsInCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForPandocMissing returns hints for a pandoc executable that cannot be found.
func ForPandocMissing() string {
	hints := []string{"install pandoc from " + PandocInstallURL}

	if IsInContainer() || IsInCI() {
		hints = append(hints, "add pandoc to the image (apt-get install pandoc)")
	}
	if os.Getenv("NBREPORT_PANDOC") == "" {
		hints = append(hints, "or point --pandoc / NBREPORT_PANDOC at the binary")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, raise --timeout or set it to 0 to disable")
}

// ForMalformedNotebook returns a hint for notebooks that fail to decode.
func ForMalformedNotebook() string {
	return format("re-download the notebook as .ipynb (nbformat 4) from Jupyter or Colab")
}

// ForConversionFailed returns a hint for a pandoc run that exited non-zero.
func ForConversionFailed() string {
	return format("run with --verbose to see the pandoc invocation")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-nbreport/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(toSlash(p), ".config/go-nbreport") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
