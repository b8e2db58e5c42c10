package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-nbreport"
	"github.com/alnah/go-nbreport/internal/fileutil"
	"github.com/alnah/go-nbreport/internal/hints"
	"github.com/alnah/go-nbreport/internal/pandoc"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Pandoc   pandocInfo `json:"pandoc"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// pandocInfo holds pandoc detection results.
type pandocInfo struct {
	Found   bool   `json:"found"`
	Binary  string `json:"binary"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempDir      string `json:"temp_dir"`
	TempWritable bool   `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 4 = pandoc missing, 1 = other errors.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	var jsonOutput bool
	var binary string
	fs := doctorFlagSet(&jsonOutput, &binary)
	if err := parseFlagSet(fs, args, env.Stdout, printDoctorUsage); err != nil {
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return ExitUsage
		}
		return ExitSuccess
	}

	if binary == "" {
		binary = env.Getenv("NBREPORT_PANDOC")
	}
	result := runDoctor(ctx, binary, env, &pandoc.ExecRunner{})

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	switch {
	case !result.Pandoc.Found:
		return ExitTool
	case result.Status == statusErrors:
		return ExitGeneral
	}
	return ExitSuccess
}

func doctorFlagSet(jsonOutput *bool, binary *string) *flag.FlagSet {
	fs := newFlagSet("doctor")
	fs.BoolVar(jsonOutput, "json", false, "print results as JSON")
	fs.StringVar(binary, "pandoc", "", "pandoc executable name or path")
	return fs
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, binary string, env *Environment, runner pandoc.CommandRunner) *doctorResult {
	if binary == "" {
		binary = pandoc.DefaultBinary
	}
	result := &doctorResult{
		Status: statusReady,
		Pandoc: pandocInfo{Binary: binary},
		Env:    envInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	checkPandoc(ctx, result, runner)
	checkEnvironment(result, env.Getenv)
	checkSystem(result)

	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	}
	return result
}

// checkPandoc locates pandoc and reads its version.
func checkPandoc(ctx context.Context, result *doctorResult, runner pandoc.CommandRunner) {
	path, err := nbreport.CheckTool(result.Pandoc.Binary)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("pandoc not found (%s). Install it from %s", result.Pandoc.Binary, hints.PandocInstallURL))
		return
	}
	result.Pandoc.Found = true
	result.Pandoc.Path = path

	version, err := pandoc.Version(ctx, runner, path)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not get pandoc version: %v", err))
		return
	}
	result.Pandoc.Version = version
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(getenv)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && !result.Pandoc.Found {
		result.Warnings = append(result.Warnings,
			"Container/CI detected: add pandoc to the image (apt-get install pandoc)")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("NBREPORT_CONTAINER") == "1" {
		return true, "NBREPORT_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies a request directory can be staged under the temp dir.
func checkSystem(result *doctorResult) {
	result.System.TempDir = os.TempDir()
	err := fileutil.WithTempDir("", "nbreport-doctor-", func(dir string) error {
		return os.WriteFile(filepath.Join(dir, "probe.md"), []byte("# probe"), 0o600)
	})
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", result.System.TempDir))
		return
	}
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	ok := color.New(color.FgGreen).Sprint("[OK]")
	warn := color.New(color.FgYellow).Sprint("[WARN]")
	fail := color.New(color.FgRed, color.Bold).Sprint("[ERROR]")

	fmt.Fprintln(w, "nbreport doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "pandoc")
	if r.Pandoc.Found {
		fmt.Fprintf(w, "  %s Found at %s\n", ok, r.Pandoc.Path)
		if r.Pandoc.Version != "" {
			fmt.Fprintf(w, "  %s Version: %s\n", ok, r.Pandoc.Version)
		}
	} else {
		fmt.Fprintf(w, "  %s Not found (%s)\n", fail, r.Pandoc.Binary)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  %s Platform: %s/%s\n", ok, r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  %s Container: detected (%s)\n", ok, r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintf(w, "  %s CI: detected\n", ok)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  %s Temp directory: writable (%s)\n", ok, r.System.TempDir)
	} else {
		fmt.Fprintf(w, "  %s Temp directory: not writable (%s)\n", fail, r.System.TempDir)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", warn, msg)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, msg := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", fail, msg)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
