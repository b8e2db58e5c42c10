package main

// Notes:
// - GenerateCompletion: we test that shell scripts are generated with expected
//   content markers. We do not test that the scripts actually work in the
//   target shell (that would require integration tests with actual shells).
// - getCommands: flags come from the same FlagSets the commands parse with,
//   so we check a few per command rather than the full list.

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGenerateCompletion_SupportedShells - Shell completion script generation
// ---------------------------------------------------------------------------

func TestGenerateCompletion_SupportedShells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		shell        Shell
		wantContains []string
	}{
		{
			name:  "bash",
			shell: ShellBash,
			wantContains: []string{
				"_nbreport()",
				"complete -o filenames -o bashdefault -F _nbreport nbreport",
				"nb2md md2docx report preview doctor version help completion",
				"--strip-code",
				`--images) COMPREPLY=($(compgen -W "embed reference omit"`,
				"-o|--output) COMPREPLY=($(compgen -d",
				"'!*.@(ipynb)'",
				"'!*.@(md|markdown)'",
			},
		},
		{
			name:  "zsh",
			shell: ShellZsh,
			wantContains: []string{
				"#compdef nbreport",
				"_describe 'command' commands",
				"_arguments",
				"'--strip-code[remove code cells, keep their outputs]'",
				"'(-o --output)'{-o,--output}",
				"'*--pandoc-arg[",
				`'*:file:_files -g "*.(md|markdown)"'`,
				"compdef _nbreport nbreport",
			},
		},
		{
			name:  "fish",
			shell: ShellFish,
			wantContains: []string{
				"complete -c nbreport -f",
				"complete -c nbreport -n __fish_use_subcommand -a report",
				"-n '__fish_seen_subcommand_from nb2md' -l images",
				"-x -a 'embed reference omit'",
				"(__fish_complete_suffix .yaml .yml)",
				"-a 'bash zsh fish powershell'",
			},
		},
		{
			name:  "powershell",
			shell: ShellPowerShell,
			wantContains: []string{
				"Register-ArgumentCompleter -Native -CommandName nbreport",
				"'md2docx' = 'Convert Markdown files to Word documents'",
				"'--log-level' = @('debug', 'info', 'warn', 'error')",
				"'--reference-doc'",
				"CompletionResult",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion(%s) error = %v", tt.shell, err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_ZshEscapesDescriptions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := GenerateCompletion(&buf, ShellZsh); err != nil {
		t.Fatalf("GenerateCompletion() error = %v", err)
	}
	if !strings.Contains(buf.String(), `In \[n\]\: / Out\[n\]\: prompts`) {
		t.Error("brackets and colons in descriptions should be escaped")
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := GenerateCompletion(&buf, Shell("tcsh"))
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("error = %v, want ErrUnsupportedShell", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestGetCommands - Command registry
// ---------------------------------------------------------------------------

func TestGetCommands(t *testing.T) {
	t.Parallel()

	byName := map[string]commandDef{}
	for _, c := range getCommands() {
		byName[c.Name] = c
	}

	for _, name := range commandNames() {
		if _, ok := byName[name]; !ok {
			t.Errorf("command %q missing from completion registry", name)
		}
	}

	tests := []struct {
		command string
		flag    string
		want    flagType
	}{
		{"nb2md", "strip-code", flagBool},
		{"nb2md", "workers", flagInt},
		{"nb2md", "images", flagEnum},
		{"md2docx", "reference-doc", flagFile},
		{"md2docx", "title", flagString},
		{"report", "keep-md", flagBool},
		{"report", "output", flagDir},
		{"preview", "allow-html", flagBool},
		{"doctor", "json", flagBool},
	}

	for _, tt := range tests {
		var found *flagDef
		for i, f := range byName[tt.command].Flags {
			if f.Long == tt.flag {
				found = &byName[tt.command].Flags[i]
			}
		}
		if found == nil {
			t.Errorf("%s: flag --%s missing", tt.command, tt.flag)
			continue
		}
		if found.Type != tt.want {
			t.Errorf("%s --%s type = %d, want %d", tt.command, tt.flag, found.Type, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Completion
// ---------------------------------------------------------------------------

func TestRunMain_Completion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
	}{
		{"usage", []string{"nbreport", "completion"}, ExitSuccess, "Usage: nbreport completion <shell>"},
		{"bash", []string{"nbreport", "completion", "bash"}, ExitSuccess, "complete -o filenames"},
		{"unsupported", []string{"nbreport", "completion", "csh"}, ExitUsage, ""},
		{"help", []string{"nbreport", "help", "completion"}, ExitSuccess, "Supported shells:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv(nil)
			if code := runMain(tt.args, env); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, tt.wantStdout)
			}
		})
	}
}
