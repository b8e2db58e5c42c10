package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
	Repeat   bool     // may be given more than once
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	FilePattern string // glob for file arguments (e.g., "*.ipynb"); empty = none
	Args        []string
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"images":    {Values: []string{"embed", "reference", "omit"}},
	"log-level": {Values: []string{"debug", "info", "warn", "error"}},

	"config":        {FileGlob: "*.yaml,*.yml"},
	"reference-doc": {FileGlob: "*.docx"},
	"pandoc":        {FileGlob: "*"},

	"output": {IsDir: true},
}

var completionShells = []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		case "stringSlice", "stringArray":
			fd.Repeat = true
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the FlagSets the commands parse with.
func getCommands() []commandDef {
	var jsonOutput bool
	var binary string

	return []commandDef{
		{
			Name:        "nb2md",
			Desc:        "Convert Jupyter notebooks to Markdown",
			Flags:       extractFlagsFromFlagSet(nb2mdFlagSet(&nb2mdFlags{})),
			FilePattern: "*.ipynb",
		},
		{
			Name:        "md2docx",
			Desc:        "Convert Markdown files to Word documents",
			Flags:       extractFlagsFromFlagSet(md2docxFlagSet(&md2docxFlags{})),
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:        "report",
			Desc:        "Convert notebooks straight to Word documents",
			Flags:       extractFlagsFromFlagSet(reportFlagSet(&reportFlags{})),
			FilePattern: "*.ipynb",
		},
		{
			Name:        "preview",
			Desc:        "Render a notebook or Markdown file as HTML",
			Flags:       extractFlagsFromFlagSet(previewFlagSet(&previewFlags{})),
			FilePattern: "*.ipynb,*.md,*.markdown",
		},
		{
			Name:  "doctor",
			Desc:  "Check pandoc and the environment",
			Flags: extractFlagsFromFlagSet(doctorFlagSet(&jsonOutput, &binary)),
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command", Args: commandNames()},
		{Name: "completion", Desc: "Generate shell completion script", Args: completionShells},
	}
}

// commandNames lists the commands accepted by "help".
func commandNames() []string {
	return []string{"nb2md", "md2docx", "report", "preview", "doctor", "version", "help", "completion"}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	case ShellPowerShell:
		script = generatePowerShell(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(completionShells, ", "))
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// flagNames returns "--long" and "-s" spellings of every flag.
func flagNames(flags []flagDef) []string {
	names := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		names = append(names, "--"+f.Long)
		if f.Short != "" {
			names = append(names, "-"+f.Short)
		}
	}
	return names
}

// globExts turns "*.md,*.markdown" into ["md", "markdown"].
func globExts(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		if ext, ok := strings.CutPrefix(g, "*."); ok {
			exts = append(exts, ext)
		}
	}
	return exts
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(commands []commandDef) string {
	var b strings.Builder
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name)
	}

	b.WriteString("# bash completion for nbreport\n")
	b.WriteString("_nbreport() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(c.Args, " "))
			b.WriteString("            ;;\n")
			continue
		}

		var valueCases strings.Builder
		for _, f := range c.Flags {
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern = "-" + f.Short + "|" + pattern
			}
			var action string
			switch f.Type {
			case flagEnum:
				action = fmt.Sprintf("COMPREPLY=($(compgen -W %q -- \"$cur\"))", strings.Join(f.Values, " "))
			case flagDir:
				action = "COMPREPLY=($(compgen -d -- \"$cur\"))"
			case flagFile:
				action = bashFileAction(f.FileGlob)
			case flagString, flagInt:
				action = "COMPREPLY=()"
			default:
				continue
			}
			fmt.Fprintf(&valueCases, "                %s) %s; return ;;\n", pattern, action)
		}
		if valueCases.Len() > 0 {
			b.WriteString("            case \"$prev\" in\n")
			b.WriteString(valueCases.String())
			b.WriteString("            esac\n")
		}

		b.WriteString("            if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(&b, "                COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagNames(c.Flags), " "))
		if c.FilePattern != "" {
			b.WriteString("            else\n")
			fmt.Fprintf(&b, "                %s\n", bashFileAction(c.FilePattern))
		}
		b.WriteString("            fi\n")
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -o bashdefault -F _nbreport nbreport\n")
	return b.String()
}

func bashFileAction(glob string) string {
	exts := globExts(glob)
	if len(exts) == 0 {
		return "COMPREPLY=($(compgen -f -- \"$cur\"))"
	}
	return fmt.Sprintf("COMPREPLY=($(compgen -o plusdirs -f -X '!*.@(%s)' -- \"$cur\"))", strings.Join(exts, "|"))
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

var zshEscaper = strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)

func generateZsh(commands []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef nbreport\n\n")
	b.WriteString("_nbreport() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscaper.Replace(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case $words[2] in\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "            _values '%s' %s\n", c.Name, strings.Join(c.Args, " "))
			b.WriteString("            ;;\n")
			continue
		}

		specs := make([]string, 0, len(c.Flags)+1)
		for _, f := range c.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		if c.FilePattern != "" {
			specs = append(specs, fmt.Sprintf(`'*:file:_files -g "%s"'`, zshGlob(c.FilePattern)))
		}
		if len(specs) == 0 {
			b.WriteString("            ;;\n")
			continue
		}
		b.WriteString("            _arguments \\\n")
		for i, spec := range specs {
			sep := " \\\n"
			if i == len(specs)-1 {
				sep = "\n"
			}
			fmt.Fprintf(&b, "                %s%s", spec, sep)
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _nbreport nbreport\n")
	return b.String()
}

func zshFlagSpec(f flagDef) string {
	desc := zshEscaper.Replace(f.Desc)

	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagDir:
		action = fmt.Sprintf(":%s:_files -/", f.Long)
	case flagFile:
		if exts := globExts(f.FileGlob); len(exts) > 0 {
			action = fmt.Sprintf(":%s:_files -g \"%s\"", f.Long, zshGlob(f.FileGlob))
		} else {
			action = fmt.Sprintf(":%s:_files", f.Long)
		}
	default:
		action = fmt.Sprintf(":%s:", f.Long)
	}

	repeat := ""
	if f.Repeat {
		repeat = "*"
	}
	if f.Short == "" {
		return fmt.Sprintf("'%s--%s[%s]%s'", repeat, f.Long, desc, action)
	}
	return fmt.Sprintf("'(-%s --%s)'{%s-%s,%s--%s}'[%s]%s'", f.Short, f.Long, repeat, f.Short, repeat, f.Long, desc, action)
}

// zshGlob turns "*.md,*.markdown" into "*.(md|markdown)".
func zshGlob(glob string) string {
	exts := globExts(glob)
	if len(exts) == 1 {
		return "*." + exts[0]
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

var fishEscaper = strings.NewReplacer(`\`, `\\`, "'", `\'`)

func generateFish(commands []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for nbreport\n")
	b.WriteString("complete -c nbreport -f\n\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "complete -c nbreport -n __fish_use_subcommand -a %s -d '%s'\n", c.Name, fishEscaper.Replace(c.Desc))
	}

	for _, c := range commands {
		cond := fmt.Sprintf("-n '__fish_seen_subcommand_from %s'", c.Name)
		b.WriteString("\n")
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "complete -c nbreport %s -a '%s'\n", cond, strings.Join(c.Args, " "))
			continue
		}
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c nbreport %s", cond)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			fmt.Fprintf(&b, " -l %s -d '%s'", f.Long, fishEscaper.Replace(f.Desc))
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagDir:
				b.WriteString(" -x -a '(__fish_complete_directories)'")
			case flagFile:
				if exts := globExts(f.FileGlob); len(exts) > 0 {
					fmt.Fprintf(&b, " -x -a '(__fish_complete_suffix .%s)'", strings.Join(exts, " ."))
				} else {
					b.WriteString(" -r -F")
				}
			default:
				b.WriteString(" -x")
			}
			b.WriteString("\n")
		}
		if c.FilePattern != "" {
			fmt.Fprintf(&b, "complete -c nbreport %s -a '(__fish_complete_suffix .%s)'\n", cond, strings.Join(globExts(c.FilePattern), " ."))
		}
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func psArray(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = psQuote(v)
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func generatePowerShell(commands []commandDef) string {
	var b strings.Builder

	b.WriteString("# PowerShell completion for nbreport\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName nbreport -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psQuote(c.Desc))
	}
	b.WriteString("    }\n")

	b.WriteString("    $flags = @{\n")
	for _, c := range commands {
		words := flagNames(c.Flags)
		if len(c.Args) > 0 {
			words = c.Args
		}
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psArray(words))
	}
	b.WriteString("    }\n")

	// Value lists are keyed by flag spelling; flags shared across commands
	// carry the same values everywhere.
	values := map[string][]string{}
	for _, c := range commands {
		for _, f := range c.Flags {
			if f.Type == flagEnum {
				values["--"+f.Long] = f.Values
			}
		}
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	b.WriteString("    $values = @{\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(k), psArray(values[k]))
	}
	b.WriteString("    }\n\n")

	b.WriteString(`    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })
    if ($wordToComplete -ne '') { $elements = $elements[0..($elements.Count - 2)] }

    if ($elements.Count -lt 2) {
        $commands.GetEnumerator() | Where-Object { $_.Key -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)
        }
        return
    }

    $command = $elements[1]
    $prev = $elements[-1]
    if ($values.ContainsKey($prev)) {
        $values[$prev] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    if ($flags.ContainsKey($command) -and ($wordToComplete -like '-*' -or $command -in @('help', 'completion'))) {
        $flags[$command] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)
        }
    }
}
`)
	return b.String()
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbreport completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(nbreport completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(nbreport completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    nbreport completion fish > ~/.config/fish/completions/nbreport.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    nbreport completion powershell | Out-String | Invoke-Expression")
}
