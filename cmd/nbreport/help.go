package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbreport <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  nb2md      Convert Jupyter notebooks to Markdown")
	fmt.Fprintln(w, "  md2docx    Convert Markdown files to Word documents (needs pandoc)")
	fmt.Fprintln(w, "  report     Convert notebooks straight to Word documents")
	fmt.Fprintln(w, "  preview    Render a notebook or Markdown file as HTML")
	fmt.Fprintln(w, "  doctor     Check pandoc and the environment")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'nbreport help <command>' for details on a specific command.")
}

func printIOUsage(w io.Writer, target string) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintf(w, "  -o, --output <path>         Output %s file or directory\n", target)
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto, max 8)")
	fmt.Fprintln(w)
}

func printNotebookUsage(w io.Writer) {
	fmt.Fprintln(w, "Notebook:")
	fmt.Fprintln(w, "      --strip-code            Remove code cells, keep their outputs")
	fmt.Fprintln(w, "      --show-prompts          Write In [n]: / Out[n]: prompts")
	fmt.Fprintln(w, "      --html-to-md            Convert HTML outputs (tables) to Markdown")
	fmt.Fprintln(w, "      --images <mode>         Image outputs: embed (default), reference, omit")
	fmt.Fprintln(w, "      --remove-cell-tag <t>   Drop cells tagged t (repeatable)")
	fmt.Fprintln(w, "      --remove-input-tag <t>  Drop inputs of cells tagged t (repeatable)")
	fmt.Fprintln(w, "      --remove-output-tag <t> Drop outputs of cells tagged t (repeatable)")
	fmt.Fprintln(w)
}

func printDocumentUsage(w io.Writer) {
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --pandoc <path>         pandoc executable (default: pandoc on PATH)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Timeout per file, e.g. 30s, 2m (default: none)")
	fmt.Fprintln(w, "      --reference-doc <path>  .docx whose styles are copied into the output")
	fmt.Fprintln(w, "      --title <s>             Document title")
	fmt.Fprintln(w, "      --auto-title            Use the first H1 when --title is empty")
	fmt.Fprintln(w, "      --author <s>            Document author")
	fmt.Fprintln(w, "      --date <s>              Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                              Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                              Presets: iso, european, us, long")
	fmt.Fprintln(w, "      --pandoc-arg <arg>      Extra pandoc argument (repeatable)")
	fmt.Fprintln(w)
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show timings and debug logs")
	fmt.Fprintln(w, "      --log-level <level>     debug, info, warn (default), error")
}

// printNb2mdUsage prints usage for the nb2md command.
func printNb2mdUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbreport nb2md <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Jupyter notebooks (.ipynb, nbformat 4) to Markdown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Notebook file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	printIOUsage(w, ".md")
	printNotebookUsage(w)
	fmt.Fprintln(w, "Preview:")
	fmt.Fprintln(w, "      --preview               Print the first 1000 characters of each result")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printMd2docxUsage prints usage for the md2docx command.
func printMd2docxUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbreport md2docx <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown files to Word documents with pandoc.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	printIOUsage(w, ".docx")
	printDocumentUsage(w)
	printCommonUsage(w)
}

// printReportUsage prints usage for the report command.
func printReportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbreport report <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert notebooks to Word documents (nb2md then md2docx).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Notebook file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	printIOUsage(w, ".docx")
	printNotebookUsage(w)
	printDocumentUsage(w)
	fmt.Fprintln(w, "Intermediate:")
	fmt.Fprintln(w, "      --keep-md               Also write the .md next to each .docx")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbreport preview <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a notebook or Markdown file as a standalone HTML page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  file     .ipynb, .md or .markdown file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>         HTML file to write (default: stdout)")
	fmt.Fprintln(w, "      --allow-html            Keep raw HTML blocks")
	fmt.Fprintln(w)
	printNotebookUsage(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbreport doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that pandoc is installed and the temp directory is writable.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                  Print results as JSON")
	fmt.Fprintln(w, "      --pandoc <path>         pandoc executable to check")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "nb2md":
		printNb2mdUsage(env.Stdout)
	case "md2docx":
		printMd2docxUsage(env.Stdout)
	case "report":
		printReportUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: nbreport version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: nbreport help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
