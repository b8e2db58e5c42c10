package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-nbreport/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config   string
	quiet    bool
	verbose  bool
	logLevel string
}

// ioFlags holds output placement and concurrency flags.
type ioFlags struct {
	output  string
	workers int
}

// notebookFlags holds notebook export flags.
type notebookFlags struct {
	stripCode        bool
	showPrompts      bool
	htmlToMarkdown   bool
	images           string
	removeCellTags   []string
	removeInputTags  []string
	removeOutputTags []string
}

// documentFlags holds pandoc and document metadata flags.
type documentFlags struct {
	pandoc       string
	timeout      string
	referenceDoc string
	title        string
	autoTitle    bool
	author       string
	date         string
	pandocArgs   []string
}

// nb2mdFlags holds all flags for the nb2md command.
type nb2mdFlags struct {
	common   commonFlags
	io       ioFlags
	notebook notebookFlags
	preview  bool
}

// md2docxFlags holds all flags for the md2docx command.
type md2docxFlags struct {
	common   commonFlags
	io       ioFlags
	document documentFlags
}

// reportFlags holds all flags for the report command.
type reportFlags struct {
	common   commonFlags
	io       ioFlags
	notebook notebookFlags
	document documentFlags
	keepMD   bool
}

// previewFlags holds all flags for the preview command.
type previewFlags struct {
	common    commonFlags
	notebook  notebookFlags
	output    string
	allowHTML bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timings and debug logs")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// addIOFlags adds output and worker flags to a FlagSet.
func addIOFlags(fs *flag.FlagSet, f *ioFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
}

// addNotebookFlags adds notebook export flags to a FlagSet.
func addNotebookFlags(fs *flag.FlagSet, f *notebookFlags) {
	fs.BoolVar(&f.stripCode, "strip-code", false, "remove code cells, keep their outputs")
	fs.BoolVar(&f.showPrompts, "show-prompts", false, "write In [n]: / Out[n]: prompts")
	fs.BoolVar(&f.htmlToMarkdown, "html-to-md", false, "convert HTML outputs (tables) to Markdown")
	fs.StringVar(&f.images, "images", "", "image outputs: embed, reference, omit")
	fs.StringSliceVar(&f.removeCellTags, "remove-cell-tag", nil, "drop cells with this tag (repeatable)")
	fs.StringSliceVar(&f.removeInputTags, "remove-input-tag", nil, "drop inputs of cells with this tag (repeatable)")
	fs.StringSliceVar(&f.removeOutputTags, "remove-output-tag", nil, "drop outputs of cells with this tag (repeatable)")
}

// addDocumentFlags adds pandoc and metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc executable name or path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "pandoc timeout per file (e.g., 30s, 2m; 0 = none)")
	fs.StringVar(&f.referenceDoc, "reference-doc", "", "docx whose styles are copied into the output")
	fs.StringVar(&f.title, "title", "", "document title")
	fs.BoolVar(&f.autoTitle, "auto-title", false, "use the first H1 as title when --title is empty")
	fs.StringVar(&f.author, "author", "", "document author")
	fs.StringVar(&f.date, "date", "", "document date (\"auto\" = today, \"auto:FORMAT\")")
	fs.StringArrayVar(&f.pandocArgs, "pandoc-arg", nil, "extra pandoc argument (repeatable)")
}

// newFlagSet returns a silent FlagSet; errors are reported by runMain.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	return fs
}

// parseFlagSet parses args, printing usage to w on -h/--help.
func parseFlagSet(fs *flag.FlagSet, args []string, w io.Writer, usage func(io.Writer)) error {
	err := fs.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		usage(w)
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUsage, fs.Name(), err)
	}
	return nil
}

// nb2mdFlagSet registers the nb2md flags into f.
// Shared by parsing and shell completion.
func nb2mdFlagSet(f *nb2mdFlags) *flag.FlagSet {
	fs := newFlagSet("nb2md")
	addIOFlags(fs, &f.io)
	addNotebookFlags(fs, &f.notebook)
	fs.BoolVar(&f.preview, "preview", false, "print the beginning of each generated file")
	addCommonFlags(fs, &f.common)
	return fs
}

func md2docxFlagSet(f *md2docxFlags) *flag.FlagSet {
	fs := newFlagSet("md2docx")
	addIOFlags(fs, &f.io)
	addDocumentFlags(fs, &f.document)
	addCommonFlags(fs, &f.common)
	return fs
}

func reportFlagSet(f *reportFlags) *flag.FlagSet {
	fs := newFlagSet("report")
	addIOFlags(fs, &f.io)
	addNotebookFlags(fs, &f.notebook)
	addDocumentFlags(fs, &f.document)
	fs.BoolVar(&f.keepMD, "keep-md", false, "also write the intermediate .md next to the .docx")
	addCommonFlags(fs, &f.common)
	return fs
}

func previewFlagSet(f *previewFlags) *flag.FlagSet {
	fs := newFlagSet("preview")
	fs.StringVarP(&f.output, "output", "o", "", "HTML file to write (default: stdout)")
	fs.BoolVar(&f.allowHTML, "allow-html", false, "keep raw HTML blocks in the page")
	addNotebookFlags(fs, &f.notebook)
	addCommonFlags(fs, &f.common)
	return fs
}

// parseNb2mdFlags parses nb2md command flags and returns positional args.
func parseNb2mdFlags(args []string, w io.Writer) (*nb2mdFlags, []string, error) {
	f := &nb2mdFlags{}
	fs := nb2mdFlagSet(f)
	if err := parseFlagSet(fs, args, w, printNb2mdUsage); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseMd2docxFlags parses md2docx command flags and returns positional args.
func parseMd2docxFlags(args []string, w io.Writer) (*md2docxFlags, []string, error) {
	f := &md2docxFlags{}
	fs := md2docxFlagSet(f)
	if err := parseFlagSet(fs, args, w, printMd2docxUsage); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseReportFlags parses report command flags and returns positional args.
func parseReportFlags(args []string, w io.Writer) (*reportFlags, []string, error) {
	f := &reportFlags{}
	fs := reportFlagSet(f)
	if err := parseFlagSet(fs, args, w, printReportUsage); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string, w io.Writer) (*previewFlags, []string, error) {
	f := &previewFlags{}
	fs := previewFlagSet(f)
	if err := parseFlagSet(fs, args, w, printPreviewUsage); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// mergeIO applies output flags over cfg. CLI values override config values.
func mergeIO(f ioFlags, cfg *config.Config) {
	if f.output != "" {
		cfg.Output.DefaultDir = f.output
	}
	if f.workers != 0 {
		cfg.Output.Workers = f.workers
	}
}

// mergeNotebook applies notebook flags over cfg.
func mergeNotebook(f notebookFlags, cfg *config.NotebookConfig) {
	if f.stripCode {
		cfg.StripCode = true
	}
	if f.showPrompts {
		cfg.ShowPrompts = true
	}
	if f.htmlToMarkdown {
		cfg.HTMLToMarkdown = true
	}
	if f.images != "" {
		cfg.Images = f.images
	}
	cfg.RemoveCellTags = append(cfg.RemoveCellTags, f.removeCellTags...)
	cfg.RemoveInputTags = append(cfg.RemoveInputTags, f.removeInputTags...)
	cfg.RemoveOutputTags = append(cfg.RemoveOutputTags, f.removeOutputTags...)
}

// mergeDocument applies document flags over cfg.
func mergeDocument(f documentFlags, cfg *config.DocumentConfig) {
	if f.pandoc != "" {
		cfg.Pandoc = f.pandoc
	}
	if f.timeout != "" {
		cfg.Timeout = f.timeout
	}
	if f.referenceDoc != "" {
		cfg.ReferenceDoc = f.referenceDoc
	}
	if f.title != "" {
		cfg.Title = f.title
	}
	if f.autoTitle {
		cfg.AutoTitle = true
	}
	if f.author != "" {
		cfg.Author = f.author
	}
	if f.date != "" {
		cfg.Date = f.date
	}
	cfg.ExtraArgs = append(cfg.ExtraArgs, f.pandocArgs...)
}
