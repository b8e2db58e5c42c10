// Package nbreport turns Jupyter notebooks into Markdown and Markdown into
// Word documents.
//
// # Notebook to Markdown
//
// NotebookConverter decodes an nbformat 4 notebook and renders it the way
// nbconvert's Markdown exporter does. StripCodeOptions removes code inputs
// and prompts while keeping outputs, for reports aimed at readers who do
// not care about the code:
//
//	md, err := nbreport.ConvertNotebook(ctx, data, true)
//
// Finer control goes through ExportOptions:
//
//	conv := nbreport.NewNotebookConverter()
//	md, err := conv.Convert(ctx, data, nbreport.ExportOptions{
//	    ExcludeInput:   true,
//	    HTMLToMarkdown: true,
//	    Images:         nbreport.ImagesEmbed,
//	})
//
// # Markdown to Word
//
// DocumentConverter drives the external pandoc executable. Creating one
// checks that pandoc is installed; without it NewDocumentConverter returns
// ErrToolUnavailable and nothing else is attempted:
//
//	conv, err := nbreport.NewDocumentConverter(
//	    nbreport.WithTimeout(2 * time.Minute),
//	    nbreport.WithMetadata("author", "Data Team"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	docx, err := conv.Convert(ctx, []byte(md))
//
// Each call writes the Markdown to a fresh temp directory, runs
// `pandoc input.md -s -o output.docx`, reads the result back and removes
// the directory. A failing run returns a *ConversionError carrying pandoc's
// stderr.
//
// # Errors
//
// All errors can be matched with errors.Is:
//
//   - ErrMalformedNotebook, ErrUnsupportedNotebookVersion: bad notebook input
//   - ErrToolUnavailable: pandoc not found
//   - ErrConversion: pandoc exited unsuccessfully (see *ConversionError)
//   - ErrConversionTimeout: WithTimeout expired and pandoc was killed
package nbreport
