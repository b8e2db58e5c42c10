package nbreport_test

import (
	"context"
	"fmt"

	"github.com/alnah/go-nbreport"
)

const exampleNotebook = `{
	"nbformat": 4, "nbformat_minor": 5,
	"metadata": {"language_info": {"name": "python"}},
	"cells": [
		{"cell_type": "markdown", "metadata": {}, "source": "# Title"},
		{"cell_type": "code", "metadata": {}, "execution_count": 1, "source": "print(1)",
		 "outputs": [{"output_type": "stream", "name": "stdout", "text": "1\n"}]},
		{"cell_type": "markdown", "metadata": {}, "source": "Done"}
	]
}`

// Example renders a notebook as Markdown with its code kept.
func Example() {
	md, err := nbreport.ConvertNotebook(context.Background(), []byte(exampleNotebook), false)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Print(md)
	// Output:
	// # Title
	//
	// ```python
	// print(1)
	// ```
	//
	//     1
	//
	// Done
}

// Example_stripCode keeps only markdown cells and outputs.
func Example_stripCode() {
	md, err := nbreport.ConvertNotebook(context.Background(), []byte(exampleNotebook), true)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Print(md)
	// Output:
	// # Title
	//
	//     1
	//
	// Done
}

// ExampleDocumentConverter converts Markdown to a Word document.
// Requires pandoc on PATH, so it is compiled but not run.
func ExampleDocumentConverter() {
	conv, err := nbreport.NewDocumentConverter(
		nbreport.WithMetadata("author", "Data Team"),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	doc, err := conv.ConvertDocument(context.Background(), nbreport.DocumentInput{
		Markdown: []byte("# Quarterly report\n\nAll good."),
		Title:    "Quarterly report",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(len(doc) > 0)
}

// ExamplePreviewText shows the truncated excerpt printed by --preview.
func ExamplePreviewText() {
	fmt.Println(nbreport.PreviewText("abcdefgh", 4))
	// Output:
	// abcd
	//
	// [...truncated for preview...]
}
