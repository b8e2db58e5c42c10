package export

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-nbreport/internal/notebook"
)

// displayPriority is the order in which rich output mimetypes are chosen.
var displayPriority = []string{
	"text/html",
	"text/markdown",
	"image/svg+xml",
	"text/latex",
	"image/png",
	"image/jpeg",
	"text/plain",
}

var imageExtensions = map[string]string{
	"image/svg+xml": ".svg",
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
}

var imageAltText = map[string]string{
	"image/svg+xml": "svg",
	"image/png":     "png",
	"image/jpeg":    "jpeg",
	"image/gif":     "gif",
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]`)

func (r *renderer) output(cellIndex, outIndex int, out notebook.Output) (string, error) {
	switch out.Type {
	case notebook.StreamOutput:
		return indent(out.Text.String()), nil
	case notebook.ErrorOutput:
		trace := strings.Join(out.Traceback, "\n")
		if trace == "" {
			trace = out.EName + ": " + out.EValue
		}
		return indent(ansiEscape.ReplaceAllString(trace, "")), nil
	case notebook.DisplayDataOutput, notebook.ExecuteResultOutput:
		return r.richOutput(cellIndex, outIndex, out.Data)
	}
	return "", nil
}

func (r *renderer) richOutput(cellIndex, outIndex int, data notebook.MimeBundle) (string, error) {
	for _, mime := range displayPriority {
		if !data.Has(mime) {
			continue
		}
		text, err := data.Text(mime)
		if err != nil {
			return "", err
		}

		switch mime {
		case "text/html":
			return r.html(text)
		case "text/markdown", "text/latex":
			return strings.Trim(text, "\n"), nil
		case "text/plain":
			return indent(text), nil
		case "image/svg+xml":
			encoded := base64.StdEncoding.EncodeToString([]byte(text))
			return r.image(cellIndex, outIndex, mime, encoded)
		default:
			return r.image(cellIndex, outIndex, mime, stripSpace(text))
		}
	}
	return "", nil
}

func (r *renderer) html(text string) (string, error) {
	if r.opts.HTML == nil {
		return strings.Trim(text, "\n"), nil
	}
	md, err := r.opts.HTML.ConvertHTML(text)
	if err != nil {
		return "", err
	}
	return strings.Trim(md, "\n"), nil
}

func (r *renderer) image(cellIndex, outIndex int, mime, encoded string) (string, error) {
	alt := imageAltText[mime]
	switch r.opts.Images {
	case ImagesOmit:
		return "", nil
	case ImagesReference:
		return fmt.Sprintf("![%s](%s)", alt, OutputFilename(cellIndex, outIndex, mime)), nil
	}

	if _, err := base64.StdEncoding.DecodeString(encoded); err != nil {
		return "", fmt.Errorf("%w: %s payload is not valid base64", notebook.ErrMalformed, mime)
	}
	return fmt.Sprintf("![%s](%s)", alt, dataURI(mime, encoded)), nil
}

// OutputFilename is the name nbconvert gives an extracted output.
func OutputFilename(cellIndex, outIndex int, mime string) string {
	ext, ok := imageExtensions[mime]
	if !ok {
		ext = ".bin"
	}
	return fmt.Sprintf("output_%d_%d%s", cellIndex, outIndex, ext)
}

func dataURI(mime, encoded string) string {
	return "data:" + mime + ";base64," + encoded
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
