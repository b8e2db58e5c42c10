package export

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/alnah/go-nbreport/internal/notebook"
)

// cellMagicLanguages maps IPython cell magics to fence languages.
var cellMagicLanguages = map[string]string{
	"%%R":          "r",
	"%%bash":       "bash",
	"%%cython":     "cython",
	"%%javascript": "javascript",
	"%%julia":      "julia",
	"%%latex":      "latex",
	"%%octave":     "octave",
	"%%perl":       "perl",
	"%%ruby":       "ruby",
	"%%sh":         "sh",
	"%%sql":        "sql",
}

// magicLanguage returns the fence language implied by a leading cell magic.
func magicLanguage(source string) string {
	first, _, _ := strings.Cut(strings.TrimLeft(source, " \t\n"), "\n")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return cellMagicLanguages[fields[0]]
}

// attachmentRef matches ![alt](attachment:name) image references.
var attachmentRef = regexp.MustCompile(`!\[([^\]]*)\]\(attachment:([^)\s]+)\)`)

var attachmentMimes = []string{"image/png", "image/jpeg", "image/gif", "image/svg+xml"}

// inlineAttachments replaces attachment references with data URIs when
// images are embedded. Unknown attachments are left untouched.
func (r *renderer) inlineAttachments(source string, attachments map[string]notebook.MimeBundle) string {
	if r.opts.Images != ImagesEmbed || len(attachments) == 0 {
		return source
	}
	return attachmentRef.ReplaceAllStringFunc(source, func(match string) string {
		groups := attachmentRef.FindStringSubmatch(match)
		bundle, ok := attachments[groups[2]]
		if !ok {
			return match
		}
		for _, mime := range attachmentMimes {
			text, err := bundle.Text(mime)
			if err != nil {
				continue
			}
			encoded := stripSpace(text)
			if mime == "image/svg+xml" {
				encoded = base64.StdEncoding.EncodeToString([]byte(text))
			}
			return "![" + groups[1] + "](" + dataURI(mime, encoded) + ")"
		}
		return match
	})
}
