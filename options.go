package nbreport

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-nbreport/internal/logging"
	"github.com/alnah/go-nbreport/internal/pandoc"
)

// Option configures a NotebookConverter or a DocumentConverter.
// Options that do not apply to a converter are ignored by it.
type Option func(*settings)

// settings holds internal configuration shared by both converters.
type settings struct {
	logger logrus.FieldLogger

	// notebook
	html HTMLConverter

	// document
	binary       string
	timeout      time.Duration
	tempRoot     string
	referenceDoc string
	metadata     map[string]string
	extraArgs    []string
	runner       pandoc.CommandRunner
}

func newSettings(opts []Option) settings {
	s := settings{
		logger: logging.Discard(),
		binary: pandoc.DefaultBinary,
		runner: &pandoc.ExecRunner{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// HTMLConverter turns a notebook's HTML output into Markdown.
type HTMLConverter interface {
	ConvertHTML(html string) (string, error)
}

// WithLogger sets the logger used for debug traces. Defaults to a logger
// that discards everything.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHTMLConverter replaces the converter used when
// ExportOptions.HTMLToMarkdown is set.
func WithHTMLConverter(c HTMLConverter) Option {
	return func(s *settings) {
		s.html = c
	}
}

// WithPandoc sets the pandoc executable, as a name on PATH or a path.
func WithPandoc(binary string) Option {
	return func(s *settings) {
		if binary != "" {
			s.binary = binary
		}
	}
}

// WithTimeout bounds each pandoc run. On expiry the process group is
// killed and Convert returns ErrConversionTimeout. Without it a run may
// take as long as pandoc needs.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("nbreport: WithTimeout duration must be positive")
	}
	return func(s *settings) {
		s.timeout = d
	}
}

// WithTempRoot sets the directory in which per-request temp directories
// are created. Defaults to os.TempDir().
func WithTempRoot(dir string) Option {
	return func(s *settings) {
		s.tempRoot = dir
	}
}

// WithReferenceDoc passes a .docx whose styles pandoc copies into the output.
func WithReferenceDoc(path string) Option {
	return func(s *settings) {
		s.referenceDoc = path
	}
}

// WithMetadata sets a document metadata field (title, author, date, ...).
// Empty values are ignored.
func WithMetadata(key, value string) Option {
	return func(s *settings) {
		if key == "" || value == "" {
			return
		}
		if s.metadata == nil {
			s.metadata = make(map[string]string)
		}
		s.metadata[key] = value
	}
}

// WithExtraArgs appends raw arguments to every pandoc invocation, after the
// input, -s and -o arguments.
func WithExtraArgs(args ...string) Option {
	return func(s *settings) {
		s.extraArgs = append(s.extraArgs, args...)
	}
}

// withRunner replaces the command runner (tests).
func withRunner(r pandoc.CommandRunner) Option {
	return func(s *settings) {
		s.runner = r
	}
}
