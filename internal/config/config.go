package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-nbreport/internal/fileutil"
	"github.com/alnah/go-nbreport/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
	ErrReservedArg     = errors.New("pandoc argument is managed by nbreport")
)

// AppDirName is the directory under the user config dir searched by LoadConfig.
const AppDirName = "go-nbreport"

// Field length limits.
const (
	MaxPathLength   = 4096
	MaxTitleLength  = 200
	MaxAuthorLength = 100
	MaxDateLength   = 30 // "2025-12-31" or "December 31, 2025"
	MaxTagLength    = 100
	MaxArgLength    = 1024
	MaxExtraArgs    = 32
)

// Allowed enum values.
var (
	ImageModes = []string{"embed", "reference", "omit"}
	LogLevels  = []string{"debug", "info", "warn", "warning", "error"}
)

// Config holds all configuration for notebook and document conversion.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Notebook NotebookConfig `yaml:"notebook"`
	Document DocumentConfig `yaml:"document"`
	Log      LogConfig      `yaml:"log"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Workers    int    `yaml:"workers"`    // 0 = auto
}

// NotebookConfig controls the notebook to Markdown export.
type NotebookConfig struct {
	StripCode        bool     `yaml:"stripCode"`
	ShowPrompts      bool     `yaml:"showPrompts"`
	HTMLToMarkdown   bool     `yaml:"htmlToMarkdown"`
	Images           string   `yaml:"images"` // "embed" (default), "reference", "omit"
	RemoveCellTags   []string `yaml:"removeCellTags"`
	RemoveInputTags  []string `yaml:"removeInputTags"`
	RemoveOutputTags []string `yaml:"removeOutputTags"`
}

// DocumentConfig controls the Markdown to docx conversion.
type DocumentConfig struct {
	Pandoc       string   `yaml:"pandoc"`       // Binary name or path (default: "pandoc")
	Timeout      string   `yaml:"timeout"`      // Go duration, empty or "0" = none
	ReferenceDoc string   `yaml:"referenceDoc"` // Styles template passed as --reference-doc
	Title        string   `yaml:"title"`
	AutoTitle    bool     `yaml:"autoTitle"` // Use the first H1 when title is empty
	Author       string   `yaml:"author"`
	Date         string   `yaml:"date"` // "auto" = YYYY-MM-DD at conversion time
	ExtraArgs    []string `yaml:"extraArgs"`
}

// LogConfig defines logging options.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn (default), error
}

// TimeoutDuration parses Document.Timeout. Empty means no timeout.
func (d DocumentConfig) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(d.Timeout) == "" {
		return 0, nil
	}
	dur, err := time.ParseDuration(strings.TrimSpace(d.Timeout))
	if err != nil {
		return 0, fmt.Errorf("%w: document.timeout %q: %v", ErrInvalidValue, d.Timeout, err)
	}
	if dur < 0 {
		return 0, fmt.Errorf("%w: document.timeout must not be negative, got %s", ErrInvalidValue, dur)
	}
	return dur, nil
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for callers that build
// or override a Config (environment variables, flags).
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if c.Output.Workers < 0 {
		return fmt.Errorf("%w: output.workers must not be negative, got %d", ErrInvalidValue, c.Output.Workers)
	}

	if err := validateEnum("notebook.images", c.Notebook.Images, ImageModes); err != nil {
		return err
	}
	if err := validateTags("notebook.removeCellTags", c.Notebook.RemoveCellTags); err != nil {
		return err
	}
	if err := validateTags("notebook.removeInputTags", c.Notebook.RemoveInputTags); err != nil {
		return err
	}
	if err := validateTags("notebook.removeOutputTags", c.Notebook.RemoveOutputTags); err != nil {
		return err
	}

	if err := validateFieldLength("document.pandoc", c.Document.Pandoc, MaxPathLength); err != nil {
		return err
	}
	if _, err := c.Document.TimeoutDuration(); err != nil {
		return err
	}
	if err := validateFieldLength("document.referenceDoc", c.Document.ReferenceDoc, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.title", c.Document.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.author", c.Document.Author, MaxAuthorLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.date", c.Document.Date, MaxDateLength); err != nil {
		return err
	}
	if len(c.Document.ExtraArgs) > MaxExtraArgs {
		return fmt.Errorf("%w: document.extraArgs (%d args, max %d)", ErrFieldTooLong, len(c.Document.ExtraArgs), MaxExtraArgs)
	}
	for i, arg := range c.Document.ExtraArgs {
		if err := validateFieldLength(fmt.Sprintf("document.extraArgs[%d]", i), arg, MaxArgLength); err != nil {
			return err
		}
		if isReservedArg(arg) {
			return fmt.Errorf("%w: document.extraArgs[%d] %q", ErrReservedArg, i, arg)
		}
	}

	return validateEnum("log.level", c.Log.Level, LogLevels)
}

// isReservedArg reports pandoc options that would redirect or suppress the
// output file the converter reads back.
func isReservedArg(arg string) bool {
	name, _, _ := strings.Cut(arg, "=")
	switch name {
	case "-o", "--output", "-s", "--standalone", "--to", "-t", "-w", "--write":
		return true
	}
	if strings.HasPrefix(arg, "--") || len(arg) <= 2 {
		return false
	}
	// Short options with the value attached, as in -ox.pdf or -tplain.
	switch arg[:2] {
	case "-o", "-t", "-w":
		return true
	}
	return false
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateTags(fieldName string, tags []string) error {
	for i, tag := range tags {
		if err := validateFieldLength(fmt.Sprintf("%s[%d]", fieldName, i), tag, MaxTagLength); err != nil {
			return err
		}
	}
	return nil
}

// validateEnum accepts an empty value or one of allowed (case-insensitive).
func validateEnum(fieldName, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns a configuration that keeps code, embeds images and
// runs pandoc from PATH without a timeout.
func DefaultConfig() *Config {
	return &Config{
		Notebook: NotebookConfig{Images: "embed"},
		Document: DocumentConfig{Pandoc: "pandoc"},
		Log:      LogConfig{Level: "warn"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Searched: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(f, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NotFoundError lists the locations searched for a config file.
type NotFoundError struct {
	Searched []string
}

func (e *NotFoundError) Error() string {
	if len(e.Searched) == 1 {
		return fmt.Sprintf("%s: %s", ErrConfigNotFound, e.Searched[0])
	}
	return fmt.Sprintf("%s: tried %s", ErrConfigNotFound, strings.Join(e.Searched, ", "))
}

func (e *NotFoundError) Is(target error) bool { return target == ErrConfigNotFound }

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-nbreport/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Searched: triedPaths}
}
