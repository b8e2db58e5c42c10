package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-nbreport/internal/config"
)

const envPrefix = "NBREPORT_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // NBREPORT_CONFIG: config file name or path
	LogLevel   string // NBREPORT_LOG_LEVEL: debug, info, warn, error

	// I/O
	InputDir  string // NBREPORT_INPUT_DIR: default input directory
	OutputDir string // NBREPORT_OUTPUT_DIR: default output directory
	Workers   int    // NBREPORT_WORKERS: parallel workers

	// Notebook
	StripCode bool   // NBREPORT_STRIP_CODE: "1"/"true" removes code cells
	Images    string // NBREPORT_IMAGES: embed, reference, omit

	// Document
	Pandoc       string // NBREPORT_PANDOC: pandoc executable
	Timeout      string // NBREPORT_TIMEOUT: pandoc timeout (Go duration)
	ReferenceDoc string // NBREPORT_REFERENCE_DOC: styles .docx
	Author       string // NBREPORT_AUTHOR: document author
	Date         string // NBREPORT_DATE: document date

	// Warnings collects values that could not be parsed.
	Warnings []string
}

// knownEnvVars lists valid NBREPORT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"NBREPORT_CONFIG":        true,
	"NBREPORT_LOG_LEVEL":     true,
	"NBREPORT_INPUT_DIR":     true,
	"NBREPORT_OUTPUT_DIR":    true,
	"NBREPORT_WORKERS":       true,
	"NBREPORT_STRIP_CODE":    true,
	"NBREPORT_IMAGES":        true,
	"NBREPORT_PANDOC":        true,
	"NBREPORT_TIMEOUT":       true,
	"NBREPORT_REFERENCE_DOC": true,
	"NBREPORT_AUTHOR":        true,
	"NBREPORT_DATE":          true,
	// Read by doctor.
	"NBREPORT_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:   getenv("NBREPORT_CONFIG"),
		LogLevel:     getenv("NBREPORT_LOG_LEVEL"),
		InputDir:     getenv("NBREPORT_INPUT_DIR"),
		OutputDir:    getenv("NBREPORT_OUTPUT_DIR"),
		Images:       getenv("NBREPORT_IMAGES"),
		Pandoc:       getenv("NBREPORT_PANDOC"),
		Timeout:      getenv("NBREPORT_TIMEOUT"),
		ReferenceDoc: getenv("NBREPORT_REFERENCE_DOC"),
		Author:       getenv("NBREPORT_AUTHOR"),
		Date:         getenv("NBREPORT_DATE"),
	}

	if workers := getenv("NBREPORT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring NBREPORT_WORKERS=%q (want a positive integer)", workers))
		}
	}

	if strip := getenv("NBREPORT_STRIP_CODE"); strip != "" {
		if b, err := strconv.ParseBool(strip); err == nil {
			cfg.StripCode = b
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring NBREPORT_STRIP_CODE=%q (want true or false)", strip))
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized NBREPORT_* variables.
// Helps catch typos like NBREPORT_WORKER instead of NBREPORT_WORKERS.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		name, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies set environment variables over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by the merge functions).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}

	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Workers > 0 {
		cfg.Output.Workers = env.Workers
	}

	if env.StripCode {
		cfg.Notebook.StripCode = true
	}
	if env.Images != "" {
		cfg.Notebook.Images = env.Images
	}

	if env.Pandoc != "" {
		cfg.Document.Pandoc = env.Pandoc
	}
	if env.Timeout != "" {
		cfg.Document.Timeout = env.Timeout
	}
	if env.ReferenceDoc != "" {
		cfg.Document.ReferenceDoc = env.ReferenceDoc
	}
	if env.Author != "" {
		cfg.Document.Author = env.Author
	}
	if env.Date != "" {
		cfg.Document.Date = env.Date
	}
}
