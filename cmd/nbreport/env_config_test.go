package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-nbreport/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Parsing NBREPORT_* variables
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"NBREPORT_CONFIG":     "team",
		"NBREPORT_WORKERS":    "3",
		"NBREPORT_STRIP_CODE": "1",
		"NBREPORT_IMAGES":     "omit",
		"NBREPORT_PANDOC":     "/opt/pandoc",
		"NBREPORT_TIMEOUT":    "45s",
		"NBREPORT_DATE":       "auto",
	}
	env := loadEnvConfig(func(k string) string { return vars[k] })

	if env.ConfigPath != "team" || env.Workers != 3 || !env.StripCode {
		t.Errorf("loadEnvConfig() = %+v", env)
	}
	if env.Images != "omit" || env.Pandoc != "/opt/pandoc" || env.Timeout != "45s" || env.Date != "auto" {
		t.Errorf("loadEnvConfig() = %+v", env)
	}
	if len(env.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", env.Warnings)
	}
}

func TestLoadEnvConfig_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"workers not a number", "NBREPORT_WORKERS", "many"},
		{"workers zero", "NBREPORT_WORKERS", "0"},
		{"workers negative", "NBREPORT_WORKERS", "-2"},
		{"strip code not a bool", "NBREPORT_STRIP_CODE", "yes please"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := loadEnvConfig(func(k string) string {
				if k == tt.key {
					return tt.val
				}
				return ""
			})
			if len(env.Warnings) != 1 || !strings.Contains(env.Warnings[0], tt.key) {
				t.Errorf("Warnings = %v, want one mentioning %s", env.Warnings, tt.key)
			}
			if env.Workers != 0 || env.StripCode {
				t.Errorf("invalid value should be ignored: %+v", env)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env over config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values override", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Document.Author = "From File"
		applyEnvConfig(&envConfig{
			LogLevel:  "debug",
			OutputDir: "out",
			Workers:   2,
			StripCode: true,
			Pandoc:    "/usr/local/bin/pandoc",
			Author:    "From Env",
		}, cfg)

		if cfg.Log.Level != "debug" || cfg.Output.DefaultDir != "out" || cfg.Output.Workers != 2 {
			t.Errorf("cfg = %+v", cfg)
		}
		if !cfg.Notebook.StripCode || cfg.Document.Pandoc != "/usr/local/bin/pandoc" || cfg.Document.Author != "From Env" {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("unset values keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Notebook.StripCode = true
		cfg.Document.ReferenceDoc = "ref.docx"
		applyEnvConfig(&envConfig{}, cfg)

		if !cfg.Notebook.StripCode || cfg.Document.ReferenceDoc != "ref.docx" || cfg.Document.Pandoc != "pandoc" {
			t.Errorf("cfg = %+v", cfg)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"HOME=/root",
		"NBREPORT_PANDOC=pandoc",
		"NBREPORT_STRIPCODE=1",
		"NBREPORT_CONTAINER=1",
		"NBREPORT_TIMEOUT",
	})

	got := buf.String()
	if !strings.Contains(got, "NBREPORT_STRIPCODE") {
		t.Errorf("expected warning for NBREPORT_STRIPCODE, got %q", got)
	}
	if strings.Count(got, "warning:") != 1 {
		t.Errorf("expected exactly one warning, got %q", got)
	}
}
