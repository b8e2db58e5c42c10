// Package dateutil resolves the "auto" date values accepted for document
// metadata.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an unusable "auto:FORMAT" value.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxFormatLength bounds a user-supplied format.
const MaxFormatLength = 50

// DefaultFormat is used by a bare "auto".
const DefaultFormat = "YYYY-MM-DD"

const autoKeyword = "auto"

// tokens are tried in order, so longer tokens come first.
var tokens = [...][2]string{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named formats usable as "auto:<name>", case-insensitive.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// Layout turns a token format (YYYY, YY, MMMM, MMM, MM, M, DD, D) into a
// time.Format layout. Text inside [brackets] is copied literally, as is any
// character that starts no token.
func Layout(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: empty format", ErrInvalidDateFormat)
	case len(format) > MaxFormatLength:
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	var b strings.Builder
	rest := format
	for rest != "" {
		if literal, ok := strings.CutPrefix(rest, "["); ok {
			text, after, closed := strings.Cut(literal, "]")
			if !closed {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			b.WriteString(text)
			rest = after
			continue
		}
		rest = writeToken(&b, rest)
	}
	return b.String(), nil
}

// writeToken writes the layout for the token at the start of s, or its
// first byte, and returns the unconsumed remainder.
func writeToken(b *strings.Builder, s string) string {
	for _, tok := range tokens {
		if after, ok := strings.CutPrefix(s, tok[0]); ok {
			b.WriteString(tok[1])
			return after
		}
	}
	b.WriteByte(s[0])
	return s[1:]
}

// Resolve expands "auto" (today as YYYY-MM-DD), "auto:FORMAT" and
// "auto:<preset>" against now. Any other value is returned unchanged.
func Resolve(value string, now time.Time) (string, error) {
	if len(value) < len(autoKeyword) || !strings.EqualFold(value[:len(autoKeyword)], autoKeyword) {
		return value, nil
	}

	format := DefaultFormat
	if rest := value[len(autoKeyword):]; rest != "" {
		custom, ok := strings.CutPrefix(rest, ":")
		if !ok {
			return "", fmt.Errorf("%w: %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
		}
		if custom == "" {
			return "", fmt.Errorf("%w: nothing after \"auto:\"", ErrInvalidDateFormat)
		}
		format = custom
		if preset, ok := Presets[strings.ToLower(custom)]; ok {
			format = preset
		}
	}

	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}
