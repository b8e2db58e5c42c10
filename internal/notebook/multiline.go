package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MultilineString is nbformat's "string or list of strings" value, joined
// into a single string on decode.
type MultilineString string

// UnmarshalJSON accepts null, a JSON string or an array of strings.
func (s *MultilineString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var parts []string
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("multiline string: %w", err)
		}
		*s = MultilineString(strings.Join(parts, ""))
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("multiline string: %w", err)
	}
	*s = MultilineString(str)
	return nil
}

// String returns the joined text.
func (s MultilineString) String() string { return string(s) }

// MimeBundle maps mimetypes to their raw JSON payload. Text and base64
// payloads are multiline strings; application/json payloads are objects.
type MimeBundle map[string]json.RawMessage

// Has reports whether the bundle contains the mimetype.
func (b MimeBundle) Has(mime string) bool {
	_, ok := b[mime]
	return ok
}

// Text returns the payload for mime as a string. It fails for payloads that
// are not strings or lists of strings.
func (b MimeBundle) Text(mime string) (string, error) {
	raw, ok := b[mime]
	if !ok {
		return "", fmt.Errorf("%w: no %s payload", ErrMalformed, mime)
	}
	var s MultilineString
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s payload: %v", ErrMalformed, mime, err)
	}
	return string(s), nil
}
