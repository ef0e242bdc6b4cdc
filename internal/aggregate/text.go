package aggregate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrNotText is returned for content that is not valid UTF-8.
var ErrNotText = errors.New("invalid UTF-8 content")

// readText reads path as UTF-8 text with universal newlines: "\r\n" and a
// lone "\r" both become "\n".
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: invalid byte at offset %d", ErrNotText, invalidOffset(data))
	}
	return normalizeNewlines(string(data)), nil
}

// readOptionalText is readText that reports a missing file as ok=false
// rather than an error.
func readOptionalText(path string) (text string, ok bool, err error) {
	text, err = readText(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}
