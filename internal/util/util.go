// internal/util/util.go
package util

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// WriteFile writes data to a file with 0o644 permissions, creating parent
// directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if maxRunes < 0 {
		maxRunes = 0
	}
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// SingleLine collapses every run of whitespace, newlines included, into one space.
func SingleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// GroupDigits renders n with comma thousands separators.
func GroupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}
