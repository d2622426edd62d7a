// internal/util/util.go

// Package util holds small string and number helpers.
package util

import (
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WriteFile writes data to a file with 0o644 permissions.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimRightFunc(string(runes[:maxRunes]), unicode.IsSpace) + "…"
}

// Snippet collapses whitespace in text and truncates it to maxRunes.
func Snippet(text string, maxRunes int) string {
	return TruncateRunes(strings.Join(strings.Fields(text), " "), maxRunes)
}

// JoinHuman joins items as "a", "a and b" or "a, b and c".
func JoinHuman(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// LowerFirst lowercases the first rune unless the first word is an acronym.
func LowerFirst(text string) string {
	first, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return text
	}
	word := text
	if i := strings.IndexFunc(text, unicode.IsSpace); i > 0 {
		word = text[:i]
	}
	if utf8.RuneCountInString(word) > 1 && strings.ToUpper(word) == word {
		return text
	}
	return string(unicode.ToLower(first)) + text[size:]
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
