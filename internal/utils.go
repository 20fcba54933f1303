package internal

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// NormalizeString normalizes a string for comparison.
func NormalizeString(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// TitleDistance returns a normalized edit distance between two titles in
// [0, 1]. 0 means identical after normalization; lower is more similar.
func TitleDistance(a, b string) float64 {
	a = NormalizeString(a)
	b = NormalizeString(b)
	if a == b {
		return 0
	}
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(maxLen)
}
