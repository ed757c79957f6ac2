// Package utils holds small text helpers shared by the migration tools.
package utils

import "strings"

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// StringHelper provides string utility functions.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// NormalizeWhitespace replaces runs of whitespace with a single space and trims the ends.
func (s *StringHelper) NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// TruncateString clamps str to maxLength runes. Longer strings are cut so that
// the result, ellipsis included, is exactly maxLength runes.
func (s *StringHelper) TruncateString(str string, maxLength int) string {
	runes := []rune(str)
	if len(runes) <= maxLength {
		return str
	}

	keep := maxLength - len(Ellipsis)
	if keep < 0 {
		keep = 0
	}

	return string(runes[:keep]) + Ellipsis
}

// SplitList splits s on sep, trims each part and drops empty ones.
func (s *StringHelper) SplitList(str, sep string) []string {
	var out []string

	for part := range strings.SplitSeq(str, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}

	return out
}
