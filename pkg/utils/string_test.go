package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeWhitespace(t *testing.T) {
	h := NewStringHelper()

	got := h.NormalizeWhitespace("  a \n\t b   c ")
	if got != "a b c" {
		t.Errorf("NormalizeWhitespace = %q, want %q", got, "a b c")
	}
}

func TestTruncateString(t *testing.T) {
	h := NewStringHelper()

	tests := []struct {
		name  string
		input string
		max   int
		want  int
	}{
		{name: "short", input: "hello", max: 10, want: 5},
		{name: "exact", input: strings.Repeat("a", 10), max: 10, want: 10},
		{name: "long", input: strings.Repeat("a", 50), max: 10, want: 10},
		{name: "multibyte", input: strings.Repeat("é", 50), max: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.TruncateString(tt.input, tt.max)
			if n := utf8.RuneCountInString(got); n != tt.want {
				t.Errorf("TruncateString length = %d, want %d", n, tt.want)
			}
		})
	}

	if got := h.TruncateString(strings.Repeat("a", 20), 10); !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("TruncateString = %q, want ellipsis suffix", got)
	}
}

func TestSplitList(t *testing.T) {
	h := NewStringHelper()

	got := h.SplitList("Alice, Bob ,, Carol", ",")
	if len(got) != 3 || got[0] != "Alice" || got[1] != "Bob" || got[2] != "Carol" {
		t.Errorf("SplitList = %v", got)
	}
}
