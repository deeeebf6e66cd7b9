package provider

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAsFloatCoercesMixedShapes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want float64
	}{
		{1.5, 1.5},
		{int(7), 7},
		{int64(12), 12},
		{"  3.25 ", 3.25},
		{"not-a-number", 0},
		{"", 0},
		{nil, 0},
	}
	for _, c := range cases {
		if got := asFloat(c.in); got != c.want {
			t.Fatalf("asFloat(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSanitizeTextCollapsesWhitespace(t *testing.T) {
	t.Parallel()

	got := sanitizeText("  USDC\n\tholds   its peg  ", 0)
	if got != "USDC holds its peg" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestSanitizeTextTruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	// "é" is two bytes; a cut at 2 bytes would land mid-rune.
	in := "dépeg" + strings.Repeat(" article", 10)
	got := sanitizeText(in, 2)
	if got != "d" {
		t.Fatalf("expected cut back to rune boundary, got %q", got)
	}

	got = sanitizeText("платёжный стейблкоин", 7)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
}
