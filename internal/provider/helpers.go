package provider

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// asFloat coerces the loosely typed numbers upstream APIs return. Registry
// payloads mix float64, integers, and quoted numerics in the same field.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// sanitizeText collapses whitespace and truncates to at most maxLen bytes,
// backing off to a rune boundary so multi-byte characters are never split.
func sanitizeText(in string, maxLen int) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return ""
	}
	in = strings.Join(strings.Fields(in), " ")
	if maxLen > 0 && len(in) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(in[cut]) {
			cut--
		}
		in = in[:cut]
	}
	return in
}
