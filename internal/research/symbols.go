package research

import (
	"sort"
	"strings"

	"stablecoin-scout/internal/domain"
)

// aliasesByLength holds alias keys sorted longest first so that multi-word
// aliases ("paypal usd") consume their span before any shorter fragment can
// match inside it. Built once at init; the alias table is immutable.
var aliasesByLength []string

func init() {
	aliasesByLength = make([]string, 0, len(domain.Aliases))
	for alias := range domain.Aliases {
		aliasesByLength = append(aliasesByLength, alias)
	}
	sort.Slice(aliasesByLength, func(i, j int) bool {
		if len(aliasesByLength[i]) != len(aliasesByLength[j]) {
			return len(aliasesByLength[i]) > len(aliasesByLength[j])
		}
		return aliasesByLength[i] < aliasesByLength[j]
	})
}

type span struct {
	start, end int
}

// ExtractSymbols scans text for known stablecoin names and tickers and
// returns canonical symbols ordered by where they first appear, deduplicated.
// Matching is exact case-insensitive substring on word boundaries; no
// stemming, no fuzzy matching. Missing a mention is acceptable, a false
// positive is not.
func ExtractSymbols(text string) []string {
	lower := strings.ToLower(text)
	if lower == "" {
		return nil
	}

	firstPos := make(map[string]int)
	var consumed []span

	for _, alias := range aliasesByLength {
		idx := findBounded(lower, alias, consumed)
		if idx < 0 {
			continue
		}
		consumed = append(consumed, span{start: idx, end: idx + len(alias)})
		symbol := domain.Aliases[alias]
		if pos, ok := firstPos[symbol]; !ok || idx < pos {
			firstPos[symbol] = idx
		}
	}

	symbols := make([]string, 0, len(firstPos))
	for sym := range firstPos {
		symbols = append(symbols, sym)
	}
	sort.Slice(symbols, func(i, j int) bool {
		return firstPos[symbols[i]] < firstPos[symbols[j]]
	})
	return symbols
}

// findBounded locates alias as a word-bounded substring of lower, skipping
// spans already claimed by a longer alias. Returns -1 when absent.
func findBounded(lower, alias string, consumed []span) int {
	from := 0
	for {
		rel := strings.Index(lower[from:], alias)
		if rel < 0 {
			return -1
		}
		idx := from + rel
		end := idx + len(alias)
		if boundaryAt(lower, idx, end) && !overlaps(consumed, idx, end) {
			return idx
		}
		from = idx + 1
	}
}

func boundaryAt(s string, start, end int) bool {
	if start > 0 && isWordChar(s[start-1]) {
		return false
	}
	if end < len(s) && isWordChar(s[end]) {
		return false
	}
	return true
}

func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

func overlaps(consumed []span, start, end int) bool {
	for _, c := range consumed {
		if start < c.end && end > c.start {
			return true
		}
	}
	return false
}
