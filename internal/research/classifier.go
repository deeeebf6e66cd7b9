package research

import (
	"strings"

	"stablecoin-scout/internal/domain"
)

// Rule order is the contract: pure-news anchors beat adoption keywords beat
// explanation beats comparison. First match wins, no scoring.
var (
	newsAnchors = []string{
		"latest news",
		"breaking news",
		"headlines",
		"news about",
		"recent news",
		"stablecoin news",
	}

	adoptionKeywords = []string{
		"adoption tracker",
		"adoption metrics",
		"adoption data",
		"adoption stats",
		"track adoption",
		"on-chain adoption",
	}

	comparisonPhrases = []string{
		"difference between",
		"comparison",
		"compare",
		"versus",
	}

	// Matched as whole tokens so words like "investors" don't trip them.
	comparisonTokens = map[string]bool{
		"vs":  true,
		"vs.": true,
	}

	temporalKeywords = []string{
		"news", "today", "latest", "recent", "this week", "update",
	}
)

// Classify assigns exactly one intent to a query. It never fails; anything
// that matches no rule is Generic.
func Classify(text string) domain.Intent {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return domain.IntentGeneric
	}

	for _, anchor := range newsAnchors {
		if strings.HasPrefix(lower, anchor) {
			return domain.IntentNews
		}
	}

	for _, kw := range adoptionKeywords {
		if strings.Contains(lower, kw) {
			return domain.IntentAdoption
		}
	}

	if strings.Contains(lower, "explain") {
		if strings.Contains(lower, "stablecoin") || len(ExtractSymbols(text)) > 0 {
			return domain.IntentExplanation
		}
	}

	for _, phrase := range comparisonPhrases {
		if strings.Contains(lower, phrase) {
			return domain.IntentComparison
		}
	}
	for _, tok := range strings.Fields(lower) {
		if comparisonTokens[tok] {
			return domain.IntentComparison
		}
	}

	return domain.IntentGeneric
}

// wantsNews reports whether a generic query carries temporal keywords that
// justify a news lookup alongside the chat call.
func wantsNews(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range temporalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
