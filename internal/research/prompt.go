package research

import (
	"fmt"
	"strings"

	"stablecoin-scout/internal/domain"
)

// BuildExplanationPrompt renders the four-section explanation template for a
// catalog stablecoin. The section order is fixed: the UI renders the reply
// under these headings.
func BuildExplanationPrompt(ref domain.StablecoinRef) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Explain the stablecoin %s (%s) in four sections.\n\n", ref.Name, ref.Symbol)
	sb.WriteString("Overview: what it is, who issues it, and how large it is.\n")
	sb.WriteString("Backing Mechanism: what holds the peg and where reserves sit.\n")
	sb.WriteString("Usecases: where it is actually used (payments, trading, DeFi, remittance).\n")
	sb.WriteString("Risks: depeg history, counterparty and regulatory exposure.\n\n")
	sb.WriteString("Known reference data:\n")
	fmt.Fprintf(&sb, "- Category: %s\n", ref.Category)
	fmt.Fprintf(&sb, "- Issuer: %s\n", ref.Issuer)
	fmt.Fprintf(&sb, "- Backing: %s\n", ref.Backing)
	fmt.Fprintf(&sb, "- Chains: %s\n", strings.Join(ref.Chains, ", "))
	sb.WriteString("\nUse plain text with dash bullets. Do not invent reserve figures.")
	return sb.String()
}

// BuildLegacyExplanationPrompt covers symbols outside the catalog, typically
// sunset or collapsed stablecoins.
func BuildLegacyExplanationPrompt(symbol string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Explain the stablecoin %s in four sections.\n\n", symbol)
	sb.WriteString("Overview: what it is or was, and who issued it.\n")
	sb.WriteString("Backing Mechanism: what held the peg.\n")
	sb.WriteString("Usecases: where it was used.\n")
	sb.WriteString("Risks: depeg history and current status, including any sunset or collapse.\n\n")
	sb.WriteString("Use plain text with dash bullets. Do not invent reserve figures.")
	return sb.String()
}

// BuildGenericPrompt wraps a free-form query, prefixing formatted market data
// when the composer has any.
func BuildGenericPrompt(query, marketContext string) string {
	query = expandSingleWord(query)
	if marketContext == "" {
		return query
	}
	var sb strings.Builder
	sb.WriteString("Current market data:\n")
	sb.WriteString(marketContext)
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(query)
	return sb.String()
}

// expandSingleWord turns a bare token like "usdt" into a question the chat
// model can work with.
func expandSingleWord(query string) string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || strings.ContainsAny(trimmed, " \t") {
		return query
	}
	return fmt.Sprintf("Give a short overview of %s in the context of stablecoins.", trimmed)
}

// FormatMarketContext renders a price snapshot and chart tail as plain text
// for prompt prefixes and response context.
func FormatMarketContext(snap *domain.PriceSnapshot, series []domain.ChartPoint) string {
	var sb strings.Builder

	if snap != nil {
		fmt.Fprintf(&sb, "%s: $%.4f (24h: %+.2f%%, vol: $%.0f)\n",
			snap.Symbol, snap.PriceUSD, snap.Change24hPct, snap.Volume24h)
	}
	if len(series) > 0 {
		first, last := series[0], series[len(series)-1]
		fmt.Fprintf(&sb, "30d range: $%.4f on %s to $%.4f on %s\n",
			first.Price, first.Date.Format("Jan 2"),
			last.Price, last.Date.Format("Jan 2"))
	}
	return sb.String()
}
