package provider

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"stablecoin-scout/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const llamaBaseURL = "https://stablecoins.llama.fi"

// ChainDistributionProvider fetches the aggregate stablecoin registry and
// filters client-side for one symbol. The upstream breakdown field arrives in
// three shapes depending on the asset: a per-chain array, a map keyed by chain
// name, or a bare aggregate with no breakdown. All three normalize into
// domain.ChainBreakdown once, at the boundary.
type ChainDistributionProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewChainDistributionProvider(tracer trace.Tracer) *ChainDistributionProvider {
	return &ChainDistributionProvider{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: llamaBaseURL,
		tracer:  tracer,
	}
}

// NewChainDistributionProviderWithBase is used by tests to point at a stub server.
func NewChainDistributionProviderWithBase(tracer trace.Tracer, baseURL string) *ChainDistributionProvider {
	p := NewChainDistributionProvider(tracer)
	p.baseURL = strings.TrimRight(baseURL, "/")
	return p
}

type registryAsset struct {
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	Circulating json.RawMessage `json:"circulating"`
	ChainData   json.RawMessage `json:"chainCirculating"`
}

// FetchDistribution returns the total circulating amount and per-chain
// breakdown for one symbol. Chains with zero amount are dropped; percentages
// are derived here and never trusted from upstream.
func (p *ChainDistributionProvider) FetchDistribution(ctx context.Context, symbol string) Result[domain.ChainBreakdown] {
	ctx, span := p.tracer.Start(ctx, "chaindist.fetch-distribution")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/stablecoins?includePrices=false", nil)
	if err != nil {
		return Fail[domain.ChainBreakdown](ErrNetwork)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("chaindist request failed: %v", err)
		return Fail[domain.ChainBreakdown](ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return Fail[domain.ChainBreakdown](ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("chaindist upstream error %d: %s", resp.StatusCode, sanitizeText(string(body), 200))
		return Fail[domain.ChainBreakdown](ErrNetwork)
	}

	var payload struct {
		PeggedAssets []registryAsset `json:"peggedAssets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("chaindist parse error: %v", err)
		return Fail[domain.ChainBreakdown](ErrParse)
	}

	for _, asset := range payload.PeggedAssets {
		if !strings.EqualFold(asset.Symbol, symbol) {
			continue
		}
		breakdown := normalizeAsset(symbol, asset)
		if breakdown.TotalCirculating <= 0 {
			return Fail[domain.ChainBreakdown](ErrEmptyPayload)
		}
		return Ok(breakdown)
	}
	return Fail[domain.ChainBreakdown](ErrEmptyPayload)
}

// chainAmount is the intermediate form every upstream shape resolves into.
type chainAmount struct {
	Chain  string
	Amount float64
}

func normalizeAsset(symbol string, asset registryAsset) domain.ChainBreakdown {
	total := numericValue(asset.Circulating)
	amounts := normalizeChainData(asset.ChainData)

	sum := 0.0
	for _, a := range amounts {
		sum += a.Amount
	}
	// The percentage denominator must cover every listed amount, otherwise
	// shares could sum past 100.
	denom := total
	if sum > denom {
		denom = sum
	}
	if total <= 0 {
		total = sum
	}

	sort.Slice(amounts, func(i, j int) bool { return amounts[i].Amount > amounts[j].Amount })

	chains := make([]domain.ChainShare, 0, len(amounts))
	for _, a := range amounts {
		if a.Amount <= 0 {
			continue
		}
		pct := 0.0
		if denom > 0 {
			pct = a.Amount / denom * 100
		}
		chains = append(chains, domain.ChainShare{
			Chain:      a.Chain,
			Percentage: pct,
			AmountUSD:  a.Amount,
		})
	}

	return domain.ChainBreakdown{
		Symbol:           symbol,
		TotalCirculating: total,
		Chains:           chains,
	}
}

// normalizeChainData resolves the three upstream breakdown shapes:
//   - array of per-chain objects: [{"chain":"Ethereum","amount":1.2e9}, ...]
//   - map keyed by chain name: {"Ethereum": {...}, "Tron": {...}}
//   - aggregate only: absent, null, or a bare number
func normalizeChainData(raw json.RawMessage) []chainAmount {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var arr []struct {
		Chain  string          `json:"chain"`
		Amount json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(raw, &arr); err == nil {
		out := make([]chainAmount, 0, len(arr))
		for _, e := range arr {
			if e.Chain == "" {
				continue
			}
			out = append(out, chainAmount{Chain: e.Chain, Amount: numericValue(e.Amount)})
		}
		return out
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err == nil {
		out := make([]chainAmount, 0, len(m))
		for chain, v := range m {
			out = append(out, chainAmount{Chain: chain, Amount: numericValue(v)})
		}
		return out
	}

	// Aggregate-only: a bare number means total with no breakdown.
	return nil
}

// numericValue digs a circulating amount out of whatever upstream sent:
// a bare number, a quoted number, or a nested object such as
// {"current": {"peggedUSD": 1.2e9}}.
func numericValue(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	return digNumber(v, 0)
}

func digNumber(v any, depth int) float64 {
	if depth > 3 {
		return 0
	}
	switch n := v.(type) {
	case map[string]any:
		// Prefer well-known keys before falling back to any numeric leaf.
		for _, key := range []string{"peggedUSD", "current", "amount", "total"} {
			if inner, ok := n[key]; ok {
				if f := digNumber(inner, depth+1); f != 0 {
					return f
				}
			}
		}
		for _, inner := range n {
			if f := digNumber(inner, depth+1); f != 0 {
				return f
			}
		}
		return 0
	default:
		return asFloat(v)
	}
}
