package research

import (
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"stablecoin-scout/internal/domain"
)

// totalStablecoinMarketUSD is the reference denominator for market share.
// Precision does not matter here; share figures from the fallback path are
// explicitly indicative.
const totalStablecoinMarketUSD = 250e9

// referenceMetrics is the static fallback table: per-symbol adoption values
// used field-by-field when a provider had no data for that field.
type referenceMetrics struct {
	Supply         float64
	MarketSharePct float64
	Volume24h      float64
	Chains         []domain.ChainShare
}

var fallbackMetrics = map[string]referenceMetrics{
	"USDT": {
		Supply:         118e9,
		MarketSharePct: 47.2,
		Volume24h:      42e9,
		Chains: []domain.ChainShare{
			{Chain: "Tron", Percentage: 50.5, AmountUSD: 59.6e9},
			{Chain: "Ethereum", Percentage: 41.1, AmountUSD: 48.5e9},
			{Chain: "Solana", Percentage: 3.1, AmountUSD: 3.7e9},
		},
	},
	"USDC": {
		Supply:         34e9,
		MarketSharePct: 13.6,
		Volume24h:      6.8e9,
		Chains: []domain.ChainShare{
			{Chain: "Ethereum", Percentage: 62.4, AmountUSD: 21.2e9},
			{Chain: "Solana", Percentage: 13.5, AmountUSD: 4.6e9},
			{Chain: "Base", Percentage: 10.0, AmountUSD: 3.4e9},
		},
	},
	"DAI": {
		Supply:         5.3e9,
		MarketSharePct: 2.1,
		Volume24h:      280e6,
		Chains: []domain.ChainShare{
			{Chain: "Ethereum", Percentage: 91.0, AmountUSD: 4.8e9},
			{Chain: "Polygon", Percentage: 4.2, AmountUSD: 222e6},
			{Chain: "Arbitrum", Percentage: 3.0, AmountUSD: 159e6},
		},
	},
	"PYUSD": {
		Supply:         700e6,
		MarketSharePct: 0.28,
		Volume24h:      25e6,
		Chains: []domain.ChainShare{
			{Chain: "Solana", Percentage: 55.0, AmountUSD: 385e6},
			{Chain: "Ethereum", Percentage: 45.0, AmountUSD: 315e6},
		},
	},
	"FDUSD": {
		Supply:         2.5e9,
		MarketSharePct: 1.0,
		Volume24h:      5.5e9,
		Chains: []domain.ChainShare{
			{Chain: "Ethereum", Percentage: 82.0, AmountUSD: 2.05e9},
			{Chain: "BSC", Percentage: 18.0, AmountUSD: 450e6},
		},
	},
	"TUSD": {
		Supply:         495e6,
		MarketSharePct: 0.2,
		Volume24h:      40e6,
		Chains: []domain.ChainShare{
			{Chain: "Tron", Percentage: 58.0, AmountUSD: 287e6},
			{Chain: "Ethereum", Percentage: 40.0, AmountUSD: 198e6},
		},
	},
	"USDE": {
		Supply:         3.6e9,
		MarketSharePct: 1.4,
		Volume24h:      90e6,
		Chains: []domain.ChainShare{
			{Chain: "Ethereum", Percentage: 100.0, AmountUSD: 3.6e9},
		},
	},
	"FRAX": {
		Supply:         650e6,
		MarketSharePct: 0.26,
		Volume24h:      12e6,
		Chains: []domain.ChainShare{
			{Chain: "Ethereum", Percentage: 88.0, AmountUSD: 572e6},
			{Chain: "Fraxtal", Percentage: 8.0, AmountUSD: 52e6},
		},
	},
	"USDP": {
		Supply:         370e6,
		MarketSharePct: 0.15,
		Volume24h:      2.5e6,
		Chains: []domain.ChainShare{
			{Chain: "Ethereum", Percentage: 100.0, AmountUSD: 370e6},
		},
	},
	"GUSD": {
		Supply:         55e6,
		MarketSharePct: 0.02,
		Volume24h:      1.2e6,
		Chains: []domain.ChainShare{
			{Chain: "Ethereum", Percentage: 100.0, AmountUSD: 55e6},
		},
	},
}

var syntheticChains = []string{"Ethereum", "Tron", "BSC", "Solana", "Polygon", "Arbitrum"}

// symbolSeed derives a stable seed from the symbol so synthetic values are
// reproducible per symbol and distinct across symbols.
func symbolSeed(symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToUpper(symbol)))
	return int64(h.Sum64())
}

// syntheticSnapshot fabricates a plausible adoption snapshot for a symbol with
// no provider data and no reference entry. The values are invented; the UI
// prefers showing indicative numbers over a hard error for adoption queries,
// and the Synthetic flag marks them. A "USD" ticker draws a supply in the
// $50M-$2B band, anything else lands lower.
func syntheticSnapshot(symbol string) domain.AdoptionSnapshot {
	rng := rand.New(rand.NewSource(symbolSeed(symbol)))

	var supply float64
	if strings.Contains(strings.ToUpper(symbol), "USD") {
		supply = 50e6 + rng.Float64()*(2e9-50e6)
	} else {
		supply = 5e6 + rng.Float64()*495e6
	}

	nChains := 2 + rng.Intn(3)
	picked := rng.Perm(len(syntheticChains))[:nChains]

	weights := make([]float64, nChains)
	sum := 0.0
	for i := range weights {
		weights[i] = 0.2 + rng.Float64()
		sum += weights[i]
	}

	chains := make([]domain.ChainShare, 0, nChains)
	for i, idx := range picked {
		pct := weights[i] / sum * 100
		chains = append(chains, domain.ChainShare{
			Chain:      syntheticChains[idx],
			Percentage: pct,
			AmountUSD:  supply * pct / 100,
		})
	}

	depegs := []domain.DepegEvent{}
	for i, n := 0, rng.Intn(3); i < n; i++ {
		deviation := 1.0 + rng.Float64()*2.0
		price := 1.0 - deviation/100
		depegs = append(depegs, domain.DepegEvent{
			Timestamp:        time.Date(2024, time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC),
			DeviationPercent: deviation,
			Price:            price,
		})
	}

	return domain.AdoptionSnapshot{
		Symbol:            symbol,
		CirculatingSupply: supply,
		MarketSharePct:    supply / totalStablecoinMarketUSD * 100,
		ChainDistribution: chains,
		Volume24h:         supply * (0.02 + rng.Float64()*0.13),
		DepegEvents:       depegs,
		Synthetic:         true,
	}
}

// depegEventsFromSeries scans a price series for deviations beyond 1% from
// the $1.00 peg.
func depegEventsFromSeries(series []domain.ChartPoint) []domain.DepegEvent {
	var events []domain.DepegEvent
	for _, pt := range series {
		deviation := (pt.Price - 1.0) * 100
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation > 1.0 {
			events = append(events, domain.DepegEvent{
				Timestamp:        pt.Date,
				DeviationPercent: deviation,
				Price:            pt.Price,
			})
		}
	}
	return events
}
