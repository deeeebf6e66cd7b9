package domain

import "time"

// Intent is the classified purpose of a research query. It drives which
// providers the composer calls.
type Intent string

const (
	IntentNews        Intent = "news"
	IntentAdoption    Intent = "adoption"
	IntentExplanation Intent = "explanation"
	IntentComparison  Intent = "comparison"
	IntentGeneric     Intent = "generic"
)

// QueryContext carries a single request through the research pipeline.
// It is built per request and discarded with the response.
type QueryContext struct {
	RawText    string
	Intent     Intent
	Symbols    []string
	TimeWindow string
}

// ChartPoint is one entry of a daily price/volume series.
type ChartPoint struct {
	Date   time.Time `json:"date"`
	Price  float64   `json:"price"`
	Volume float64   `json:"volume,omitempty"`
}

// PriceSnapshot is the latest spot price data for a stablecoin.
type PriceSnapshot struct {
	Symbol          string  `json:"symbol"`
	PriceUSD        float64 `json:"price_usd"`
	Volume24h       float64 `json:"volume_24h"`
	Change24hPct    float64 `json:"change_24h_pct"`
	LastUpdatedUnix int64   `json:"last_updated_unix"`
}

// NewsItem is a single news search result, ordered by upstream rank.
type NewsItem struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Snippet   string    `json:"snippet"`
	Date      string    `json:"date,omitempty"`
	Source    string    `json:"source,omitempty"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ChainShare is one chain's slice of a stablecoin's circulating supply.
// Percentage is always derived locally from AmountUSD, never trusted upstream.
type ChainShare struct {
	Chain      string  `json:"chain"`
	Percentage float64 `json:"percentage"`
	AmountUSD  float64 `json:"amount_usd"`
}

// ChainBreakdown is the normalized output of the chain-distribution provider.
type ChainBreakdown struct {
	Symbol           string       `json:"symbol"`
	TotalCirculating float64      `json:"total_circulating"`
	Chains           []ChainShare `json:"chains"`
}

// DepegEvent records an observed deviation beyond 1% from the $1.00 peg.
type DepegEvent struct {
	Timestamp        time.Time `json:"timestamp"`
	DeviationPercent float64   `json:"deviation_percent"`
	Price            float64   `json:"price"`
}

// AdoptionSnapshot is the fully populated adoption view for one stablecoin.
// Every field is guaranteed present: provider data first, then the reference
// fallback table, then deterministic synthetic values.
type AdoptionSnapshot struct {
	Symbol            string       `json:"symbol"`
	CirculatingSupply float64      `json:"circulating_supply"`
	MarketSharePct    float64      `json:"market_share_pct"`
	ChainDistribution []ChainShare `json:"chain_distribution"`
	Volume24h         float64      `json:"volume_24h"`
	DepegEvents       []DepegEvent `json:"depeg_events"`
	Synthetic         bool         `json:"synthetic,omitempty"`
}

// ComparisonRow is one stablecoin's entry in a comparison table. Rows are
// built purely from the reference catalog, never from live providers.
type ComparisonRow struct {
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Backing  string   `json:"backing"`
	Issuer   string   `json:"issuer"`
	Chains   []string `json:"chains"`
	Risk     string   `json:"risk"`
}

// ComposedResponse is the unified result of one research query. Only the
// payload kinds implied by the intent are populated.
type ComposedResponse struct {
	Intent         Intent            `json:"intent"`
	Text           string            `json:"text"`
	Sources        []string          `json:"sources,omitempty"`
	ChartSeries    []ChartPoint      `json:"chart_series,omitempty"`
	NewsItems      []NewsItem        `json:"news_items,omitempty"`
	ComparisonRows []ComparisonRow   `json:"comparison_rows,omitempty"`
	Adoption       *AdoptionSnapshot `json:"adoption,omitempty"`
}

// Lead is a contact captured from the research UI.
type Lead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Interest  string    `json:"interest,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Explanation is a knowledge-base entry for one stablecoin. A hit here lets
// the composer skip the chat provider entirely.
type Explanation struct {
	Symbol    string    `json:"symbol"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}
