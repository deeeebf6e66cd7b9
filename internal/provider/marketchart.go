package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"time"

	"stablecoin-scout/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	coingeckoBaseURL = "https://api.coingecko.com/api/v3"
	chartWindowDays  = 30
)

// MarketChartProvider fetches price and volume history from the CoinGecko
// free API. The symbol→provider-id mapping is static; a symbol without a
// mapping yields an empty payload, never guessed data.
type MarketChartProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewMarketChartProvider creates a provider rate limited to 8 requests per
// minute, matching the free CoinGecko tier.
func NewMarketChartProvider(tracer trace.Tracer) *MarketChartProvider {
	return &MarketChartProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: coingeckoBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(8, 7500*time.Millisecond),
	}
}

// NewMarketChartProviderWithBase is used by tests to point at a stub server.
func NewMarketChartProviderWithBase(tracer trace.Tracer, baseURL string) *MarketChartProvider {
	p := NewMarketChartProvider(tracer)
	p.baseURL = baseURL
	p.limiter = NewRateLimiter(1000, time.Millisecond)
	return p
}

// FetchSeries returns the trailing 30-day daily price/volume series for a
// symbol, oldest first.
func (p *MarketChartProvider) FetchSeries(ctx context.Context, symbol string) Result[[]domain.ChartPoint] {
	ctx, span := p.tracer.Start(ctx, "marketchart.fetch-series")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	cgID, ok := domain.CoinGeckoID[symbol]
	if !ok {
		return Fail[[]domain.ChartPoint](ErrEmptyPayload)
	}

	url := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=usd&days=%d&interval=daily",
		p.baseURL, cgID, chartWindowDays)

	body, kind := p.doRequest(ctx, url)
	if kind != "" {
		return Fail[[]domain.ChartPoint](kind)
	}

	var raw struct {
		Prices       [][]float64 `json:"prices"`
		TotalVolumes [][]float64 `json:"total_volumes"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		log.Printf("marketchart parse error for %s: %v", symbol, err)
		return Fail[[]domain.ChartPoint](ErrParse)
	}
	// Drop malformed rows before sorting; an empty row in the comparator
	// would index out of range.
	rows := make([][]float64, 0, len(raw.Prices))
	for _, pt := range raw.Prices {
		if len(pt) >= 2 {
			rows = append(rows, pt)
		}
	}
	if len(rows) == 0 {
		return Fail[[]domain.ChartPoint](ErrEmptyPayload)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })

	points := make([]domain.ChartPoint, 0, len(rows))
	for _, pt := range rows {
		tsMs := int64(pt[0])
		points = append(points, domain.ChartPoint{
			Date:   time.UnixMilli(tsMs).UTC(),
			Price:  pt[1],
			Volume: nearestVolume(raw.TotalVolumes, tsMs),
		})
	}
	return Ok(points)
}

// FetchPrice returns the current spot snapshot for a symbol.
func (p *MarketChartProvider) FetchPrice(ctx context.Context, symbol string) Result[domain.PriceSnapshot] {
	ctx, span := p.tracer.Start(ctx, "marketchart.fetch-price")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	cgID, ok := domain.CoinGeckoID[symbol]
	if !ok {
		return Fail[domain.PriceSnapshot](ErrEmptyPayload)
	}

	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_vol=true&include_24hr_change=true",
		p.baseURL, cgID)

	body, kind := p.doRequest(ctx, url)
	if kind != "" {
		return Fail[domain.PriceSnapshot](kind)
	}

	var raw map[string]map[string]float64
	if err := json.Unmarshal(body, &raw); err != nil {
		return Fail[domain.PriceSnapshot](ErrParse)
	}
	data, ok := raw[cgID]
	if !ok || len(data) == 0 {
		return Fail[domain.PriceSnapshot](ErrEmptyPayload)
	}

	return Ok(domain.PriceSnapshot{
		Symbol:          symbol,
		PriceUSD:        data["usd"],
		Volume24h:       data["usd_24h_vol"],
		Change24hPct:    data["usd_24h_change"],
		LastUpdatedUnix: time.Now().Unix(),
	})
}

func (p *MarketChartProvider) doRequest(ctx context.Context, url string) ([]byte, ErrorKind) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, ErrRateLimited
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, ErrNetwork
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("marketchart request failed: %v", err)
		return nil, ErrNetwork
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		log.Printf("marketchart rate limited by upstream")
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("marketchart upstream error %d: %s", resp.StatusCode, sanitizeText(string(body), 200))
		return nil, ErrNetwork
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrNetwork
	}
	return body, ""
}

// nearestVolume picks the volume sample closest to the given timestamp.
// CoinGecko's price and volume arrays are not guaranteed to align.
func nearestVolume(volumes [][]float64, targetMs int64) float64 {
	best := 0.0
	bestDiff := int64(-1)
	for _, v := range volumes {
		if len(v) < 2 {
			continue
		}
		diff := int64(v[0]) - targetMs
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			bestDiff = diff
			best = v[1]
		}
	}
	return best
}
