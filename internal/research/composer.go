package research

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"stablecoin-scout/internal/domain"
	"stablecoin-scout/internal/provider"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Source labels attached to composed responses, in the order data was used.
const (
	sourceCatalog   = "Reference Catalog"
	sourceKnowledge = "Knowledge Base"
	sourceChat      = "AI Analysis"
	sourceMarket    = "CoinGecko"
	sourceRegistry  = "Stablecoin Registry"
	sourceNews      = "News Search"
	sourceFallback  = "Reference Estimates"
)

// ChatCaller is the chat-completion provider surface the composer needs.
type ChatCaller interface {
	Complete(ctx context.Context, prompt string) provider.Result[string]
}

// NewsSearcher is the news-search provider surface.
type NewsSearcher interface {
	Search(ctx context.Context, query, timeWindow string, limit int) provider.Result[[]domain.NewsItem]
}

// MarketData serves chart, price and chain-distribution data, typically
// through the caching market service.
type MarketData interface {
	ChartSeries(ctx context.Context, symbol string) ([]domain.ChartPoint, error)
	PriceSnapshot(ctx context.Context, symbol string) (*domain.PriceSnapshot, error)
	Distribution(ctx context.Context, symbol string) (*domain.ChainBreakdown, error)
}

// KnowledgeStore looks up stored explanations. May be nil when the database
// is not configured.
type KnowledgeStore interface {
	GetExplanation(ctx context.Context, symbol string) (*domain.Explanation, error)
}

// Composer orchestrates provider calls per intent and merges their outputs
// into one response. Adapter failures are recovered here through the fallback
// tables; they never propagate. The only error a Compose call can return is a
// chat failure on an intent that has nothing cached to serve instead.
type Composer struct {
	tracer    trace.Tracer
	chat      ChatCaller
	market    MarketData
	news      NewsSearcher
	knowledge KnowledgeStore
	now       func() time.Time
}

func NewComposer(
	tracer trace.Tracer,
	chat ChatCaller,
	market MarketData,
	news NewsSearcher,
	knowledge KnowledgeStore,
) *Composer {
	return &Composer{
		tracer:    tracer,
		chat:      chat,
		market:    market,
		news:      news,
		knowledge: knowledge,
		now:       time.Now,
	}
}

// Compose builds the response for an already classified query context.
func (c *Composer) Compose(ctx context.Context, qc domain.QueryContext) (*domain.ComposedResponse, error) {
	ctx, span := c.tracer.Start(ctx, "composer.compose")
	defer span.End()
	span.SetAttributes(
		attribute.String("intent", string(qc.Intent)),
		attribute.StringSlice("symbols", qc.Symbols),
	)

	switch qc.Intent {
	case domain.IntentNews:
		return c.composeNews(ctx, qc), nil
	case domain.IntentAdoption:
		return c.composeAdoption(ctx, qc.Symbols[0]), nil
	case domain.IntentExplanation:
		return c.composeExplanation(ctx, qc)
	case domain.IntentComparison:
		return c.composeComparison(ctx, qc.Symbols), nil
	default:
		return c.composeGeneric(ctx, qc)
	}
}

// composeNews makes exactly one news-search call. An empty result stays
// empty: no fallback text is synthesized for pure-news queries, the UI shows
// its own "no results" state.
func (c *Composer) composeNews(ctx context.Context, qc domain.QueryContext) *domain.ComposedResponse {
	ctx, span := c.tracer.Start(ctx, "composer.news")
	defer span.End()

	query, window := newsVariant(qc.RawText, c.now())
	res := c.news.Search(ctx, query, window, provider.MaxNewsItems)

	resp := &domain.ComposedResponse{Intent: domain.IntentNews, Text: ""}
	if !res.OK {
		log.Printf("news search returned no data (%s) for %q", res.ErrKind, query)
		resp.NewsItems = []domain.NewsItem{}
		return resp
	}
	resp.NewsItems = res.Data
	resp.Sources = []string{sourceNews}
	return resp
}

// composeAdoption fetches the chain distribution and price history
// concurrently, then fills the snapshot field by field: provider data first,
// the reference table second, synthetic values last. It never fails.
func (c *Composer) composeAdoption(ctx context.Context, symbol string) *domain.ComposedResponse {
	ctx, span := c.tracer.Start(ctx, "composer.adoption")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	var (
		wg     sync.WaitGroup
		dist   *domain.ChainBreakdown
		series []domain.ChartPoint
		snap   *domain.PriceSnapshot
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		d, err := c.market.Distribution(ctx, symbol)
		if err != nil {
			log.Printf("adoption: no distribution for %s: %v", symbol, err)
			return
		}
		dist = d
	}()
	go func() {
		defer wg.Done()
		s, err := c.market.ChartSeries(ctx, symbol)
		if err != nil {
			log.Printf("adoption: no chart series for %s: %v", symbol, err)
		} else {
			series = s
		}
		p, err := c.market.PriceSnapshot(ctx, symbol)
		if err == nil {
			snap = p
		}
	}()
	wg.Wait()

	snapshot, sources := buildAdoptionSnapshot(symbol, dist, series, snap)

	return &domain.ComposedResponse{
		Intent:   domain.IntentAdoption,
		Text:     adoptionSummary(snapshot),
		Sources:  sources,
		Adoption: &snapshot,
	}
}

// buildAdoptionSnapshot merges live data, the reference table, and synthetic
// values into a fully populated snapshot. Every field is present on return.
func buildAdoptionSnapshot(
	symbol string,
	dist *domain.ChainBreakdown,
	series []domain.ChartPoint,
	snap *domain.PriceSnapshot,
) (domain.AdoptionSnapshot, []string) {
	ref, hasRef := fallbackMetrics[symbol]
	synth := syntheticSnapshot(symbol)

	out := domain.AdoptionSnapshot{Symbol: symbol}
	var sources []string
	addSource := func(s string) {
		for _, have := range sources {
			if have == s {
				return
			}
		}
		sources = append(sources, s)
	}

	switch {
	case dist != nil && dist.TotalCirculating > 0:
		out.CirculatingSupply = dist.TotalCirculating
		addSource(sourceRegistry)
	case hasRef:
		out.CirculatingSupply = ref.Supply
		addSource(sourceFallback)
	default:
		out.CirculatingSupply = synth.CirculatingSupply
		out.Synthetic = true
	}

	switch {
	case dist != nil && dist.TotalCirculating > 0:
		out.MarketSharePct = dist.TotalCirculating / totalStablecoinMarketUSD * 100
	case hasRef:
		out.MarketSharePct = ref.MarketSharePct
	default:
		out.MarketSharePct = synth.MarketSharePct
		out.Synthetic = true
	}

	switch {
	case dist != nil && len(dist.Chains) > 0:
		out.ChainDistribution = dist.Chains
		addSource(sourceRegistry)
	case hasRef:
		out.ChainDistribution = ref.Chains
		addSource(sourceFallback)
	default:
		out.ChainDistribution = synth.ChainDistribution
		out.Synthetic = true
	}

	switch {
	case snap != nil && snap.Volume24h > 0:
		out.Volume24h = snap.Volume24h
		addSource(sourceMarket)
	case hasRef:
		out.Volume24h = ref.Volume24h
		addSource(sourceFallback)
	default:
		out.Volume24h = synth.Volume24h
		out.Synthetic = true
	}

	if len(series) > 0 {
		out.DepegEvents = depegEventsFromSeries(series)
		if out.DepegEvents == nil {
			out.DepegEvents = []domain.DepegEvent{}
		}
		addSource(sourceMarket)
	} else if hasRef {
		out.DepegEvents = []domain.DepegEvent{}
	} else {
		out.DepegEvents = synth.DepegEvents
		out.Synthetic = true
	}

	return out, sources
}

func adoptionSummary(s domain.AdoptionSnapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s adoption snapshot\n", s.Symbol)
	fmt.Fprintf(&sb, "- Circulating supply: $%.0f\n", s.CirculatingSupply)
	fmt.Fprintf(&sb, "- Market share: %.2f%%\n", s.MarketSharePct)
	if len(s.ChainDistribution) > 0 {
		top := s.ChainDistribution[0]
		fmt.Fprintf(&sb, "- Largest chain: %s (%.1f%%)\n", top.Chain, top.Percentage)
	}
	fmt.Fprintf(&sb, "- 24h volume: $%.0f\n", s.Volume24h)
	fmt.Fprintf(&sb, "- Depeg events (30d window): %d\n", len(s.DepegEvents))
	if s.Synthetic {
		sb.WriteString("- Figures are indicative estimates\n")
	}
	return sb.String()
}

var reURL = regexp.MustCompile(`https?://\S+`)

// composeExplanation serves a stored or static explanation when one exists,
// skipping the chat provider entirely. Only a cache miss reaches the chat
// call, and only a chat failure on that path errors out.
func (c *Composer) composeExplanation(ctx context.Context, qc domain.QueryContext) (*domain.ComposedResponse, error) {
	ctx, span := c.tracer.Start(ctx, "composer.explanation")
	defer span.End()

	symbol := qc.Symbols[0]
	span.SetAttributes(attribute.String("symbol", symbol))

	if cached := c.lookupExplanation(ctx, symbol); cached != "" {
		ref, hasRef := fallbackMetrics[symbol]
		resp := &domain.ComposedResponse{
			Intent:  domain.IntentExplanation,
			Text:    strings.TrimSpace(reURL.ReplaceAllString(cached, "")),
			Sources: []string{sourceKnowledge},
		}
		if hasRef {
			snapshot := domain.AdoptionSnapshot{
				Symbol:            symbol,
				CirculatingSupply: ref.Supply,
				MarketSharePct:    ref.MarketSharePct,
				ChainDistribution: ref.Chains,
				Volume24h:         ref.Volume24h,
				DepegEvents:       []domain.DepegEvent{},
			}
			resp.Adoption = &snapshot
		}
		return resp, nil
	}

	prompt := ""
	if ref, ok := domain.LookupStablecoin(symbol); ok {
		prompt = BuildExplanationPrompt(ref)
	} else {
		prompt = BuildLegacyExplanationPrompt(symbol)
	}
	chatRes := c.chat.Complete(ctx, prompt)
	if !chatRes.OK {
		span.SetAttributes(attribute.String("chat.error", string(chatRes.ErrKind)))
		return nil, fmt.Errorf("explanation for %s unavailable: chat provider failed (%s)", symbol, chatRes.ErrKind)
	}

	resp := &domain.ComposedResponse{
		Intent:  domain.IntentExplanation,
		Text:    chatRes.Data,
		Sources: []string{sourceChat},
	}

	if series, err := c.market.ChartSeries(ctx, symbol); err == nil && len(series) > 0 {
		resp.ChartSeries = series
		resp.Sources = append(resp.Sources, sourceMarket)
	}
	return resp, nil
}

// lookupExplanation checks the knowledge base first, then the static table.
func (c *Composer) lookupExplanation(ctx context.Context, symbol string) string {
	if c.knowledge != nil {
		rec, err := c.knowledge.GetExplanation(ctx, symbol)
		if err != nil {
			log.Printf("knowledge lookup failed for %s: %v", symbol, err)
		} else if rec != nil && strings.TrimSpace(rec.Text) != "" {
			return rec.Text
		}
	}
	return staticExplanations[symbol]
}

// composeComparison is a pure function of the reference catalog: one row per
// symbol, input order preserved, no provider calls at all.
func (c *Composer) composeComparison(ctx context.Context, symbols []string) *domain.ComposedResponse {
	_, span := c.tracer.Start(ctx, "composer.comparison")
	defer span.End()

	rows := make([]domain.ComparisonRow, 0, len(symbols))
	for _, sym := range symbols {
		if row, ok := comparisonRowFor(sym); ok {
			rows = append(rows, row)
		}
	}

	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Symbol)
	}

	return &domain.ComposedResponse{
		Intent:         domain.IntentComparison,
		Text:           fmt.Sprintf("Comparing %s across category, backing, issuer, chains and risk.", strings.Join(names, " vs ")),
		Sources:        []string{sourceCatalog},
		ComparisonRows: rows,
	}
}

// composeGeneric always calls the chat provider, with market data prefixed
// when exactly one symbol was mentioned and news attached when the query
// sounds temporal. A chat failure here is the one unrecoverable path.
func (c *Composer) composeGeneric(ctx context.Context, qc domain.QueryContext) (*domain.ComposedResponse, error) {
	ctx, span := c.tracer.Start(ctx, "composer.generic")
	defer span.End()

	resp := &domain.ComposedResponse{Intent: domain.IntentGeneric}

	marketContext := ""
	if len(qc.Symbols) == 1 {
		symbol := qc.Symbols[0]
		snap, snapErr := c.market.PriceSnapshot(ctx, symbol)
		series, seriesErr := c.market.ChartSeries(ctx, symbol)
		if snapErr != nil && seriesErr != nil {
			log.Printf("generic: no market data for %s", symbol)
		}
		if seriesErr == nil {
			resp.ChartSeries = series
		}
		marketContext = FormatMarketContext(snap, series)
		if marketContext != "" {
			resp.Sources = append(resp.Sources, sourceMarket)
		}
	}

	if wantsNews(qc.RawText) {
		query, window := newsVariant(qc.RawText, c.now())
		if res := c.news.Search(ctx, query, window, provider.MaxNewsItems); res.OK {
			resp.NewsItems = res.Data
			resp.Sources = append(resp.Sources, sourceNews)
		}
	}

	chatRes := c.chat.Complete(ctx, BuildGenericPrompt(qc.RawText, marketContext))
	if !chatRes.OK {
		span.SetAttributes(attribute.String("chat.error", string(chatRes.ErrKind)))
		return nil, fmt.Errorf("research unavailable: chat provider failed (%s)", chatRes.ErrKind)
	}
	resp.Text = chatRes.Data
	resp.Sources = append(resp.Sources, sourceChat)
	return resp, nil
}

var newsWindows = []string{"qdr:d", "qdr:w", "qdr:m"}

var newsPhrasings = []string{
	"%s",
	"%s stablecoin",
	"%s stablecoin market",
}

// newsVariant rotates the query phrasing and time window so repeated
// identical queries do not return identical articles. The rotation is a
// deterministic function of the query and the current hour: reproducible
// under test, varying over real time.
func newsVariant(query string, now time.Time) (string, string) {
	query = strings.TrimSpace(query)
	if query == "" {
		query = "stablecoin"
	}
	// Modulo on the unsigned hash: negating the signed hash would still be
	// negative for MinInt64.
	seed := uint64(symbolSeed(query)) + uint64(now.UTC().Hour())

	phrased := fmt.Sprintf(newsPhrasings[seed%uint64(len(newsPhrasings))], query)
	if strings.Contains(strings.ToLower(query), "stablecoin") {
		phrased = query
	}
	window := newsWindows[seed%uint64(len(newsWindows))]
	return phrased, window
}
