package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"stablecoin-scout/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	serperNewsURL = "https://google.serper.dev/news"

	// MaxNewsItems caps results regardless of what the caller asks for.
	MaxNewsItems = 6
)

// NewsSearchProvider wraps a Serper-style news search API. The caller is
// expected to vary the time window and query phrasing across repeated
// identical queries; this adapter performs exactly one attempt per call.
type NewsSearchProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
}

func NewNewsSearchProvider(tracer trace.Tracer, apiKey string) *NewsSearchProvider {
	return &NewsSearchProvider{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: serperNewsURL,
		apiKey:  apiKey,
		tracer:  tracer,
	}
}

// NewNewsSearchProviderWithBase is used by tests to point at a stub server.
func NewNewsSearchProviderWithBase(tracer trace.Tracer, apiKey, baseURL string) *NewsSearchProvider {
	p := NewNewsSearchProvider(tracer, apiKey)
	p.baseURL = baseURL
	return p
}

type newsRequest struct {
	Query      string `json:"q"`
	Location   string `json:"gl,omitempty"`
	Num        int    `json:"num"`
	TimeWindow string `json:"tbs,omitempty"`
}

// Search returns up to MaxNewsItems items ordered by upstream rank.
// timeWindow is an upstream filter hint like "qdr:d" (past day).
func (p *NewsSearchProvider) Search(ctx context.Context, query, timeWindow string, limit int) Result[[]domain.NewsItem] {
	ctx, span := p.tracer.Start(ctx, "newssearch.search")
	defer span.End()
	span.SetAttributes(
		attribute.String("news.query", query),
		attribute.String("news.time_window", timeWindow),
	)

	if strings.TrimSpace(query) == "" {
		return Fail[[]domain.NewsItem](ErrEmptyPayload)
	}
	if limit <= 0 || limit > MaxNewsItems {
		limit = MaxNewsItems
	}

	payload, err := json.Marshal(newsRequest{
		Query:      query,
		Location:   "us",
		Num:        limit,
		TimeWindow: timeWindow,
	})
	if err != nil {
		return Fail[[]domain.NewsItem](ErrParse)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(payload))
	if err != nil {
		return Fail[[]domain.NewsItem](ErrNetwork)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("news search request failed: %v", err)
		return Fail[[]domain.NewsItem](ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return Fail[[]domain.NewsItem](ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("news search upstream error %d: %s", resp.StatusCode, sanitizeText(string(body), 200))
		return Fail[[]domain.NewsItem](ErrNetwork)
	}

	var raw struct {
		News []struct {
			Title    string `json:"title"`
			Link     string `json:"link"`
			Snippet  string `json:"snippet"`
			Date     string `json:"date"`
			Source   string `json:"source"`
			ImageURL string `json:"imageUrl"`
		} `json:"news"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		log.Printf("news search parse error: %v", err)
		return Fail[[]domain.NewsItem](ErrParse)
	}
	if len(raw.News) == 0 {
		return Fail[[]domain.NewsItem](ErrEmptyPayload)
	}

	now := time.Now().UTC()
	items := make([]domain.NewsItem, 0, limit)
	for _, row := range raw.News {
		if len(items) >= limit {
			break
		}
		title := sanitizeText(row.Title, 300)
		if title == "" {
			continue
		}
		items = append(items, domain.NewsItem{
			Title:     title,
			Link:      sanitizeText(row.Link, 500),
			Snippet:   sanitizeText(row.Snippet, 420),
			Date:      sanitizeText(row.Date, 60),
			Source:    sanitizeText(row.Source, 120),
			Thumbnail: sanitizeText(row.ImageURL, 500),
			FetchedAt: now,
		})
	}
	if len(items) == 0 {
		return Fail[[]domain.NewsItem](ErrEmptyPayload)
	}
	return Ok(items)
}
