package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stablecoin-scout/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type mockResearch struct {
	resp *domain.ComposedResponse
	err  error

	processCalls  int
	adoptionCalls int
	newsCalls     int
	lastQuery     string
}

func (m *mockResearch) ProcessQuery(_ context.Context, text string) (*domain.ComposedResponse, error) {
	m.processCalls++
	m.lastQuery = text
	return m.resp, m.err
}

func (m *mockResearch) AdoptionFor(_ context.Context, symbol string) (*domain.ComposedResponse, error) {
	m.adoptionCalls++
	m.lastQuery = symbol
	return m.resp, m.err
}

func (m *mockResearch) NewsFor(_ context.Context, query string) (*domain.ComposedResponse, error) {
	m.newsCalls++
	m.lastQuery = query
	return m.resp, m.err
}

type mockLeadStore struct {
	lead  *domain.Lead
	leads []domain.Lead
	err   error
}

func (m *mockLeadStore) CreateLead(_ context.Context, lead *domain.Lead) (*domain.Lead, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := *lead
	out.ID = 1
	m.lead = &out
	return &out, nil
}

func (m *mockLeadStore) ListLeads(_ context.Context, _ int) ([]domain.Lead, error) {
	return m.leads, m.err
}

func newTestRouter(research ResearchService, leads LeadStore, apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(testTracer, research, leads, apiKey, 100)
	h.RegisterRoutes(r)
	return r
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&mockResearch{}, nil, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") || !strings.Contains(w.Body.String(), "stablecoin-scout") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestProcessResearchQuery(t *testing.T) {
	research := &mockResearch{resp: &domain.ComposedResponse{
		Intent: domain.IntentGeneric,
		Text:   "USDT is the largest stablecoin.",
	}}
	r := newTestRouter(research, nil, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/research/query",
		strings.NewReader(`{"query": "tell me about usdt"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if research.processCalls != 1 || research.lastQuery != "tell me about usdt" {
		t.Fatalf("query not forwarded: %+v", research)
	}

	var resp domain.ComposedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Intent != domain.IntentGeneric || resp.Text == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProcessResearchQueryValidation(t *testing.T) {
	research := &mockResearch{}
	r := newTestRouter(research, nil, "")

	for _, body := range []string{`{}`, `{"query": "   "}`, `not json`} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/research/query", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, w.Code)
		}
	}
	if research.processCalls != 0 {
		t.Fatalf("invalid requests must not reach the service, got %d calls", research.processCalls)
	}
}

func TestProcessResearchQueryUpstreamFailure(t *testing.T) {
	research := &mockResearch{err: errors.New("chat provider failed (network)")}
	r := newTestRouter(research, nil, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/research/query",
		strings.NewReader(`{"query": "what is a stablecoin"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "network") {
		t.Fatalf("internal error detail leaked: %s", w.Body.String())
	}
}

func TestListStablecoins(t *testing.T) {
	r := newTestRouter(&mockResearch{}, nil, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/stablecoins", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Stablecoins []domain.StablecoinRef `json:"stablecoins"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(body.Stablecoins) != len(domain.SupportedSymbols) {
		t.Fatalf("expected %d coins, got %d", len(domain.SupportedSymbols), len(body.Stablecoins))
	}
}

func TestGetStablecoin(t *testing.T) {
	r := newTestRouter(&mockResearch{}, nil, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/stablecoins/usdc", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Circle") {
		t.Errorf("issuer missing from body: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/stablecoins/DOGE", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown symbol, got %d", w.Code)
	}
}

func TestGetAdoption(t *testing.T) {
	research := &mockResearch{resp: &domain.ComposedResponse{
		Intent:   domain.IntentAdoption,
		Adoption: &domain.AdoptionSnapshot{Symbol: "USDT", CirculatingSupply: 118e9},
	}}
	r := newTestRouter(research, nil, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/adoption/usdt", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if research.adoptionCalls != 1 || research.lastQuery != "USDT" {
		t.Fatalf("symbol not uppercased/forwarded: %+v", research)
	}
}

func TestGetNews(t *testing.T) {
	research := &mockResearch{resp: &domain.ComposedResponse{
		Intent:    domain.IntentNews,
		NewsItems: []domain.NewsItem{{Title: "Reserve attestation published"}},
	}}
	r := newTestRouter(research, nil, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/news?q=usdc+reserves", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if research.newsCalls != 1 || research.lastQuery != "usdc reserves" {
		t.Fatalf("query not forwarded: %+v", research)
	}
}

func TestGetNewsAppliesLimit(t *testing.T) {
	research := &mockResearch{resp: &domain.ComposedResponse{
		Intent: domain.IntentNews,
		NewsItems: []domain.NewsItem{
			{Title: "one"}, {Title: "two"}, {Title: "three"},
		},
	}}
	r := newTestRouter(research, nil, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/news?limit=2", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp domain.ComposedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(resp.NewsItems) != 2 {
		t.Fatalf("limit not applied, got %d items", len(resp.NewsItems))
	}
}

func TestCreateLead(t *testing.T) {
	store := &mockLeadStore{}
	r := newTestRouter(&mockResearch{}, store, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/leads",
		strings.NewReader(`{"name": "Ada", "email": "ADA@Example.com", "company": "Research Co"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if store.lead == nil || store.lead.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %+v", store.lead)
	}
}

func TestCreateLeadValidation(t *testing.T) {
	r := newTestRouter(&mockResearch{}, &mockLeadStore{}, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/leads",
		strings.NewReader(`{"name": "Ada", "email": "not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateLeadWithoutStore(t *testing.T) {
	r := newTestRouter(&mockResearch{}, nil, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/leads",
		strings.NewReader(`{"name": "Ada", "email": "ada@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestListLeadsRequiresAPIKey(t *testing.T) {
	store := &mockLeadStore{leads: []domain.Lead{{ID: 1, Name: "Ada", Email: "ada@example.com"}}}
	r := newTestRouter(&mockResearch{}, store, "secret")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/leads", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/leads", nil)
	req.Header.Set("X-API-Key", "wrong")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with wrong key, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/leads", nil)
	req.Header.Set("X-API-Key", "secret")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ada@example.com") {
		t.Errorf("lead missing from body: %s", w.Body.String())
	}
}
