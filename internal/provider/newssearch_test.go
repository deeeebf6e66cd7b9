package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewsSearchCapsItems(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		items := make([]map[string]string, 10)
		for i := range items {
			items[i] = map[string]string{
				"title":   "Stablecoin headline",
				"link":    "https://example.com/a",
				"snippet": "snippet text",
				"date":    "2 hours ago",
				"source":  "Example Wire",
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"news": items})
	}))
	defer srv.Close()

	p := NewNewsSearchProviderWithBase(testTracer, "key", srv.URL)
	res := p.Search(context.Background(), "stablecoin news", "qdr:d", 20)
	if !res.OK {
		t.Fatalf("expected success, got %+v", res)
	}
	if len(res.Data) != MaxNewsItems {
		t.Fatalf("expected cap of %d items, got %d", MaxNewsItems, len(res.Data))
	}
}

func TestNewsSearchPassesAPIKeyAndWindow(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") != "secret" {
			t.Errorf("missing api key header")
		}
		var req newsRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.TimeWindow != "qdr:w" {
			t.Errorf("time window not forwarded: %q", req.TimeWindow)
		}
		json.NewEncoder(w).Encode(map[string]any{"news": []map[string]string{
			{"title": "one", "link": "https://x.test"},
		}})
	}))
	defer srv.Close()

	p := NewNewsSearchProviderWithBase(testTracer, "secret", srv.URL)
	res := p.Search(context.Background(), "USDC depeg", "qdr:w", 3)
	if !res.OK || len(res.Data) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestNewsSearchEmptyResult(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"news": []}`))
	}))
	defer srv.Close()

	p := NewNewsSearchProviderWithBase(testTracer, "key", srv.URL)
	res := p.Search(context.Background(), "nothing here", "", 6)
	if res.OK || res.ErrKind != ErrEmptyPayload {
		t.Fatalf("expected empty payload, got %+v", res)
	}
}

func TestNewsSearchBlankQuery(t *testing.T) {
	t.Parallel()

	p := NewNewsSearchProviderWithBase(testTracer, "key", "http://unused.invalid")
	res := p.Search(context.Background(), "  ", "", 6)
	if res.OK || res.ErrKind != ErrEmptyPayload {
		t.Fatalf("expected empty payload, got %+v", res)
	}
}

func TestNewsSearchUpstreamFailureKinds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		want   ErrorKind
	}{
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrNetwork},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		p := NewNewsSearchProviderWithBase(testTracer, "key", srv.URL)
		res := p.Search(context.Background(), "usdt", "", 6)
		srv.Close()
		if res.OK || res.ErrKind != tc.want {
			t.Fatalf("status %d: expected %s, got %+v", tc.status, tc.want, res)
		}
	}
}
