package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"stablecoin-scout/internal/domain"
)

func distServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestChainDistPerChainArrayShape(t *testing.T) {
	t.Parallel()

	srv := distServer(t, `{"peggedAssets": [{
		"symbol": "USDT",
		"name": "Tether",
		"circulating": {"peggedUSD": 1.0e11},
		"chainCirculating": [
			{"chain": "Tron", "amount": 6.0e10},
			{"chain": "Ethereum", "amount": 4.0e10},
			{"chain": "Dust", "amount": 0}
		]
	}]}`)
	defer srv.Close()

	p := NewChainDistributionProviderWithBase(testTracer, srv.URL)
	res := p.FetchDistribution(context.Background(), "USDT")
	if !res.OK {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Data.TotalCirculating != 1.0e11 {
		t.Fatalf("unexpected total: %v", res.Data.TotalCirculating)
	}
	if len(res.Data.Chains) != 2 {
		t.Fatalf("zero-amount chain not dropped: %+v", res.Data.Chains)
	}
	if res.Data.Chains[0].Chain != "Tron" {
		t.Fatalf("chains not ordered by amount: %+v", res.Data.Chains)
	}
	assertPercentagesBounded(t, res.Data.Chains)
}

func TestChainDistChainKeyedMapShape(t *testing.T) {
	t.Parallel()

	srv := distServer(t, `{"peggedAssets": [{
		"symbol": "USDC",
		"circulating": 6.0e10,
		"chainCirculating": {
			"Ethereum": {"current": {"peggedUSD": 4.5e10}},
			"Solana": {"current": {"peggedUSD": 1.5e10}}
		}
	}]}`)
	defer srv.Close()

	p := NewChainDistributionProviderWithBase(testTracer, srv.URL)
	res := p.FetchDistribution(context.Background(), "USDC")
	if !res.OK {
		t.Fatalf("expected success, got %+v", res)
	}
	if len(res.Data.Chains) != 2 {
		t.Fatalf("expected 2 chains, got %+v", res.Data.Chains)
	}
	assertPercentagesBounded(t, res.Data.Chains)
}

func TestChainDistAggregateOnlyShape(t *testing.T) {
	t.Parallel()

	srv := distServer(t, `{"peggedAssets": [{
		"symbol": "GUSD",
		"circulating": "55000000"
	}]}`)
	defer srv.Close()

	p := NewChainDistributionProviderWithBase(testTracer, srv.URL)
	res := p.FetchDistribution(context.Background(), "GUSD")
	if !res.OK {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Data.TotalCirculating != 55000000 {
		t.Fatalf("unexpected total: %v", res.Data.TotalCirculating)
	}
	if len(res.Data.Chains) != 0 {
		t.Fatalf("aggregate-only shape must have no breakdown, got %+v", res.Data.Chains)
	}
}

func TestChainDistPercentagesDerivedNotTrusted(t *testing.T) {
	t.Parallel()

	// Upstream amounts sum past the reported total; local derivation must
	// still keep shares within 100%.
	srv := distServer(t, `{"peggedAssets": [{
		"symbol": "DAI",
		"circulating": 5.0e9,
		"chainCirculating": [
			{"chain": "Ethereum", "amount": 4.0e9},
			{"chain": "Polygon", "amount": 2.0e9}
		]
	}]}`)
	defer srv.Close()

	p := NewChainDistributionProviderWithBase(testTracer, srv.URL)
	res := p.FetchDistribution(context.Background(), "DAI")
	if !res.OK {
		t.Fatalf("expected success, got %+v", res)
	}
	assertPercentagesBounded(t, res.Data.Chains)
}

func TestChainDistUnknownSymbol(t *testing.T) {
	t.Parallel()

	srv := distServer(t, `{"peggedAssets": [{"symbol": "USDT", "circulating": 1}]}`)
	defer srv.Close()

	p := NewChainDistributionProviderWithBase(testTracer, srv.URL)
	res := p.FetchDistribution(context.Background(), "WAT")
	if res.OK || res.ErrKind != ErrEmptyPayload {
		t.Fatalf("expected empty payload, got %+v", res)
	}
}

func TestChainDistUpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewChainDistributionProviderWithBase(testTracer, srv.URL)
	res := p.FetchDistribution(context.Background(), "USDT")
	if res.OK || res.ErrKind != ErrNetwork {
		t.Fatalf("expected network error, got %+v", res)
	}
}

func assertPercentagesBounded(t *testing.T, chains []domain.ChainShare) {
	t.Helper()
	sum := 0.0
	for _, c := range chains {
		if c.Percentage < 0 {
			t.Fatalf("negative percentage for %s: %v", c.Chain, c.Percentage)
		}
		sum += c.Percentage
	}
	if sum > 100.5 {
		t.Fatalf("percentages sum to %v, beyond tolerance", sum)
	}
}
