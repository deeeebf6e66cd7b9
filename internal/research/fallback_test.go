package research

import (
	"reflect"
	"testing"
	"time"

	"stablecoin-scout/internal/domain"
)

func TestSyntheticSnapshotIsDeterministic(t *testing.T) {
	t.Parallel()

	a := syntheticSnapshot("XUSD")
	b := syntheticSnapshot("XUSD")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same symbol produced different snapshots:\n%+v\n%+v", a, b)
	}
}

func TestSyntheticSnapshotVariesAcrossSymbols(t *testing.T) {
	t.Parallel()

	a := syntheticSnapshot("XUSD")
	b := syntheticSnapshot("YUSD")
	if a.CirculatingSupply == b.CirculatingSupply {
		t.Fatal("distinct symbols produced identical supply")
	}
}

func TestSyntheticSnapshotSupplyBand(t *testing.T) {
	t.Parallel()

	for _, sym := range []string{"XUSD", "ZUSD", "NUSD", "USDX"} {
		s := syntheticSnapshot(sym)
		if s.CirculatingSupply < 50e6 || s.CirculatingSupply > 2e9 {
			t.Fatalf("%s supply %v outside USD-ticker band", sym, s.CirculatingSupply)
		}
	}

	s := syntheticSnapshot("EURX")
	if s.CirculatingSupply < 5e6 || s.CirculatingSupply > 500e6 {
		t.Fatalf("non-USD supply %v outside band", s.CirculatingSupply)
	}
}

func TestSyntheticSnapshotFullyPopulated(t *testing.T) {
	t.Parallel()

	s := syntheticSnapshot("XUSD")
	if !s.Synthetic {
		t.Fatal("snapshot not flagged synthetic")
	}
	if s.MarketSharePct <= 0 || s.Volume24h <= 0 {
		t.Fatalf("empty fields: %+v", s)
	}
	if len(s.ChainDistribution) < 2 || len(s.ChainDistribution) > 4 {
		t.Fatalf("chain count out of range: %d", len(s.ChainDistribution))
	}
	if s.DepegEvents == nil {
		t.Fatal("depeg events slice must be non-nil")
	}

	sum := 0.0
	for _, c := range s.ChainDistribution {
		sum += c.Percentage
	}
	if sum < 99.5 || sum > 100.5 {
		t.Fatalf("chain percentages sum to %v", sum)
	}
}

func TestFallbackTableCoversCatalog(t *testing.T) {
	t.Parallel()

	for sym := range domain.Catalog {
		ref, ok := fallbackMetrics[sym]
		if !ok {
			t.Fatalf("catalog symbol %s missing from fallback table", sym)
		}
		if ref.Supply <= 0 || ref.Volume24h <= 0 || len(ref.Chains) == 0 {
			t.Fatalf("incomplete fallback entry for %s: %+v", sym, ref)
		}
	}
}

func TestDepegEventsFromSeries(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
	}
	series := []domain.ChartPoint{
		{Date: day(1), Price: 1.0005},
		{Date: day(2), Price: 0.985}, // -1.5%
		{Date: day(3), Price: 0.995},
		{Date: day(4), Price: 1.02}, // +2%
	}

	events := depegEventsFromSeries(series)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %+v", len(events), events)
	}
	if events[0].Price != 0.985 || events[1].Price != 1.02 {
		t.Fatalf("wrong points flagged: %+v", events)
	}
	if events[0].DeviationPercent < 1.49 || events[0].DeviationPercent > 1.51 {
		t.Fatalf("deviation miscomputed: %v", events[0].DeviationPercent)
	}
}
