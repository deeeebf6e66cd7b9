package domain

import "testing"

func TestCatalogAndSymbolListAgree(t *testing.T) {
	if len(SupportedSymbols) != len(Catalog) {
		t.Fatalf("SupportedSymbols has %d entries, Catalog has %d", len(SupportedSymbols), len(Catalog))
	}
	for _, sym := range SupportedSymbols {
		ref, ok := LookupStablecoin(sym)
		if !ok {
			t.Fatalf("symbol %s missing from catalog", sym)
		}
		if ref.Symbol != sym {
			t.Fatalf("catalog entry %s has symbol %s", sym, ref.Symbol)
		}
		if ref.Name == "" || ref.Issuer == "" || len(ref.Chains) == 0 {
			t.Fatalf("catalog entry %s is incomplete: %+v", sym, ref)
		}
	}
}

func TestAliasesResolveToCatalogSymbols(t *testing.T) {
	for alias, sym := range Aliases {
		if _, ok := Catalog[sym]; !ok && !LegacySymbols[sym] {
			t.Fatalf("alias %q points at unknown symbol %s", alias, sym)
		}
	}
}

func TestEveryCatalogSymbolHasCoinGeckoMapping(t *testing.T) {
	for sym := range Catalog {
		if _, ok := CoinGeckoID[sym]; !ok {
			t.Fatalf("symbol %s missing CoinGecko mapping", sym)
		}
	}
}

func TestRiskLevelsAreKnown(t *testing.T) {
	valid := map[RiskLevel]bool{RiskLow: true, RiskMedium: true, RiskHigh: true}
	for sym, ref := range Catalog {
		if !valid[ref.Risk] {
			t.Fatalf("symbol %s has unknown risk level %q", sym, ref.Risk)
		}
	}
}
