package research

import (
	"reflect"
	"testing"
)

func TestExtractSymbolsLongestAliasWins(t *testing.T) {
	t.Parallel()

	// "paypal usd" must resolve to PYUSD as one mention, not collide with
	// any shorter fragment inside it.
	got := ExtractSymbols("what is the paypal usd stablecoin")
	if !reflect.DeepEqual(got, []string{"PYUSD"}) {
		t.Fatalf("expected [PYUSD], got %v", got)
	}
}

func TestExtractSymbolsTextOrder(t *testing.T) {
	t.Parallel()

	got := ExtractSymbols("Compare USDT and USDC stablecoins")
	if !reflect.DeepEqual(got, []string{"USDT", "USDC"}) {
		t.Fatalf("expected [USDT USDC], got %v", got)
	}
}

func TestExtractSymbolsDeduplicates(t *testing.T) {
	t.Parallel()

	got := ExtractSymbols("tether tether USDT and more tether")
	if !reflect.DeepEqual(got, []string{"USDT"}) {
		t.Fatalf("expected [USDT], got %v", got)
	}
}

func TestExtractSymbolsCaseInsensitive(t *testing.T) {
	t.Parallel()

	got := ExtractSymbols("is DAI safer than FRAX?")
	if !reflect.DeepEqual(got, []string{"DAI", "FRAX"}) {
		t.Fatalf("expected [DAI FRAX], got %v", got)
	}
}

func TestExtractSymbolsWordBoundaries(t *testing.T) {
	t.Parallel()

	// "dai" inside "daily" and "ust" inside "just" must not match.
	if got := ExtractSymbols("just checking the daily update"); len(got) != 0 {
		t.Fatalf("expected no symbols, got %v", got)
	}
}

func TestExtractSymbolsNoMention(t *testing.T) {
	t.Parallel()

	if got := ExtractSymbols("how do pegs hold under stress"); len(got) != 0 {
		t.Fatalf("expected no symbols, got %v", got)
	}
}

func TestExtractSymbolsMultiWordAlias(t *testing.T) {
	t.Parallel()

	got := ExtractSymbols("first digital usd versus usd coin")
	if !reflect.DeepEqual(got, []string{"FDUSD", "USDC"}) {
		t.Fatalf("expected [FDUSD USDC], got %v", got)
	}
}

func TestExtractSymbolsLegacyCoins(t *testing.T) {
	t.Parallel()

	got := ExtractSymbols("compare busd and usdt")
	if !reflect.DeepEqual(got, []string{"BUSD", "USDT"}) {
		t.Fatalf("expected [BUSD USDT], got %v", got)
	}
}
