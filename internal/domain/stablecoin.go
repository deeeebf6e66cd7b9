package domain

// RiskLevel grades a stablecoin's structural risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// StablecoinRef is the canonical catalog entry for one stablecoin.
// The catalog is immutable after process start.
type StablecoinRef struct {
	Symbol   string    `json:"symbol"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Backing  string    `json:"backing"`
	Issuer   string    `json:"issuer"`
	Chains   []string  `json:"chains"`
	Risk     RiskLevel `json:"risk"`
}

// Catalog maps canonical symbols to their reference metadata.
var Catalog = map[string]StablecoinRef{
	"USDT": {
		Symbol:   "USDT",
		Name:     "Tether USD",
		Category: "fiat-backed",
		Backing:  "US treasuries, cash and cash equivalents held by Tether",
		Issuer:   "Tether Operations Limited",
		Chains:   []string{"Ethereum", "Tron", "Solana", "Avalanche", "Polygon"},
		Risk:     RiskMedium,
	},
	"USDC": {
		Symbol:   "USDC",
		Name:     "USD Coin",
		Category: "fiat-backed",
		Backing:  "Short-dated US treasuries and cash in regulated US institutions",
		Issuer:   "Circle Internet Financial",
		Chains:   []string{"Ethereum", "Solana", "Base", "Arbitrum", "Polygon"},
		Risk:     RiskLow,
	},
	"DAI": {
		Symbol:   "DAI",
		Name:     "Dai",
		Category: "crypto-collateralized",
		Backing:  "Overcollateralized crypto vaults plus RWA collateral in MakerDAO",
		Issuer:   "MakerDAO (decentralized)",
		Chains:   []string{"Ethereum", "Polygon", "Arbitrum", "Optimism"},
		Risk:     RiskMedium,
	},
	"PYUSD": {
		Symbol:   "PYUSD",
		Name:     "PayPal USD",
		Category: "fiat-backed",
		Backing:  "US dollar deposits, US treasuries and cash equivalents",
		Issuer:   "Paxos Trust Company for PayPal",
		Chains:   []string{"Ethereum", "Solana"},
		Risk:     RiskLow,
	},
	"FDUSD": {
		Symbol:   "FDUSD",
		Name:     "First Digital USD",
		Category: "fiat-backed",
		Backing:  "Cash and cash equivalents held in Asian custodial accounts",
		Issuer:   "First Digital Labs",
		Chains:   []string{"Ethereum", "BSC"},
		Risk:     RiskMedium,
	},
	"TUSD": {
		Symbol:   "TUSD",
		Name:     "TrueUSD",
		Category: "fiat-backed",
		Backing:  "US dollar reserves with third-party attestations",
		Issuer:   "Techteryx",
		Chains:   []string{"Ethereum", "Tron", "BSC", "Avalanche"},
		Risk:     RiskHigh,
	},
	"USDE": {
		Symbol:   "USDE",
		Name:     "Ethena USDe",
		Category: "synthetic",
		Backing:  "Delta-hedged staked ETH and BTC derivative positions",
		Issuer:   "Ethena Labs",
		Chains:   []string{"Ethereum"},
		Risk:     RiskHigh,
	},
	"FRAX": {
		Symbol:   "FRAX",
		Name:     "Frax",
		Category: "hybrid",
		Backing:  "Partially collateralized, partially algorithmic (AMO controlled)",
		Issuer:   "Frax Finance",
		Chains:   []string{"Ethereum", "Fraxtal", "Arbitrum"},
		Risk:     RiskHigh,
	},
	"USDP": {
		Symbol:   "USDP",
		Name:     "Pax Dollar",
		Category: "fiat-backed",
		Backing:  "US dollar deposits and US treasuries under NYDFS oversight",
		Issuer:   "Paxos Trust Company",
		Chains:   []string{"Ethereum"},
		Risk:     RiskLow,
	},
	"GUSD": {
		Symbol:   "GUSD",
		Name:     "Gemini Dollar",
		Category: "fiat-backed",
		Backing:  "US dollar deposits at State Street and money market funds",
		Issuer:   "Gemini Trust Company",
		Chains:   []string{"Ethereum"},
		Risk:     RiskLow,
	},
}

// Aliases maps lowercase names and tickers to canonical symbols. The symbol
// extractor matches longer aliases first, so multi-word entries like
// "paypal usd" win over any shorter fragment they contain.
var Aliases = map[string]string{
	"usdt":              "USDT",
	"tether":            "USDT",
	"tether usd":        "USDT",
	"usdc":              "USDC",
	"usd coin":          "USDC",
	"circle usd":        "USDC",
	"dai":               "DAI",
	"makerdao":          "DAI",
	"pyusd":             "PYUSD",
	"paypal usd":        "PYUSD",
	"paypal stablecoin": "PYUSD",
	"fdusd":             "FDUSD",
	"first digital usd": "FDUSD",
	"first digital":     "FDUSD",
	"tusd":              "TUSD",
	"trueusd":           "TUSD",
	"true usd":          "TUSD",
	"usde":              "USDE",
	"ethena":            "USDE",
	"ethena usde":       "USDE",
	"frax":              "FRAX",
	"usdp":              "USDP",
	"pax dollar":        "USDP",
	"paxos dollar":      "USDP",
	"gusd":              "GUSD",
	"gemini dollar":     "GUSD",
	"busd":              "BUSD",
	"binance usd":       "BUSD",
	"ust":               "UST",
	"terrausd":          "UST",
	"terra usd":         "UST",
	"usdn":              "USDN",
	"neutrino usd":      "USDN",
}

// LegacySymbols are sunset or collapsed stablecoins users still ask about.
// They resolve through the alias table but have no catalog entry; responses
// for them come from fallback tables or synthetic estimates.
var LegacySymbols = map[string]bool{
	"BUSD": true,
	"UST":  true,
	"USDN": true,
}

// CoinGeckoID maps canonical symbols to CoinGecko API identifiers. Symbols
// without an entry have no market-chart coverage and the provider reports an
// empty payload for them.
var CoinGeckoID = map[string]string{
	"USDT":  "tether",
	"USDC":  "usd-coin",
	"DAI":   "dai",
	"PYUSD": "paypal-usd",
	"FDUSD": "first-digital-usd",
	"TUSD":  "true-usd",
	"USDE":  "ethena-usde",
	"FRAX":  "frax",
	"USDP":  "paxos-standard",
	"GUSD":  "gemini-dollar",
}

// SupportedSymbols lists catalog symbols in display order.
var SupportedSymbols = []string{
	"USDT", "USDC", "DAI", "PYUSD", "FDUSD",
	"TUSD", "USDE", "FRAX", "USDP", "GUSD",
}

// LookupStablecoin returns the catalog entry for a canonical symbol.
func LookupStablecoin(symbol string) (StablecoinRef, bool) {
	ref, ok := Catalog[symbol]
	return ref, ok
}
