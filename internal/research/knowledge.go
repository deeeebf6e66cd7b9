package research

import "stablecoin-scout/internal/domain"

// staticExplanations is the in-process explanation cache. A hit here, like a
// knowledge-base hit, skips the chat provider entirely.
var staticExplanations = map[string]string{
	"USDT": `Overview: Tether USD (USDT) is the largest stablecoin by supply, issued by Tether Operations Limited and circulating on Tron, Ethereum, Solana and several other chains.

Backing Mechanism: Reserves are held mostly in short-dated US treasuries, with cash, repo and some other assets, attested quarterly by BDO.

Usecases:
- Dominant quote asset on offshore exchanges
- Dollar savings and transfers in emerging markets, especially on Tron
- Settlement leg for OTC and cross-border flows

Risks: Reserve composition is attested rather than audited, the issuer is offshore, and USDT has traded off peg during market stress (notably May 2022).`,
	"USDC": `Overview: USD Coin (USDC) is issued by Circle, a regulated US financial company, and is the second-largest stablecoin.

Backing Mechanism: Reserves sit in the Circle Reserve Fund (a government money-market fund managed by BlackRock) plus cash at regulated banks, with monthly attestations.

Usecases:
- Preferred dollar rail for US-regulated platforms and DeFi bluechips
- Onchain treasury and payment flows on Base, Solana and Ethereum

Risks: Concentrated banking exposure; USDC depegged to roughly $0.88 in March 2023 when Silicon Valley Bank held part of its cash reserves, recovering after US intervention.`,
	"DAI": `Overview: Dai (DAI) is a decentralized stablecoin issued by the MakerDAO protocol rather than a company.

Backing Mechanism: Overcollateralized vaults of crypto assets plus real-world-asset collateral and a large USDC buffer; the peg is managed by protocol rates rather than redemptions.

Usecases:
- Censorship-resistant dollar exposure inside DeFi
- Collateral and settlement asset across Ethereum rollups

Risks: Collateral concentration in USDC and RWAs dilutes decentralization; governance risk; smart-contract risk across the vault stack.`,
}

// comparisonFallbackRows covers symbols users still ask about that the live
// catalog no longer carries.
var comparisonFallbackRows = map[string]domain.ComparisonRow{
	"BUSD": {
		Symbol:   "BUSD",
		Name:     "Binance USD (sunset)",
		Category: "fiat-backed",
		Backing:  "US dollar reserves held by Paxos; issuance halted Feb 2023",
		Issuer:   "Paxos Trust Company for Binance",
		Chains:   []string{"Ethereum", "BSC"},
		Risk:     string(domain.RiskHigh),
	},
	"UST": {
		Symbol:   "UST",
		Name:     "TerraUSD (collapsed)",
		Category: "algorithmic",
		Backing:  "Seigniorage mechanism against LUNA; failed May 2022",
		Issuer:   "Terraform Labs",
		Chains:   []string{"Terra"},
		Risk:     string(domain.RiskHigh),
	},
	"USDN": {
		Symbol:   "USDN",
		Name:     "Neutrino USD (depegged)",
		Category: "algorithmic",
		Backing:  "WAVES-collateralized algorithmic peg; lost parity in 2022",
		Issuer:   "Neutrino protocol",
		Chains:   []string{"Waves"},
		Risk:     string(domain.RiskHigh),
	},
}

// comparisonRowFor builds a table row from the catalog, falling back to the
// hard-coded table. Live providers are never consulted for comparisons.
func comparisonRowFor(symbol string) (domain.ComparisonRow, bool) {
	if ref, ok := domain.LookupStablecoin(symbol); ok {
		return domain.ComparisonRow{
			Symbol:   ref.Symbol,
			Name:     ref.Name,
			Category: ref.Category,
			Backing:  ref.Backing,
			Issuer:   ref.Issuer,
			Chains:   ref.Chains,
			Risk:     string(ref.Risk),
		}, true
	}
	row, ok := comparisonFallbackRows[symbol]
	return row, ok
}
