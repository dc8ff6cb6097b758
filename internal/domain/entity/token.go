package entity

// Token describes a fungible asset as reported by a provider.
// Instances are treated as immutable after construction.
type Token struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Address  string  `json:"address"` // empty for the chain's native asset
	Decimals int     `json:"decimals"`
	PriceUSD float64 `json:"priceUSD,omitempty"`
	LogoURL  string  `json:"logoUrl,omitempty"`
}

// TokenBalance is one token holding inside a position. BalanceRaw keeps the
// integer-precision amount as a string so very large and very small token
// amounts survive without float loss. BalanceUSD is always the value the
// provider reported; it is never recomputed from FormattedBalance and
// PriceUSD here, because the two providers price against different snapshots.
type TokenBalance struct {
	Token            Token   `json:"token"`
	BalanceRaw       string  `json:"balanceRaw"`
	FormattedBalance string  `json:"balanceFormatted"`
	BalanceUSD       float64 `json:"balanceUSD"`
}
