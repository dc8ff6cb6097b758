package entity

// Raw response shapes for the DeBank per-chain positions API. Decode targets
// only; nothing outside the DeBank normalizer may consume them.

// DebankChainResponse is the per-chain endpoint envelope: protocol entries
// are nested under a chain-identifier-keyed map.
type DebankChainResponse struct {
	Data map[string][]DebankProtocol `json:"data"`
}

type DebankProtocol struct {
	ID                string               `json:"id"`
	Chain             string               `json:"chain"`
	Name              string               `json:"name"`
	SiteURL           string               `json:"site_url"`
	LogoURL           string               `json:"logo_url"`
	PortfolioItemList []DebankPortfolioItem `json:"portfolio_item_list"`
}

type DebankPortfolioItem struct {
	Name        string             `json:"name"`
	DetailTypes []string           `json:"detail_types"`
	Stats       DebankItemStats    `json:"stats"`
	Detail      DebankItemDetail   `json:"detail"`
	Pool        *DebankPool        `json:"pool"`
	UpdateAt    float64            `json:"update_at"`
}

type DebankItemStats struct {
	AssetUSDValue float64 `json:"asset_usd_value"`
	DebtUSDValue  float64 `json:"debt_usd_value"`
	NetUSDValue   float64 `json:"net_usd_value"`
}

type DebankItemDetail struct {
	SupplyTokenList []DebankToken `json:"supply_token_list"`
	RewardTokenList []DebankToken `json:"reward_token_list"`
	BorrowTokenList []DebankToken `json:"borrow_token_list"`
	HealthRate      float64       `json:"health_rate"`
	DailyAPY        float64       `json:"daily_apy"`
	AnnualAPY       float64       `json:"annual_apy"`
}

type DebankToken struct {
	ID       string  `json:"id"` // contract address, or the chain id for native assets
	Chain    string  `json:"chain"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Decimals int     `json:"decimals"`
	LogoURL  string  `json:"logo_url"`
	Price    float64 `json:"price"`
	Amount   float64 `json:"amount"`
}

type DebankPool struct {
	ID         string `json:"id"`
	Controller string `json:"controller"`
}
