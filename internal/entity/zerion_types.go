package entity

// Raw response shapes for the Zerion wallet API. These are decode targets
// only: nothing outside the Zerion normalizer may consume them.

// ZerionPortfolioResponse is the portfolio-summary endpoint envelope.
type ZerionPortfolioResponse struct {
	Data ZerionPortfolioData `json:"data"`
}

type ZerionPortfolioData struct {
	Type       string                    `json:"type"`
	ID         string                    `json:"id"`
	Attributes ZerionPortfolioAttributes `json:"attributes"`
}

type ZerionPortfolioAttributes struct {
	Total                        ZerionPortfolioTotal `json:"total"`
	PositionsDistributionByChain map[string]float64   `json:"positions_distribution_by_chain"`
	PositionsDistributionByType  map[string]float64   `json:"positions_distribution_by_type"`
}

type ZerionPortfolioTotal struct {
	Positions float64 `json:"positions"`
}

// ZerionPositionsResponse is the positions-listing endpoint envelope.
type ZerionPositionsResponse struct {
	Data []ZerionPosition `json:"data"`
}

type ZerionPosition struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id"`
	Attributes    ZerionPositionAttrs     `json:"attributes"`
	Relationships ZerionPositionRelations `json:"relationships"`
}

type ZerionPositionAttrs struct {
	Name                string              `json:"name"`
	PositionType        string              `json:"position_type"`
	Protocol            string              `json:"protocol"`
	Quantity            ZerionQuantity      `json:"quantity"`
	Value               *float64            `json:"value"`
	Price               float64             `json:"price"`
	FungibleInfo        ZerionFungibleInfo  `json:"fungible_info"`
	ApplicationMetadata *ZerionAppMetadata  `json:"application_metadata"`
	Flags               ZerionPositionFlags `json:"flags"`
	UpdatedAt           string              `json:"updated_at"`
}

type ZerionQuantity struct {
	Int      string  `json:"int"`
	Decimals int     `json:"decimals"`
	Float    float64 `json:"float"`
	Numeric  string  `json:"numeric"`
}

type ZerionFungibleInfo struct {
	Name            string                 `json:"name"`
	Symbol          string                 `json:"symbol"`
	Icon            *ZerionIcon            `json:"icon"`
	Implementations []ZerionImplementation `json:"implementations"`
}

type ZerionIcon struct {
	URL string `json:"url"`
}

type ZerionImplementation struct {
	ChainID  string `json:"chain_id"`
	Address  string `json:"address"`
	Decimals int    `json:"decimals"`
}

type ZerionAppMetadata struct {
	ContractAddress string `json:"contract_address"`
	URL             string `json:"url"`
}

type ZerionPositionFlags struct {
	Displayable bool `json:"displayable"`
}

type ZerionPositionRelations struct {
	Chain ZerionRelation `json:"chain"`
	DApp  ZerionRelation `json:"dapp"`
}

type ZerionRelation struct {
	Data ZerionRelationData `json:"data"`
}

type ZerionRelationData struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}
