package provider

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"defi_compare/internal/domain/entity"
	rawentity "defi_compare/internal/entity"
	"defi_compare/internal/infrastructure/chainmap"
	"defi_compare/internal/pkg/utils"
)

// debankItemTypes resolves DeBank's portfolio-item vocabulary into the
// canonical enumeration. Unrecognized values fall back to "other".
var debankItemTypes = map[string]entity.PositionType{
	"lending":        entity.PositionTypeLending,
	"borrowed":       entity.PositionTypeBorrowing,
	"liquidity pool": entity.PositionTypeLiquidity,
	"farming":        entity.PositionTypeFarming,
	"yield":          entity.PositionTypeFarming,
	"rewards":        entity.PositionTypeFarming,
	"staked":         entity.PositionTypeStaking,
	"locked":         entity.PositionTypeStaking,
	"deposit":        entity.PositionTypeStaking,
	"wallet":         entity.PositionTypeWallet,
}

// normalizeDebankProtocols maps one chain's raw protocol entries into
// canonical positions, one position per portfolio item.
func normalizeDebankProtocols(protocols []rawentity.DebankProtocol, networkID string) []entity.Position {
	var positions []entity.Position
	for _, proto := range protocols {
		for i, item := range proto.PortfolioItemList {
			positions = append(positions, normalizeDebankItem(proto, item, networkID, i))
		}
	}
	return positions
}

// normalizeDebankItem builds one canonical position from a portfolio item.
// DeBank separates assets, rewards and debts, so the position total is
// Σ(asset values) + Σ(reward values) − Σ(debt values); per-token USD values
// come from the provider's own price and amount figures, fixed here once and
// never recomputed downstream.
func normalizeDebankItem(proto rawentity.DebankProtocol, item rawentity.DebankPortfolioItem, networkID string, index int) entity.Position {
	chain := chainmap.ToCanonical(networkID)
	protocol := entity.Protocol{
		ID:      strings.ToLower(proto.ID),
		Name:    proto.Name,
		Chain:   chain,
		LogoURL: proto.LogoURL,
		SiteURL: proto.SiteURL,
	}

	positionType := entity.PositionTypeOther
	if t, ok := debankItemTypes[strings.ToLower(item.Name)]; ok {
		positionType = t
	}

	var tokens []entity.TokenBalance
	var assetValue, rewardValue, debtValue float64
	for _, raw := range item.Detail.SupplyTokenList {
		tb := normalizeDebankToken(raw)
		assetValue += tb.BalanceUSD
		tokens = append(tokens, tb)
	}
	for _, raw := range item.Detail.RewardTokenList {
		tb := normalizeDebankToken(raw)
		rewardValue += tb.BalanceUSD
		tokens = append(tokens, tb)
	}
	for _, raw := range item.Detail.BorrowTokenList {
		tb := normalizeDebankToken(raw)
		debtValue += tb.BalanceUSD
		tokens = append(tokens, tb)
	}

	id := fmt.Sprintf("%s-%s-%d", protocol.ID, networkID, index)
	if item.Pool != nil && item.Pool.ID != "" {
		id = fmt.Sprintf("%s-%s-%s", protocol.ID, networkID, item.Pool.ID)
	}

	return entity.Position{
		ID:            id,
		Protocol:      protocol,
		Type:          positionType,
		Tokens:        tokens,
		TotalValueUSD: assetValue + rewardValue - debtValue,
		APY:           item.Detail.AnnualAPY,
		HealthFactor:  item.Detail.HealthRate,
		Metadata: map[string]any{
			"raw_item_name":   item.Name,
			"detail_types":    item.DetailTypes,
			"asset_usd_value": item.Stats.AssetUSDValue,
			"debt_usd_value":  item.Stats.DebtUSDValue,
			"net_usd_value":   item.Stats.NetUSDValue,
		},
	}
}

func normalizeDebankToken(raw rawentity.DebankToken) entity.TokenBalance {
	address := strings.ToLower(raw.ID)
	if address == strings.ToLower(raw.Chain) {
		address = "" // native asset: DeBank reuses the chain id as the token id
	}
	return entity.TokenBalance{
		Token: entity.Token{
			Symbol:   raw.Symbol,
			Name:     raw.Name,
			Address:  address,
			Decimals: raw.Decimals,
			PriceUSD: raw.Price,
			LogoURL:  raw.LogoURL,
		},
		BalanceRaw:       utils.RawUnits(raw.Amount, raw.Decimals),
		FormattedBalance: decimal.NewFromFloat(raw.Amount).String(),
		BalanceUSD:       raw.Amount * raw.Price,
	}
}
