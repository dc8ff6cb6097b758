package provider

import (
	"fmt"
	"strings"

	"defi_compare/internal/domain/entity"
	rawentity "defi_compare/internal/entity"
	"defi_compare/internal/infrastructure/chainmap"
	"defi_compare/internal/pkg/utils"
)

// zerionPositionTypes resolves Zerion's position-type vocabulary into the
// canonical enumeration. Unrecognized values fall back to "other".
var zerionPositionTypes = map[string]entity.PositionType{
	"deposit":   entity.PositionTypeLending,
	"loan":      entity.PositionTypeBorrowing,
	"liquidity": entity.PositionTypeLiquidity,
	"staked":    entity.PositionTypeStaking,
	"locked":    entity.PositionTypeStaking,
	"reward":    entity.PositionTypeFarming,
	"farming":   entity.PositionTypeFarming,
	"wallet":    entity.PositionTypeWallet,
}

// normalizeZerionPosition maps one raw Zerion position into the canonical
// model. Zerion reports one fungible per position, so each canonical
// position carries a single token balance; the reported value passes through
// as the position total.
func normalizeZerionPosition(raw rawentity.ZerionPosition, index int) entity.Position {
	attrs := raw.Attributes

	chain := chainmap.ToCanonical(raw.Relationships.Chain.Data.ID)

	protocolID := strings.ToLower(raw.Relationships.DApp.Data.ID)
	if protocolID == "" {
		protocolID = strings.ToLower(attrs.Protocol)
	}
	protocolName := attrs.Protocol
	if protocolName == "" {
		protocolName = raw.Relationships.DApp.Data.ID
	}

	positionType := entity.PositionTypeOther
	if t, ok := zerionPositionTypes[strings.ToLower(attrs.PositionType)]; ok {
		positionType = t
	}

	token := entity.Token{
		Symbol:   attrs.FungibleInfo.Symbol,
		Name:     attrs.FungibleInfo.Name,
		Decimals: attrs.Quantity.Decimals,
		PriceUSD: attrs.Price,
	}
	if attrs.FungibleInfo.Icon != nil {
		token.LogoURL = attrs.FungibleInfo.Icon.URL
	}
	for _, impl := range attrs.FungibleInfo.Implementations {
		if chainmap.ToCanonical(impl.ChainID) == chain {
			token.Address = strings.ToLower(impl.Address)
			if impl.Decimals > 0 {
				token.Decimals = impl.Decimals
			}
			break
		}
	}

	formatted := attrs.Quantity.Numeric
	if formatted == "" {
		if f, err := utils.FormatUnits(attrs.Quantity.Int, token.Decimals); err == nil {
			formatted = f
		}
	}

	value := 0.0
	if attrs.Value != nil {
		value = *attrs.Value
	}

	id := raw.ID
	if id == "" {
		id = fmt.Sprintf("%s-%s-%d", protocolID, chain, index)
	}

	pos := entity.Position{
		ID:       id,
		Protocol: entity.Protocol{ID: protocolID, Name: protocolName, Chain: chain},
		Type:     positionType,
		Tokens: []entity.TokenBalance{{
			Token:            token,
			BalanceRaw:       attrs.Quantity.Int,
			FormattedBalance: formatted,
			BalanceUSD:       value,
		}},
		TotalValueUSD: value,
		Metadata: map[string]any{
			"raw_position_type": attrs.PositionType,
			"raw_name":          attrs.Name,
			"displayable":       attrs.Flags.Displayable,
		},
	}
	if attrs.ApplicationMetadata != nil {
		pos.Protocol.SiteURL = attrs.ApplicationMetadata.URL
	}
	return pos
}
