package entity

import (
	"sort"
	"strings"
)

// PositionType is the canonical position classification both providers'
// vocabularies are resolved into.
type PositionType string

const (
	PositionTypeLending   PositionType = "lending"
	PositionTypeBorrowing PositionType = "borrowing"
	PositionTypeLiquidity PositionType = "liquidity"
	PositionTypeStaking   PositionType = "staking"
	PositionTypeFarming   PositionType = "farming"
	PositionTypeWallet    PositionType = "wallet"
	PositionTypeOther     PositionType = "other"
)

// Protocol identifies the DeFi protocol a position belongs to. For matching
// purposes identity is the (ID, Chain) pair; Name and the URLs are display
// data only.
type Protocol struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Chain   string `json:"chain"` // canonical chain identifier, post-translation
	LogoURL string `json:"logoUrl,omitempty"`
	SiteURL string `json:"siteUrl,omitempty"`
}

// Position is one normalized DeFi position. It is a value object: the
// reconciliation never mutates a position in place, and merging two
// positions produces a new instance. ID is only unique within a single
// dataset, never across providers.
type Position struct {
	ID            string         `json:"id"`
	Protocol      Protocol       `json:"protocol"`
	Type          PositionType   `json:"type"`
	Tokens        []TokenBalance `json:"tokens"`
	TotalValueUSD float64        `json:"totalValueUSD"`
	APY           float64        `json:"apy,omitempty"`
	HealthFactor  float64        `json:"healthFactor,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

const keySeparator = "|"

// ExactKey is the tier-one matching key: protocol id, chain, position type
// and the sorted token symbol set, lower-cased. Two positions with the same
// exact key describe the same holding at the same granularity.
func (p Position) ExactKey() string {
	symbols := make([]string, 0, len(p.Tokens))
	for _, tb := range p.Tokens {
		symbols = append(symbols, strings.ToLower(tb.Token.Symbol))
	}
	sort.Strings(symbols)
	return strings.ToLower(strings.Join([]string{
		p.Protocol.ID,
		p.Protocol.Chain,
		string(p.Type),
		strings.Join(symbols, ","),
	}, keySeparator))
}

// LooseKey is the tier-two fallback key used when no exact match exists:
// protocol id, chain and the primary (first) token symbol. Several positions
// may legitimately share a loose key.
func (p Position) LooseKey() string {
	primary := ""
	if len(p.Tokens) > 0 {
		primary = p.Tokens[0].Token.Symbol
	}
	return strings.ToLower(strings.Join([]string{
		p.Protocol.ID,
		p.Protocol.Chain,
		primary,
	}, keySeparator))
}

// merge combines two positions that share an exact key into a new one:
// values sum, token lists concatenate. The left side's identity fields win.
func (p Position) merge(other Position) Position {
	merged := p
	merged.Tokens = make([]TokenBalance, 0, len(p.Tokens)+len(other.Tokens))
	merged.Tokens = append(merged.Tokens, p.Tokens...)
	merged.Tokens = append(merged.Tokens, other.Tokens...)
	merged.TotalValueUSD = p.TotalValueUSD + other.TotalValueUSD
	return merged
}

// MergeDuplicatePositions collapses positions sharing an exact key, so the
// reconciliation engine never sees duplicate exact keys within one dataset.
// Relative order of first occurrences is preserved.
func MergeDuplicatePositions(positions []Position) []Position {
	merged := make([]Position, 0, len(positions))
	index := make(map[string]int, len(positions))
	for _, pos := range positions {
		key := pos.ExactKey()
		if i, ok := index[key]; ok {
			merged[i] = merged[i].merge(pos)
			continue
		}
		index[key] = len(merged)
		merged = append(merged, pos)
	}
	return merged
}
