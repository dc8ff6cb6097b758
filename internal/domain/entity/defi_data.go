package entity

import (
	"sort"
	"strings"
	"time"
)

// DataSource tags which provider a dataset was normalized from.
type DataSource string

const (
	SourceZerion DataSource = "zerion"
	SourceDebank DataSource = "debank"
)

// AddressDefiData is one provider's complete view of an address's DeFi
// holdings after normalization. Instances are built fresh per request and
// never shared mutably across goroutines.
type AddressDefiData struct {
	Address       string     `json:"address"`
	Source        DataSource `json:"source"`
	TotalValueUSD float64    `json:"totalValueUSD"`
	Positions     []Position `json:"positions"`
	Chains        []string   `json:"chains"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// NewAddressDefiData assembles a dataset from normalized positions. The
// address is lower-cased, positions sharing an exact key are merged, and the
// distinct chain set is derived from the surviving positions.
//
// reportedTotalUSD carries a provider-reported portfolio total when the
// provider supplies one separately from its position listing; when nil the
// total is the sum over positions. Either way the instance stays internally
// consistent with its own declared total.
func NewAddressDefiData(address string, source DataSource, positions []Position, reportedTotalUSD *float64) *AddressDefiData {
	merged := MergeDuplicatePositions(positions)

	total := 0.0
	chainSet := make(map[string]struct{})
	for _, pos := range merged {
		total += pos.TotalValueUSD
		if pos.Protocol.Chain != "" {
			chainSet[pos.Protocol.Chain] = struct{}{}
		}
	}
	if reportedTotalUSD != nil {
		total = *reportedTotalUSD
	}

	chains := make([]string, 0, len(chainSet))
	for chain := range chainSet {
		chains = append(chains, chain)
	}
	sort.Strings(chains)

	return &AddressDefiData{
		Address:       strings.ToLower(address),
		Source:        source,
		TotalValueUSD: total,
		Positions:     merged,
		Chains:        chains,
		UpdatedAt:     time.Now().UTC(),
	}
}
