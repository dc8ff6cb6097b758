// Package chainmap translates between the two providers' chain-naming
// taxonomies. DeBank partitions its API by short network ids ("eth", "bsc",
// "matic", ...) while the canonical model, like Zerion, uses long chain
// identifiers ("ethereum", "binance-smart-chain", "polygon", ...).
//
// The table is static, process-wide and immutable. Chain identifiers are
// opaque strings everywhere else in the system, so an unknown input passes
// through unchanged: it is merely unmatched across providers, not an error.
package chainmap

import "strings"

var networkToCanonical = map[string]string{
	"eth":    "ethereum",
	"bsc":    "binance-smart-chain",
	"matic":  "polygon",
	"arb":    "arbitrum",
	"op":     "optimism",
	"avax":   "avalanche",
	"ftm":    "fantom",
	"base":   "base",
	"era":    "zksync-era",
	"xdai":   "xdai",
	"cro":    "cronos",
	"mobm":   "moonbeam",
	"movr":   "moonriver",
	"celo":   "celo",
	"aurora": "aurora",
	"kava":   "kava",
	"metis":  "metis",
	"linea":  "linea",
	"scrl":   "scroll",
	"mnt":    "mantle",
	"pls":    "pulsechain",
	"boba":   "boba",
	"canto":  "canto",
	"manta":  "manta-pacific",
	"blast":  "blast",
}

var canonicalToNetwork = func() map[string]string {
	inverse := make(map[string]string, len(networkToCanonical))
	for network, canonical := range networkToCanonical {
		inverse[canonical] = network
	}
	return inverse
}()

// primaryNetworks is the default query scope used when no explicit chain
// scope is supplied: the well-known networks that carry the bulk of DeFi TVL.
var primaryNetworks = []string{
	"eth", "bsc", "matic", "arb", "op", "avax", "ftm", "base",
	"era", "xdai", "cro", "linea", "scrl", "mnt", "celo", "blast",
}

// ToCanonical maps a provider network id to the canonical chain identifier.
// Unknown ids are returned unchanged (lower-cased).
func ToCanonical(providerNetworkID string) string {
	id := strings.ToLower(strings.TrimSpace(providerNetworkID))
	if canonical, ok := networkToCanonical[id]; ok {
		return canonical
	}
	return id
}

// ToProviderNetwork maps a canonical chain identifier back to the provider
// network id. The second return reports whether a translation exists.
func ToProviderNetwork(canonicalChainID string) (string, bool) {
	network, ok := canonicalToNetwork[strings.ToLower(strings.TrimSpace(canonicalChainID))]
	return network, ok
}

// PrimaryNetworks returns a copy of the default provider network scope.
func PrimaryNetworks() []string {
	scope := make([]string, len(primaryNetworks))
	copy(scope, primaryNetworks)
	return scope
}
