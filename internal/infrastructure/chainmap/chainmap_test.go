package chainmap

import "testing"

func TestToCanonical(t *testing.T) {
	t.Run("translates known network ids", func(t *testing.T) {
		cases := map[string]string{
			"eth":   "ethereum",
			"bsc":   "binance-smart-chain",
			"matic": "polygon",
			"era":   "zksync-era",
		}
		for network, want := range cases {
			if got := ToCanonical(network); got != want {
				t.Errorf("ToCanonical(%q) = %q, want %q", network, got, want)
			}
		}
	})

	t.Run("normalizes case before lookup", func(t *testing.T) {
		if got := ToCanonical("ETH"); got != "ethereum" {
			t.Errorf("ToCanonical(ETH) = %q, want ethereum", got)
		}
		if got := ToCanonical("  Arb "); got != "arbitrum" {
			t.Errorf("ToCanonical(  Arb ) = %q, want arbitrum", got)
		}
	})

	t.Run("passes unknown ids through unchanged", func(t *testing.T) {
		if got := ToCanonical("somechain"); got != "somechain" {
			t.Errorf("ToCanonical(somechain) = %q, want somechain", got)
		}
	})
}

func TestToProviderNetwork(t *testing.T) {
	network, ok := ToProviderNetwork("binance-smart-chain")
	if !ok || network != "bsc" {
		t.Errorf("ToProviderNetwork(binance-smart-chain) = %q, %v, want bsc, true", network, ok)
	}

	if _, ok := ToProviderNetwork("somechain"); ok {
		t.Error("expected no translation for unknown canonical id")
	}
}

func TestRoundTrip(t *testing.T) {
	// Every entry in the static table must survive a full round trip.
	for network, canonical := range networkToCanonical {
		back, ok := ToProviderNetwork(canonical)
		if !ok || back != network {
			t.Errorf("round trip for %q: ToProviderNetwork(%q) = %q, %v", network, canonical, back, ok)
		}
		if got := ToCanonical(back); got != canonical {
			t.Errorf("round trip for %q: ToCanonical(%q) = %q, want %q", network, back, got, canonical)
		}
	}
}

func TestPrimaryNetworks(t *testing.T) {
	scope := PrimaryNetworks()
	if len(scope) != len(primaryNetworks) {
		t.Fatalf("expected %d primary networks, got %d", len(primaryNetworks), len(scope))
	}

	// Callers get a copy, not the package table.
	scope[0] = "mutated"
	if primaryNetworks[0] == "mutated" {
		t.Error("PrimaryNetworks leaked the internal slice")
	}

	for _, network := range PrimaryNetworks() {
		if _, ok := networkToCanonical[network]; !ok {
			t.Errorf("primary network %q is missing from the translation table", network)
		}
	}
}
