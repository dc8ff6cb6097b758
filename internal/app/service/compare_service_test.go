package service

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"go.uber.org/zap"

	"defi_compare/internal/domain/entity"
)

func makePosition(protocolID, chain string, positionType entity.PositionType, valueUSD float64, symbols ...string) entity.Position {
	tokens := make([]entity.TokenBalance, 0, len(symbols))
	for _, symbol := range symbols {
		tokens = append(tokens, entity.TokenBalance{
			Token:      entity.Token{Symbol: symbol, Decimals: 18},
			BalanceRaw: "1000000000000000000",
		})
	}
	return entity.Position{
		ID:            fmt.Sprintf("%s-%s-%s", protocolID, chain, positionType),
		Protocol:      entity.Protocol{ID: protocolID, Name: protocolID, Chain: chain},
		Type:          positionType,
		Tokens:        tokens,
		TotalValueUSD: valueUSD,
	}
}

func makeDataset(source entity.DataSource, positions ...entity.Position) *entity.AddressDefiData {
	return entity.NewAddressDefiData("0xAbC", source, positions, nil)
}

func compareDatasets(t *testing.T, a, b *entity.AddressDefiData) *entity.CompareResult {
	t.Helper()
	return NewCompareService(zap.NewNop()).Compare(a, b)
}

func countByType(diffs []entity.PositionDiff) map[entity.DiffType]int {
	counts := make(map[entity.DiffType]int)
	for _, d := range diffs {
		counts[d.DiffType]++
	}
	return counts
}

func TestCompare_EndToEndScenario(t *testing.T) {
	// A: one lending position worth 1000; B: the same position worth 1100.
	a := makeDataset(entity.SourceZerion, makePosition("protocolA", "ethereum", entity.PositionTypeLending, 1000, "ETH"))
	b := makeDataset(entity.SourceDebank, makePosition("protocolA", "ethereum", entity.PositionTypeLending, 1100, "ETH"))

	result := compareDatasets(t, a, b)

	want := entity.CompareSummary{
		TotalValueDiffUSD:     100,
		TotalValueDiffPercent: 10,
		PositionsOnlyInA:      0,
		PositionsOnlyInB:      0,
		CommonPositions:       0,
		ChangedPositions:      1,
	}
	if result.Summary != want {
		t.Errorf("summary = %+v, want %+v", result.Summary, want)
	}

	if len(result.Diffs) != 1 {
		t.Fatalf("expected 1 diff, got %d", len(result.Diffs))
	}
	diff := result.Diffs[0]
	if diff.DiffType != entity.DiffChanged {
		t.Errorf("expected changed, got %q", diff.DiffType)
	}
	if diff.ValueDiffUSD != 100 || diff.ValueDiffPercent != 10 {
		t.Errorf("expected delta 100 / 10%%, got %v / %v", diff.ValueDiffUSD, diff.ValueDiffPercent)
	}
	if diff.PositionA == nil || diff.PositionB == nil {
		t.Error("matched diff must carry both sides")
	}
}

func TestCompare_CountConservation(t *testing.T) {
	a := makeDataset(entity.SourceZerion,
		makePosition("p1", "ethereum", entity.PositionTypeLending, 100, "USDC"),
		makePosition("p2", "polygon", entity.PositionTypeStaking, 200, "MATIC"),
		makePosition("p3", "ethereum", entity.PositionTypeLiquidity, 300, "ETH", "USDT"),
	)
	b := makeDataset(entity.SourceDebank,
		makePosition("p1", "ethereum", entity.PositionTypeLending, 100, "USDC"),
		makePosition("p3", "ethereum", entity.PositionTypeLiquidity, 450, "ETH", "USDT"),
		makePosition("p4", "base", entity.PositionTypeFarming, 50, "AERO"),
	)

	result := compareDatasets(t, a, b)
	counts := countByType(result.Diffs)

	if got := counts[entity.DiffRemoved] + counts[entity.DiffChanged] + counts[entity.DiffUnchanged]; got != len(a.Positions) {
		t.Errorf("removed+changed+unchanged = %d, want %d", got, len(a.Positions))
	}
	if counts[entity.DiffAdded] != 1 {
		t.Errorf("added = %d, want 1", counts[entity.DiffAdded])
	}
}

func TestCompare_PermutationInvariance(t *testing.T) {
	basePositionsA := []entity.Position{
		makePosition("p1", "ethereum", entity.PositionTypeLending, 100, "USDC"),
		makePosition("p2", "polygon", entity.PositionTypeStaking, 200, "MATIC"),
		makePosition("p3", "ethereum", entity.PositionTypeLiquidity, 300, "ETH", "USDT"),
		makePosition("p5", "base", entity.PositionTypeFarming, 10, "AERO"),
	}
	basePositionsB := []entity.Position{
		makePosition("p1", "ethereum", entity.PositionTypeLending, 105, "USDC"),
		makePosition("p3", "ethereum", entity.PositionTypeLiquidity, 300, "ETH", "USDT"),
		makePosition("p4", "arbitrum", entity.PositionTypeBorrowing, 40, "ARB"),
	}

	fingerprint := func(diffs []entity.PositionDiff) []string {
		out := make([]string, 0, len(diffs))
		for _, d := range diffs {
			out = append(out, fmt.Sprintf("%s|%s|%s|%s|%.6f|%.6f",
				d.DiffType, d.ProtocolName, d.Chain, d.PositionType, d.ValueDiffUSD, d.ValueDiffPercent))
		}
		sort.Strings(out)
		return out
	}

	reference := compareDatasets(t,
		makeDataset(entity.SourceZerion, basePositionsA...),
		makeDataset(entity.SourceDebank, basePositionsB...))
	wantDiffs := fingerprint(reference.Diffs)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		shuffledA := append([]entity.Position(nil), basePositionsA...)
		shuffledB := append([]entity.Position(nil), basePositionsB...)
		rng.Shuffle(len(shuffledA), func(i, j int) { shuffledA[i], shuffledA[j] = shuffledA[j], shuffledA[i] })
		rng.Shuffle(len(shuffledB), func(i, j int) { shuffledB[i], shuffledB[j] = shuffledB[j], shuffledB[i] })

		result := compareDatasets(t,
			makeDataset(entity.SourceZerion, shuffledA...),
			makeDataset(entity.SourceDebank, shuffledB...))

		if result.Summary != reference.Summary {
			t.Fatalf("trial %d: summary %+v differs from reference %+v", trial, result.Summary, reference.Summary)
		}
		gotDiffs := fingerprint(result.Diffs)
		if len(gotDiffs) != len(wantDiffs) {
			t.Fatalf("trial %d: diff count %d differs from reference %d", trial, len(gotDiffs), len(wantDiffs))
		}
		for i := range gotDiffs {
			if gotDiffs[i] != wantDiffs[i] {
				t.Fatalf("trial %d: diff multiset mismatch:\n got %v\nwant %v", trial, gotDiffs, wantDiffs)
			}
		}
	}
}

func TestCompare_MaterialityThreshold(t *testing.T) {
	t.Run("exactly 1.00 percent stays unchanged", func(t *testing.T) {
		a := makeDataset(entity.SourceZerion, makePosition("p1", "ethereum", entity.PositionTypeLending, 10000, "USDC"))
		b := makeDataset(entity.SourceDebank, makePosition("p1", "ethereum", entity.PositionTypeLending, 10100, "USDC"))

		result := compareDatasets(t, a, b)
		if result.Diffs[0].DiffType != entity.DiffUnchanged {
			t.Errorf("1.00%% diff classified %q, want unchanged", result.Diffs[0].DiffType)
		}
	})

	t.Run("1.01 percent becomes changed", func(t *testing.T) {
		a := makeDataset(entity.SourceZerion, makePosition("p1", "ethereum", entity.PositionTypeLending, 10000, "USDC"))
		b := makeDataset(entity.SourceDebank, makePosition("p1", "ethereum", entity.PositionTypeLending, 10101, "USDC"))

		result := compareDatasets(t, a, b)
		if result.Diffs[0].DiffType != entity.DiffChanged {
			t.Errorf("1.01%% diff classified %q, want changed", result.Diffs[0].DiffType)
		}
	})
}

func TestCompare_ZeroValueEdgeCases(t *testing.T) {
	t.Run("both zero is unchanged at zero percent", func(t *testing.T) {
		a := makeDataset(entity.SourceZerion, makePosition("p1", "ethereum", entity.PositionTypeStaking, 0, "ETH"))
		b := makeDataset(entity.SourceDebank, makePosition("p1", "ethereum", entity.PositionTypeStaking, 0, "ETH"))

		result := compareDatasets(t, a, b)
		diff := result.Diffs[0]
		if diff.DiffType != entity.DiffUnchanged || diff.ValueDiffPercent != 0 {
			t.Errorf("got %q at %v%%, want unchanged at 0%%", diff.DiffType, diff.ValueDiffPercent)
		}
	})

	t.Run("zero A matched by nonzero B is 100 percent", func(t *testing.T) {
		a := makeDataset(entity.SourceZerion, makePosition("p1", "ethereum", entity.PositionTypeStaking, 0, "ETH"))
		b := makeDataset(entity.SourceDebank, makePosition("p1", "ethereum", entity.PositionTypeStaking, 50, "ETH"))

		result := compareDatasets(t, a, b)
		diff := result.Diffs[0]
		if diff.DiffType != entity.DiffChanged || diff.ValueDiffPercent != 100 {
			t.Errorf("got %q at %v%%, want changed at 100%%", diff.DiffType, diff.ValueDiffPercent)
		}
	})

	t.Run("unmatched nonzero B is added, not changed", func(t *testing.T) {
		a := makeDataset(entity.SourceZerion)
		b := makeDataset(entity.SourceDebank, makePosition("p1", "ethereum", entity.PositionTypeStaking, 50, "ETH"))

		result := compareDatasets(t, a, b)
		diff := result.Diffs[0]
		if diff.DiffType != entity.DiffAdded || diff.ValueDiffUSD != 50 || diff.ValueDiffPercent != 100 {
			t.Errorf("got %+v, want added with +50 / +100%%", diff)
		}
		if diff.PositionA != nil {
			t.Error("added diff must not carry an A side")
		}
	})

	t.Run("removed carries negative delta", func(t *testing.T) {
		a := makeDataset(entity.SourceZerion, makePosition("p1", "ethereum", entity.PositionTypeStaking, 80, "ETH"))
		b := makeDataset(entity.SourceDebank)

		result := compareDatasets(t, a, b)
		diff := result.Diffs[0]
		if diff.DiffType != entity.DiffRemoved || diff.ValueDiffUSD != -80 || diff.ValueDiffPercent != -100 {
			t.Errorf("got %+v, want removed with -80 / -100%%", diff)
		}
		if diff.PositionB != nil {
			t.Error("removed diff must not carry a B side")
		}
	})
}

func TestCompare_LooseMatchFallback(t *testing.T) {
	// Exact keys differ on the token set; the loose key
	// protocolx|ethereum|usdc still pairs them.
	a := makeDataset(entity.SourceZerion, makePosition("protocolX", "ethereum", entity.PositionTypeLending, 100, "USDC"))
	b := makeDataset(entity.SourceDebank, makePosition("protocolX", "ethereum", entity.PositionTypeLending, 100, "USDC", "USDT"))

	result := compareDatasets(t, a, b)
	if len(result.Diffs) != 1 {
		t.Fatalf("expected a single paired diff, got %d: %+v", len(result.Diffs), result.Diffs)
	}
	if dt := result.Diffs[0].DiffType; dt != entity.DiffUnchanged && dt != entity.DiffChanged {
		t.Errorf("loose match classified %q, want changed or unchanged", dt)
	}
}

func TestCompare_LooseClaimNotReused(t *testing.T) {
	// One B candidate, two A positions sharing its loose key: the first A
	// claims it, the second is removed.
	a := makeDataset(entity.SourceZerion,
		makePosition("p1", "ethereum", entity.PositionTypeLending, 100, "USDC"),
		makePosition("p1", "ethereum", entity.PositionTypeStaking, 100, "USDC"),
	)
	b := makeDataset(entity.SourceDebank,
		makePosition("p1", "ethereum", entity.PositionTypeLending, 100, "USDC", "DAI"),
	)

	result := compareDatasets(t, a, b)
	counts := countByType(result.Diffs)
	if counts[entity.DiffRemoved] != 1 {
		t.Errorf("expected exactly one removed, got %+v", counts)
	}
	if counts[entity.DiffAdded] != 0 {
		t.Errorf("claimed B position must not also appear as added, got %+v", counts)
	}
}

func TestCompare_OutputOrdering(t *testing.T) {
	a := makeDataset(entity.SourceZerion,
		makePosition("common-small", "ethereum", entity.PositionTypeLending, 100, "USDC"),
		makePosition("common-big", "ethereum", entity.PositionTypeLending, 1000, "DAI"),
		makePosition("gone", "polygon", entity.PositionTypeStaking, 5, "MATIC"),
	)
	b := makeDataset(entity.SourceDebank,
		makePosition("common-small", "ethereum", entity.PositionTypeLending, 103, "USDC"),
		makePosition("common-big", "ethereum", entity.PositionTypeLending, 1500, "DAI"),
		makePosition("new", "base", entity.PositionTypeFarming, 700, "AERO"),
	)

	result := compareDatasets(t, a, b)

	gotOrder := make([]entity.DiffType, 0, len(result.Diffs))
	for _, d := range result.Diffs {
		gotOrder = append(gotOrder, d.DiffType)
	}
	wantOrder := []entity.DiffType{entity.DiffRemoved, entity.DiffAdded, entity.DiffChanged, entity.DiffChanged}
	if len(gotOrder) != len(wantOrder) {
		t.Fatalf("expected %d diffs, got %d", len(wantOrder), len(gotOrder))
	}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("diff order %v, want %v", gotOrder, wantOrder)
		}
	}

	// Within changed, the bigger absolute delta comes first.
	if result.Diffs[2].ProtocolName != "common-big" {
		t.Errorf("expected the 500 USD change first, got %q", result.Diffs[2].ProtocolName)
	}
}

func TestSummarize_ZeroTotals(t *testing.T) {
	a := makeDataset(entity.SourceZerion)
	b := makeDataset(entity.SourceDebank)

	result := compareDatasets(t, a, b)
	if result.Summary.TotalValueDiffPercent != 0 || result.Summary.TotalValueDiffUSD != 0 {
		t.Errorf("empty datasets should summarize to zero, got %+v", result.Summary)
	}
}
