package service

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"defi_compare/internal/app/port"
	"defi_compare/internal/domain/entity"
	"defi_compare/internal/pkg/metrics"
)

// materialityThresholdPercent separates changed from unchanged: a matched
// pair is changed only when its value moved by more than this percentage.
const materialityThresholdPercent = 1.0

// CompareServiceImpl implements port.CompareService: the tiered-matching
// reconciliation between two canonical datasets plus the summary rollup.
type CompareServiceImpl struct {
	logger *zap.Logger
}

// NewCompareService creates a new CompareServiceImpl.
func NewCompareService(logger *zap.Logger) port.CompareService {
	return &CompareServiceImpl{logger: logger.Named("CompareService")}
}

// Compare implements port.CompareService.
func (s *CompareServiceImpl) Compare(dataA, dataB *entity.AddressDefiData) *entity.CompareResult {
	metrics.CompareRequestsTotal.Inc()

	diffs := reconcilePositions(dataA.Positions, dataB.Positions)
	summary := summarize(dataA, dataB, diffs)

	s.logger.Debug("Reconciled datasets",
		zap.String("address", dataA.Address),
		zap.Int("positionsA", len(dataA.Positions)),
		zap.Int("positionsB", len(dataB.Positions)),
		zap.Int("diffCount", len(diffs)),
		zap.Float64("totalValueDiffUSD", summary.TotalValueDiffUSD))

	return &entity.CompareResult{
		DataA:   dataA,
		DataB:   dataB,
		Summary: summary,
		Diffs:   diffs,
	}
}

// reconcilePositions pairs A's positions against B's with the two-tier key
// strategy: exact key first, then the loose key against candidates not yet
// claimed by an earlier A position (first-available selection, no
// value-proximity search). Both sides arrive with duplicate exact keys
// already merged by the dataset constructor.
func reconcilePositions(positionsA, positionsB []entity.Position) []entity.PositionDiff {
	exactB := make(map[string]int, len(positionsB))
	looseB := make(map[string][]int, len(positionsB))
	for i := range positionsB {
		exactB[positionsB[i].ExactKey()] = i
		looseKey := positionsB[i].LooseKey()
		looseB[looseKey] = append(looseB[looseKey], i)
	}

	claimed := make(map[int]bool, len(positionsB))
	diffs := make([]entity.PositionDiff, 0, len(positionsA)+len(positionsB))

	for i := range positionsA {
		a := &positionsA[i]

		match := -1
		if j, ok := exactB[a.ExactKey()]; ok && !claimed[j] {
			match = j
		} else {
			for _, j := range looseB[a.LooseKey()] {
				if !claimed[j] {
					match = j
					break
				}
			}
		}

		if match < 0 {
			diffs = append(diffs, entity.PositionDiff{
				ProtocolName:     a.Protocol.Name,
				Chain:            a.Protocol.Chain,
				PositionType:     a.Type,
				DiffType:         entity.DiffRemoved,
				PositionA:        a,
				ValueDiffUSD:     -a.TotalValueUSD,
				ValueDiffPercent: -100,
			})
			continue
		}

		claimed[match] = true
		b := &positionsB[match]

		valueDiff := b.TotalValueUSD - a.TotalValueUSD
		percent := valueDiffPercent(a.TotalValueUSD, b.TotalValueUSD)
		diffType := entity.DiffUnchanged
		if math.Abs(percent) > materialityThresholdPercent {
			diffType = entity.DiffChanged
		}

		diffs = append(diffs, entity.PositionDiff{
			ProtocolName:     a.Protocol.Name,
			Chain:            a.Protocol.Chain,
			PositionType:     a.Type,
			DiffType:         diffType,
			PositionA:        a,
			PositionB:        b,
			ValueDiffUSD:     valueDiff,
			ValueDiffPercent: percent,
		})
	}

	for j := range positionsB {
		if claimed[j] {
			continue
		}
		b := &positionsB[j]
		diffs = append(diffs, entity.PositionDiff{
			ProtocolName:     b.Protocol.Name,
			Chain:            b.Protocol.Chain,
			PositionType:     b.Type,
			DiffType:         entity.DiffAdded,
			PositionB:        b,
			ValueDiffUSD:     b.TotalValueUSD,
			ValueDiffPercent: 100,
		})
	}

	sortDiffs(diffs)
	return diffs
}

// valueDiffPercent is the value delta as a percentage of the left side:
// 100% when the left side is zero and the right is not, 0% when both are.
func valueDiffPercent(valueA, valueB float64) float64 {
	if valueA > 0 {
		return (valueB - valueA) / valueA * 100
	}
	if valueB > 0 {
		return 100
	}
	return 0
}

var diffTypePrecedence = map[entity.DiffType]int{
	entity.DiffRemoved:   0,
	entity.DiffAdded:     1,
	entity.DiffChanged:   2,
	entity.DiffUnchanged: 3,
}

// sortDiffs orders removed < added < changed < unchanged, then by descending
// absolute value delta so the most material differences surface first
// regardless of direction. Protocol name, chain and type break remaining
// ties so the output is stable under input permutation.
func sortDiffs(diffs []entity.PositionDiff) {
	sort.SliceStable(diffs, func(i, j int) bool {
		if diffTypePrecedence[diffs[i].DiffType] != diffTypePrecedence[diffs[j].DiffType] {
			return diffTypePrecedence[diffs[i].DiffType] < diffTypePrecedence[diffs[j].DiffType]
		}
		absI, absJ := math.Abs(diffs[i].ValueDiffUSD), math.Abs(diffs[j].ValueDiffUSD)
		if absI != absJ {
			return absI > absJ
		}
		if diffs[i].ProtocolName != diffs[j].ProtocolName {
			return diffs[i].ProtocolName < diffs[j].ProtocolName
		}
		if diffs[i].Chain != diffs[j].Chain {
			return diffs[i].Chain < diffs[j].Chain
		}
		return diffs[i].PositionType < diffs[j].PositionType
	})
}

// summarize reduces the classified diff list plus both datasets' declared
// totals into the aggregate statistics. Counts come only from the diff list
// so the summary can never disagree with the detail; the total delta uses
// the datasets' own totals, which may cover positions the per-position
// comparison excluded.
func summarize(dataA, dataB *entity.AddressDefiData, diffs []entity.PositionDiff) entity.CompareSummary {
	summary := entity.CompareSummary{
		TotalValueDiffUSD:     dataB.TotalValueUSD - dataA.TotalValueUSD,
		TotalValueDiffPercent: valueDiffPercent(dataA.TotalValueUSD, dataB.TotalValueUSD),
	}
	for _, diff := range diffs {
		switch diff.DiffType {
		case entity.DiffRemoved:
			summary.PositionsOnlyInA++
		case entity.DiffAdded:
			summary.PositionsOnlyInB++
		case entity.DiffChanged:
			summary.ChangedPositions++
		case entity.DiffUnchanged:
			summary.CommonPositions++
		}
	}
	return summary
}
