package entity

// DiffType classifies one reconciliation outcome.
type DiffType string

const (
	DiffAdded     DiffType = "added"     // present only in dataset B
	DiffRemoved   DiffType = "removed"   // present only in dataset A
	DiffChanged   DiffType = "changed"   // matched, value moved beyond the materiality threshold
	DiffUnchanged DiffType = "unchanged" // matched, value within the threshold
)

// PositionDiff is one pairing outcome between the two datasets.
// PositionA is nil iff the diff is added; PositionB is nil iff removed.
type PositionDiff struct {
	ProtocolName     string       `json:"protocolName"`
	Chain            string       `json:"chain"`
	PositionType     PositionType `json:"positionType"`
	DiffType         DiffType     `json:"diffType"`
	PositionA        *Position    `json:"positionA,omitempty"`
	PositionB        *Position    `json:"positionB,omitempty"`
	ValueDiffUSD     float64      `json:"valueDiffUSD"`
	ValueDiffPercent float64      `json:"valueDiffPercent"`
}

// CompareSummary aggregates the classified diff list plus the two datasets'
// declared totals.
type CompareSummary struct {
	TotalValueDiffUSD     float64 `json:"totalValueDiffUSD"`
	TotalValueDiffPercent float64 `json:"totalValueDiffPercent"`
	PositionsOnlyInA      int     `json:"positionsOnlyInA"`
	PositionsOnlyInB      int     `json:"positionsOnlyInB"`
	CommonPositions       int     `json:"commonPositions"`
	ChangedPositions      int     `json:"changedPositions"`
}

// CompareResult is the full reconciliation output returned to the caller.
type CompareResult struct {
	DataA   *AddressDefiData `json:"dataA"`
	DataB   *AddressDefiData `json:"dataB"`
	Summary CompareSummary   `json:"summary"`
	Diffs   []PositionDiff   `json:"diffs"`
}
