package port

import (
	"context"

	"defi_compare/internal/domain/entity"
)

// DefiDataService is the request-facing surface of the core: single-source
// dataset retrieval and the cross-provider comparison.
type DefiDataService interface {
	// GetAddressDefiData returns one provider's normalized view of an address.
	GetAddressDefiData(ctx context.Context, address string, source entity.DataSource) (*entity.AddressDefiData, error)

	// CompareAddressDefiData fetches both providers' views of an address and
	// reconciles them. The second provider's query scope is aligned to the
	// chains the first provider discovered, so its fetch is strictly ordered
	// after the first one's completion.
	CompareAddressDefiData(ctx context.Context, address string) (*entity.CompareResult, error)
}

// CompareService pairs two canonical datasets, classifies every pairing and
// aggregates the summary. Pure computation: no I/O, no retained state.
type CompareService interface {
	Compare(dataA, dataB *entity.AddressDefiData) *entity.CompareResult
}
