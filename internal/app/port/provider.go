package port

import (
	"context"

	"defi_compare/internal/domain/entity"
)

// PositionProvider is one provider's full fetch-and-normalize pipeline: it
// acquires the raw position data for an address and returns it as a
// canonical dataset. Raw provider shapes never cross this boundary.
type PositionProvider interface {
	// Source identifies which provider this is.
	Source() entity.DataSource

	// FetchDefiData fetches and normalizes an address's positions.
	// chainScope restricts the query to a set of provider network ids; nil
	// or empty means the provider's default scope. Providers whose API is
	// not partitioned by network ignore the scope. Per-chain failures are
	// absorbed as zero positions for that chain; only provider-level
	// failures return an error.
	FetchDefiData(ctx context.Context, address string, chainScope []string) (*entity.AddressDefiData, error)
}
