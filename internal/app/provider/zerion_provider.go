package provider

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"defi_compare/internal/domain/entity"
	"defi_compare/internal/infrastructure/httpclient"
	"defi_compare/internal/pkg/metrics"
)

// ZerionProvider implements port.PositionProvider on top of the Zerion
// wallet API. Zerion serves all chains from one positions call, so the
// chain scope is ignored here.
type ZerionProvider struct {
	client httpclient.ZerionClient
	logger *zap.Logger
}

// NewZerionProvider creates the Zerion-side provider pipeline.
func NewZerionProvider(client httpclient.ZerionClient, logger *zap.Logger) *ZerionProvider {
	return &ZerionProvider{
		client: client,
		logger: logger.Named("ZerionProvider"),
	}
}

// Source implements port.PositionProvider.
func (p *ZerionProvider) Source() entity.DataSource { return entity.SourceZerion }

// FetchDefiData implements port.PositionProvider. A failed positions call is
// a provider-level failure and propagates; the portfolio-summary call only
// feeds the dataset's reported total, so its failure degrades to a
// position-sum total instead of failing the fetch.
func (p *ZerionProvider) FetchDefiData(ctx context.Context, address string, _ []string) (*entity.AddressDefiData, error) {
	start := time.Now()
	defer func() {
		metrics.ProviderFetchDuration.WithLabelValues(string(entity.SourceZerion)).Observe(time.Since(start).Seconds())
	}()

	positionsResp, err := p.client.GetPositions(ctx, address)
	if err != nil {
		return nil, &entity.ProviderError{
			Provider: string(entity.SourceZerion),
			Message:  fmt.Sprintf("positions fetch failed: %v", err),
			Err:      err,
		}
	}

	positions := make([]entity.Position, 0, len(positionsResp.Data))
	for i, raw := range positionsResp.Data {
		positions = append(positions, normalizeZerionPosition(raw, i))
	}

	var reportedTotal *float64
	if portfolio, err := p.client.GetPortfolio(ctx, address); err != nil {
		p.logger.Warn("Zerion portfolio total unavailable, falling back to position sum",
			zap.String("address", address),
			zap.Error(err))
	} else {
		total := portfolio.Data.Attributes.Total.Positions
		reportedTotal = &total
	}

	data := entity.NewAddressDefiData(address, entity.SourceZerion, positions, reportedTotal)
	p.logger.Debug("Fetched Zerion dataset",
		zap.String("address", data.Address),
		zap.Int("positionCount", len(data.Positions)),
		zap.Strings("chains", data.Chains),
		zap.Float64("totalValueUSD", data.TotalValueUSD))
	return data, nil
}
