package provider

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"defi_compare/internal/domain/entity"
	"defi_compare/internal/infrastructure/chainmap"
	"defi_compare/internal/infrastructure/httpclient"
	"defi_compare/internal/pkg/metrics"
)

// DebankProvider implements port.PositionProvider on top of the DeBank API,
// which is partitioned by network id: one call per chain in the scope, all
// issued concurrently with join-all semantics. A chain that fails
// contributes zero positions and never fails the overall fetch; an outage on
// one chain must not block visibility into the others.
type DebankProvider struct {
	client              httpclient.DebankClient
	maxConcurrentChains int
	logger              *zap.Logger
}

// NewDebankProvider creates the DeBank-side provider pipeline.
func NewDebankProvider(client httpclient.DebankClient, maxConcurrentChains int, logger *zap.Logger) *DebankProvider {
	if maxConcurrentChains <= 0 {
		maxConcurrentChains = 8
	}
	return &DebankProvider{
		client:              client,
		maxConcurrentChains: maxConcurrentChains,
		logger:              logger.Named("DebankProvider"),
	}
}

// Source implements port.PositionProvider.
func (p *DebankProvider) Source() entity.DataSource { return entity.SourceDebank }

// FetchDefiData implements port.PositionProvider. An empty chainScope falls
// back to the default primary-network set.
func (p *DebankProvider) FetchDefiData(ctx context.Context, address string, chainScope []string) (*entity.AddressDefiData, error) {
	start := time.Now()
	defer func() {
		metrics.ProviderFetchDuration.WithLabelValues(string(entity.SourceDebank)).Observe(time.Since(start).Seconds())
	}()

	if len(chainScope) == 0 {
		chainScope = chainmap.PrimaryNetworks()
	}

	// Each task writes only its own slot; the join is the only
	// synchronization point.
	perChain := make([][]entity.Position, len(chainScope))

	var g errgroup.Group
	g.SetLimit(p.maxConcurrentChains)
	for i, networkID := range chainScope {
		i, networkID := i, networkID
		g.Go(func() error {
			protocols, err := p.client.GetChainPositions(ctx, networkID, address)
			if err != nil {
				metrics.ChainFetchFailuresTotal.WithLabelValues(string(entity.SourceDebank), networkID).Inc()
				p.logger.Warn("DeBank chain fetch failed, contributing zero positions",
					zap.String("networkID", networkID),
					zap.String("address", address),
					zap.Error(err))
				return nil
			}
			perChain[i] = normalizeDebankProtocols(protocols, networkID)
			return nil
		})
	}
	// Tasks never return errors across the barrier; Wait is a pure join.
	_ = g.Wait()

	positions := make([]entity.Position, 0)
	for _, chainPositions := range perChain {
		positions = append(positions, chainPositions...)
	}

	data := entity.NewAddressDefiData(address, entity.SourceDebank, positions, nil)
	p.logger.Debug("Fetched DeBank dataset",
		zap.String("address", data.Address),
		zap.Int("chainsQueried", len(chainScope)),
		zap.Int("positionCount", len(data.Positions)),
		zap.Float64("totalValueUSD", data.TotalValueUSD))
	return data, nil
}
