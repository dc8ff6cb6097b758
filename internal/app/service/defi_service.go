package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"defi_compare/internal/app/port"
	"defi_compare/internal/domain/entity"
	"defi_compare/internal/infrastructure/chainmap"
)

// DefiServiceImpl implements port.DefiDataService. It owns source selection,
// the cross-provider chain-scope alignment for comparisons, and a short-TTL cache of
// immutable result snapshots. A provider is registered only when its
// credential is configured, so a missing credential surfaces before any
// network call.
type DefiServiceImpl struct {
	providers  map[entity.DataSource]port.PositionProvider
	compareSvc port.CompareService
	cache      *cache.Cache
	logger     *zap.Logger
}

// NewDefiDataService creates a new DefiServiceImpl. cacheTTL <= 0 disables
// caching.
func NewDefiDataService(
	providers []port.PositionProvider,
	compareSvc port.CompareService,
	cacheTTL time.Duration,
	logger *zap.Logger,
) port.DefiDataService {
	bySource := make(map[entity.DataSource]port.PositionProvider, len(providers))
	for _, p := range providers {
		bySource[p.Source()] = p
	}

	var resultCache *cache.Cache
	if cacheTTL > 0 {
		resultCache = cache.New(cacheTTL, 2*cacheTTL)
	}

	return &DefiServiceImpl{
		providers:  bySource,
		compareSvc: compareSvc,
		cache:      resultCache,
		logger:     logger.Named("DefiService"),
	}
}

// GetAddressDefiData implements port.DefiDataService.
func (s *DefiServiceImpl) GetAddressDefiData(ctx context.Context, address string, source entity.DataSource) (*entity.AddressDefiData, error) {
	provider, err := s.provider(source)
	if err != nil {
		return nil, err
	}

	cacheKey := string(source) + ":" + strings.ToLower(address)
	if s.cache != nil {
		if cached, found := s.cache.Get(cacheKey); found {
			s.logger.Debug("Dataset served from cache", zap.String("key", cacheKey))
			return cached.(*entity.AddressDefiData), nil
		}
	}

	data, err := provider.FetchDefiData(ctx, address, nil)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetDefault(cacheKey, data)
	}
	return data, nil
}

// CompareAddressDefiData implements port.DefiDataService. The Zerion fetch
// completes first because its discovered chains bound the DeBank query
// scope; that ordering is a data dependency, not a lock.
func (s *DefiServiceImpl) CompareAddressDefiData(ctx context.Context, address string) (*entity.CompareResult, error) {
	providerA, err := s.provider(entity.SourceZerion)
	if err != nil {
		return nil, err
	}
	providerB, err := s.provider(entity.SourceDebank)
	if err != nil {
		return nil, err
	}

	cacheKey := "compare:" + strings.ToLower(address)
	if s.cache != nil {
		if cached, found := s.cache.Get(cacheKey); found {
			s.logger.Debug("Compare result served from cache", zap.String("key", cacheKey))
			return cached.(*entity.CompareResult), nil
		}
	}

	dataA, err := providerA.FetchDefiData(ctx, address, nil)
	if err != nil {
		return nil, err
	}

	scope := alignChainScope(dataA.Chains)
	s.logger.Debug("Aligned provider B chain scope",
		zap.Strings("discoveredChains", dataA.Chains),
		zap.Strings("scope", scope))

	dataB, err := providerB.FetchDefiData(ctx, address, scope)
	if err != nil {
		return nil, err
	}

	result := s.compareSvc.Compare(dataA, dataB)
	if s.cache != nil {
		s.cache.SetDefault(cacheKey, result)
	}
	return result, nil
}

func (s *DefiServiceImpl) provider(source entity.DataSource) (port.PositionProvider, error) {
	switch source {
	case entity.SourceZerion, entity.SourceDebank:
	default:
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownSource, source)
	}
	provider, ok := s.providers[source]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrConfigurationMissing, source)
	}
	return provider, nil
}

// alignChainScope translates canonical chain ids discovered by provider A
// into provider B network ids. Chains with no translation are dropped: they
// cannot be queried on the B side. An empty result falls back to B's default
// scope.
func alignChainScope(canonicalChains []string) []string {
	scope := make([]string, 0, len(canonicalChains))
	for _, chain := range canonicalChains {
		if network, ok := chainmap.ToProviderNetwork(chain); ok {
			scope = append(scope, network)
		}
	}
	if len(scope) == 0 {
		return nil
	}
	return scope
}
