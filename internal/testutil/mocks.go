// Package testutil provides hand-written test doubles for the application
// ports.
package testutil

import (
	"context"
	"sync"

	"defi_compare/internal/domain/entity"
)

// FetchCall records one FetchDefiData invocation.
type FetchCall struct {
	Address    string
	ChainScope []string
}

// MockPositionProvider implements port.PositionProvider.
type MockPositionProvider struct {
	SourceValue       entity.DataSource
	FetchDefiDataFunc func(ctx context.Context, address string, chainScope []string) (*entity.AddressDefiData, error)

	mu    sync.Mutex
	calls []FetchCall
}

func NewMockPositionProvider(source entity.DataSource) *MockPositionProvider {
	return &MockPositionProvider{SourceValue: source}
}

func (m *MockPositionProvider) Source() entity.DataSource { return m.SourceValue }

func (m *MockPositionProvider) FetchDefiData(ctx context.Context, address string, chainScope []string) (*entity.AddressDefiData, error) {
	m.mu.Lock()
	m.calls = append(m.calls, FetchCall{Address: address, ChainScope: chainScope})
	m.mu.Unlock()
	if m.FetchDefiDataFunc != nil {
		return m.FetchDefiDataFunc(ctx, address, chainScope)
	}
	return entity.NewAddressDefiData(address, m.SourceValue, nil, nil), nil
}

// Calls returns a copy of the recorded invocations.
func (m *MockPositionProvider) Calls() []FetchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]FetchCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// MockDefiDataService implements port.DefiDataService.
type MockDefiDataService struct {
	GetAddressDefiDataFunc     func(ctx context.Context, address string, source entity.DataSource) (*entity.AddressDefiData, error)
	CompareAddressDefiDataFunc func(ctx context.Context, address string) (*entity.CompareResult, error)
}

func NewMockDefiDataService() *MockDefiDataService {
	return &MockDefiDataService{}
}

func (m *MockDefiDataService) GetAddressDefiData(ctx context.Context, address string, source entity.DataSource) (*entity.AddressDefiData, error) {
	if m.GetAddressDefiDataFunc != nil {
		return m.GetAddressDefiDataFunc(ctx, address, source)
	}
	return entity.NewAddressDefiData(address, source, nil, nil), nil
}

func (m *MockDefiDataService) CompareAddressDefiData(ctx context.Context, address string) (*entity.CompareResult, error) {
	if m.CompareAddressDefiDataFunc != nil {
		return m.CompareAddressDefiDataFunc(ctx, address)
	}
	return &entity.CompareResult{}, nil
}
