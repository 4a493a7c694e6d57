// Package testutil provides shared fakes and fixtures for tests.
package testutil

import (
	"context"
	"sync"

	"github.com/Veraticus/product-monitor/internal/service"
)

// Write records one call to a StoreWriter method.
type Write struct {
	Resource service.Resource
	Code     string
	Value    any
}

// MockStore is an in-memory service.RemoteStore with error injection.
type MockStore struct {
	ConfigErr         error
	ProductsErr       error
	IgnoreErr         error
	ClassificationErr error
	// Block, when set, is waited on by both reads before returning.
	Block          chan struct{}
	ConfigRecords  []service.Record
	ProductRecords []service.Record
	writes         []Write
	mu             sync.Mutex
}

var _ service.RemoteStore = (*MockStore)(nil)

// ClassConfig implements service.StoreReader.
func (m *MockStore) ClassConfig(ctx context.Context) ([]service.Record, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.ConfigErr != nil {
		return nil, m.ConfigErr
	}
	return m.ConfigRecords, nil
}

// Products implements service.StoreReader.
func (m *MockStore) Products(ctx context.Context) ([]service.Record, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.ProductsErr != nil {
		return nil, m.ProductsErr
	}
	return m.ProductRecords, nil
}

// MarkIgnored implements service.StoreWriter.
func (m *MockStore) MarkIgnored(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IgnoreErr != nil {
		return m.IgnoreErr
	}
	m.writes = append(m.writes, Write{Resource: service.ResourceIgnore, Code: code, Value: true})
	return nil
}

// SetClassification implements service.StoreWriter.
func (m *MockStore) SetClassification(_ context.Context, code, classification string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClassificationErr != nil {
		return m.ClassificationErr
	}
	m.writes = append(m.writes, Write{Resource: service.ResourceClassification, Code: code, Value: classification})
	return nil
}

// Writes returns the successful writes so far.
func (m *MockStore) Writes() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Write, len(m.writes))
	copy(out, m.writes)
	return out
}

func (m *MockStore) wait(ctx context.Context) error {
	if m.Block == nil {
		return nil
	}
	select {
	case <-m.Block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
