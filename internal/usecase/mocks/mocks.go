// Package mocks provides hand-written mocks for the usecase ports.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/gosepa/internal/domain"
	"github.com/iho/gosepa/internal/usecase"
)

// MockBatchRepository is a mock implementation of BatchRepository.
type MockBatchRepository struct {
	mu      sync.RWMutex
	batches map[string]*domain.Batch

	CreateFunc              func(ctx context.Context, batch *domain.Batch) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Batch, error)
	GetByIDForUpdateFunc    func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Batch, error)
	IncrementAggregatesFunc func(ctx context.Context, tx usecase.Transaction, id string, deltaCount int, deltaSumCents int64, updatedAt time.Time) error
	ListFunc                func(ctx context.Context, limit, offset int) ([]*domain.Batch, error)
}

func NewMockBatchRepository() *MockBatchRepository {
	return &MockBatchRepository{
		batches: make(map[string]*domain.Batch),
	}
}

func (m *MockBatchRepository) Create(ctx context.Context, batch *domain.Batch) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, batch)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches[batch.ID] = batch
	return nil
}

func (m *MockBatchRepository) GetByID(ctx context.Context, id string) (*domain.Batch, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if batch, ok := m.batches[id]; ok {
		return batch, nil
	}
	return nil, domain.ErrBatchNotFound
}

func (m *MockBatchRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Batch, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockBatchRepository) IncrementAggregates(ctx context.Context, tx usecase.Transaction, id string, deltaCount int, deltaSumCents int64, updatedAt time.Time) error {
	if m.IncrementAggregatesFunc != nil {
		return m.IncrementAggregatesFunc(ctx, tx, id, deltaCount, deltaSumCents, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	batch, ok := m.batches[id]
	if !ok {
		return domain.ErrBatchNotFound
	}
	batch.NumberOfTransactions += deltaCount
	batch.ControlSumCents += deltaSumCents
	batch.UpdatedAt = updatedAt
	return nil
}

func (m *MockBatchRepository) List(ctx context.Context, limit, offset int) ([]*domain.Batch, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	batches := make([]*domain.Batch, 0, len(m.batches))
	for _, b := range m.batches {
		batches = append(batches, b)
	}
	return batches, nil
}

// MockTransferRepository is a mock implementation of TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers []*domain.BatchTransfer

	CreateFunc      func(ctx context.Context, tx usecase.Transaction, transfer *domain.BatchTransfer) error
	ListByBatchFunc func(ctx context.Context, batchID string) ([]*domain.BatchTransfer, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{}
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.BatchTransfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers = append(m.transfers, transfer)
	return nil
}

func (m *MockTransferRepository) ListByBatch(ctx context.Context, batchID string) ([]*domain.BatchTransfer, error) {
	if m.ListByBatchFunc != nil {
		return m.ListByBatchFunc(ctx, batchID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.BatchTransfer
	for _, t := range m.transfers {
		if t.BatchID == batchID {
			result = append(result, t)
		}
	}
	return result, nil
}

// MockDocumentRepository is a mock implementation of DocumentRepository.
type MockDocumentRepository struct {
	mu        sync.RWMutex
	documents map[string]*domain.Document

	CreateFunc     func(ctx context.Context, document *domain.Document) error
	GetByBatchFunc func(ctx context.Context, batchID string) (*domain.Document, error)
}

func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{
		documents: make(map[string]*domain.Document),
	}
}

func (m *MockDocumentRepository) Create(ctx context.Context, document *domain.Document) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, document)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[document.BatchID] = document
	return nil
}

func (m *MockDocumentRepository) GetByBatch(ctx context.Context, batchID string) (*domain.Document, error) {
	if m.GetByBatchFunc != nil {
		return m.GetByBatchFunc(ctx, batchID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if doc, ok := m.documents[batchID]; ok {
		return doc, nil
	}
	return nil, domain.ErrDocumentNotFound
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// once without retrying.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// MockRenderer is a mock implementation of DocumentRenderer.
type MockRenderer struct {
	RenderFunc func(file *domain.TransferFile) ([]byte, error)
}

func NewMockRenderer() *MockRenderer {
	return &MockRenderer{}
}

func (m *MockRenderer) Render(file *domain.TransferFile) ([]byte, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(file)
	}
	return []byte("<Document/>"), nil
}
