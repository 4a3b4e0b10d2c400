package usecase

import (
	"context"
	"time"

	"github.com/iho/gosepa/internal/domain"
)

// BatchRepository defines data access for payment batches.
type BatchRepository interface {
	Create(ctx context.Context, batch *domain.Batch) error
	GetByID(ctx context.Context, id string) (*domain.Batch, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Batch, error)
	IncrementAggregates(ctx context.Context, tx Transaction, id string, deltaCount int, deltaSumCents int64, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Batch, error)
}

// TransferRepository defines data access for stored batch transfers.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.BatchTransfer) error
	ListByBatch(ctx context.Context, batchID string) ([]*domain.BatchTransfer, error)
}

// DocumentRepository defines data access for generated documents.
type DocumentRepository interface {
	Create(ctx context.Context, document *domain.Document) error
	GetByBatch(ctx context.Context, batchID string) (*domain.Document, error)
}

// DocumentRenderer renders an assembled transfer file into pain XML.
type DocumentRenderer interface {
	Render(file *domain.TransferFile) ([]byte, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
