package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gosepa/internal/domain"
	"github.com/iho/gosepa/internal/usecase"
)

const batchColumns = `
	id, type, origin_name, origin_iban, origin_bic, currency, due_date,
	creditor_id, sequence_type, local_instrument, service_level,
	instruction_priority, category_purpose, batch_booking,
	number_of_transactions, control_sum_cents, created_at, updated_at
`

// BatchRepository implements usecase.BatchRepository.
type BatchRepository struct {
	pool *pgxpool.Pool
}

// NewBatchRepository creates a new BatchRepository.
func NewBatchRepository(pool *pgxpool.Pool) *BatchRepository {
	return &BatchRepository{pool: pool}
}

// Create creates a new batch.
func (r *BatchRepository) Create(ctx context.Context, batch *domain.Batch) error {
	query := `
		INSERT INTO batches (
			id, type, origin_name, origin_iban, origin_bic, currency, due_date,
			creditor_id, sequence_type, local_instrument, service_level,
			instruction_priority, category_purpose, batch_booking,
			number_of_transactions, control_sum_cents, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.pool.Exec(ctx, query,
		batch.ID,
		batch.Type,
		batch.OriginName,
		batch.OriginIBAN,
		batch.OriginBIC,
		batch.Currency,
		batch.DueDate,
		batch.CreditorID,
		batch.SequenceType,
		batch.LocalInstrument,
		batch.ServiceLevel,
		batch.InstructionPriority,
		batch.CategoryPurpose,
		batch.BatchBooking,
		batch.NumberOfTransactions,
		batch.ControlSumCents,
		batch.CreatedAt,
		batch.UpdatedAt,
	)

	return err
}

// GetByID retrieves a batch by ID.
func (r *BatchRepository) GetByID(ctx context.Context, id string) (*domain.Batch, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id)

	return scanBatch(row)
}

// GetByIDForUpdate retrieves a batch by ID with a FOR UPDATE lock.
func (r *BatchRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Batch, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1 FOR UPDATE`, id)

	return scanBatch(row)
}

// IncrementAggregates adds to the stored transaction count and control sum.
// Must run inside the same transaction as the transfer inserts it accounts for.
func (r *BatchRepository) IncrementAggregates(ctx context.Context, tx usecase.Transaction, id string, deltaCount int, deltaSumCents int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE batches
		SET number_of_transactions = number_of_transactions + $2,
		    control_sum_cents = control_sum_cents + $3,
		    updated_at = $4
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, id, deltaCount, deltaSumCents, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBatchNotFound
	}

	return nil
}

// List retrieves batches ordered by creation time, newest first.
func (r *BatchRepository) List(ctx context.Context, limit, offset int) ([]*domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*domain.Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}

	return batches, rows.Err()
}

func scanBatch(row pgx.Row) (*domain.Batch, error) {
	var batch domain.Batch

	err := row.Scan(
		&batch.ID,
		&batch.Type,
		&batch.OriginName,
		&batch.OriginIBAN,
		&batch.OriginBIC,
		&batch.Currency,
		&batch.DueDate,
		&batch.CreditorID,
		&batch.SequenceType,
		&batch.LocalInstrument,
		&batch.ServiceLevel,
		&batch.InstructionPriority,
		&batch.CategoryPurpose,
		&batch.BatchBooking,
		&batch.NumberOfTransactions,
		&batch.ControlSumCents,
		&batch.CreatedAt,
		&batch.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBatchNotFound
		}

		return nil, err
	}

	return &batch, nil
}
