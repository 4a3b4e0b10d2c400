package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gosepa/internal/domain"
)

// DocumentRepository implements usecase.DocumentRepository.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// Create stores a generated document.
func (r *DocumentRepository) Create(ctx context.Context, document *domain.Document) error {
	query := `
		INSERT INTO documents (
			id, batch_id, message_id, pain_format,
			number_of_transactions, control_sum_cents, xml, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		document.ID,
		document.BatchID,
		document.MessageID,
		document.PainFormat,
		document.NumberOfTransactions,
		document.ControlSumCents,
		document.XML,
		document.CreatedAt,
	)

	return err
}

// GetByBatch retrieves the most recently generated document for a batch.
func (r *DocumentRepository) GetByBatch(ctx context.Context, batchID string) (*domain.Document, error) {
	query := `
		SELECT id, batch_id, message_id, pain_format,
		       number_of_transactions, control_sum_cents, xml, created_at
		FROM documents
		WHERE batch_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var doc domain.Document

	err := r.pool.QueryRow(ctx, query, batchID).Scan(
		&doc.ID,
		&doc.BatchID,
		&doc.MessageID,
		&doc.PainFormat,
		&doc.NumberOfTransactions,
		&doc.ControlSumCents,
		&doc.XML,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}

		return nil, err
	}

	return &doc, nil
}
