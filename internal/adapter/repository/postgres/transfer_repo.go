package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gosepa/internal/domain"
	"github.com/iho/gosepa/internal/usecase"
)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

// Create inserts a transfer inside the given transaction.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.BatchTransfer) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transfers (
			id, batch_id, sequence, end_to_end_id, amount_cents,
			counterparty_name, counterparty_iban, counterparty_bic,
			remittance_information, mandate_id, mandate_sign_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := pgxTx.Exec(ctx, query,
		transfer.ID,
		transfer.BatchID,
		transfer.Sequence,
		transfer.EndToEndID,
		transfer.AmountCents,
		transfer.CounterpartyName,
		transfer.CounterpartyIBAN,
		transfer.CounterpartyBIC,
		transfer.RemittanceInformation,
		transfer.MandateID,
		transfer.MandateSignDate,
		transfer.CreatedAt,
	)

	return err
}

// ListByBatch retrieves the transfers of a batch in document order.
func (r *TransferRepository) ListByBatch(ctx context.Context, batchID string) ([]*domain.BatchTransfer, error) {
	query := `
		SELECT id, batch_id, sequence, end_to_end_id, amount_cents,
		       counterparty_name, counterparty_iban, counterparty_bic,
		       remittance_information, mandate_id, mandate_sign_date, created_at
		FROM transfers
		WHERE batch_id = $1
		ORDER BY sequence
	`

	rows, err := r.pool.Query(ctx, query, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*domain.BatchTransfer
	for rows.Next() {
		var t domain.BatchTransfer

		err := rows.Scan(
			&t.ID,
			&t.BatchID,
			&t.Sequence,
			&t.EndToEndID,
			&t.AmountCents,
			&t.CounterpartyName,
			&t.CounterpartyIBAN,
			&t.CounterpartyBIC,
			&t.RemittanceInformation,
			&t.MandateID,
			&t.MandateSignDate,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		transfers = append(transfers, &t)
	}

	return transfers, rows.Err()
}
