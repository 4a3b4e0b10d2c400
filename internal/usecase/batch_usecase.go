package usecase

import (
	"context"
	"time"

	"github.com/iho/gosepa/internal/domain"
	"github.com/iho/gosepa/internal/infrastructure/metrics"
)

// BatchUseCase handles payment batch assembly.
type BatchUseCase struct {
	txManager    TransactionManager
	batchRepo    BatchRepository
	transferRepo TransferRepository
	idGen        IDGenerator
	retrier      Retrier
	metrics      *metrics.Metrics
}

// NewBatchUseCase creates a new BatchUseCase. Metrics are optional; pass nil
// to disable them.
func NewBatchUseCase(
	txManager TransactionManager,
	batchRepo BatchRepository,
	transferRepo TransferRepository,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
) *BatchUseCase {
	return &BatchUseCase{
		txManager:    txManager,
		batchRepo:    batchRepo,
		transferRepo: transferRepo,
		idGen:        idGen,
		retrier:      retrier,
		metrics:      m,
	}
}

// CreateBatchInput represents input for creating a batch.
type CreateBatchInput struct {
	Type                string
	OriginName          string
	OriginIBAN          string
	OriginBIC           string
	Currency            string
	DueDate             *time.Time
	CreditorID          string
	SequenceType        string
	LocalInstrument     string
	ServiceLevel        string
	InstructionPriority string
	CategoryPurpose     string
	BatchBooking        *bool
}

// CreateBatch validates and stores a new payment batch. Validation runs the
// input through the domain assembly path, so every enumeration rule that
// guards document generation also guards batch creation.
func (uc *BatchUseCase) CreateBatch(ctx context.Context, input CreateBatchInput) (*domain.Batch, error) {
	now := time.Now().UTC()

	batch := &domain.Batch{
		ID:                  uc.idGen.Generate(),
		Type:                input.Type,
		OriginName:          input.OriginName,
		OriginIBAN:          input.OriginIBAN,
		OriginBIC:           input.OriginBIC,
		Currency:            input.Currency,
		CreditorID:          input.CreditorID,
		SequenceType:        input.SequenceType,
		LocalInstrument:     input.LocalInstrument,
		ServiceLevel:        input.ServiceLevel,
		InstructionPriority: input.InstructionPriority,
		CategoryPurpose:     input.CategoryPurpose,
		BatchBooking:        input.BatchBooking,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if input.DueDate != nil {
		batch.DueDate = *input.DueDate
	} else {
		batch.DueDate = now
	}

	if batch.Type == domain.BatchTypeDirectDebit {
		if batch.SequenceType == "" {
			batch.SequenceType = domain.SequenceTypeOneOff
		}
		if batch.LocalInstrument == "" {
			batch.LocalInstrument = domain.LocalInstrumentCore
		}
	}

	if _, err := domain.AssembleTransferFile(batch, nil, batch.ID); err != nil {
		if uc.metrics != nil {
			uc.metrics.ValidationFailures.WithLabelValues("create_batch").Inc()
		}
		return nil, err
	}

	if err := uc.batchRepo.Create(ctx, batch); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.BatchesCreated.WithLabelValues(batch.Type).Inc()
	}

	return batch, nil
}

// TransferInput represents one transfer to append to a batch.
type TransferInput struct {
	EndToEndID            string
	AmountCents           int64
	CounterpartyName      string
	CounterpartyIBAN      string
	CounterpartyBIC       string
	RemittanceInformation string
	MandateID             string
	MandateSignDate       *time.Time
}

// AddTransfersInput represents input for appending transfers to a batch.
type AddTransfersInput struct {
	BatchID   string
	Transfers []TransferInput
}

// AddTransfers appends transfers to a batch and updates the stored
// aggregates in the same transaction, keeping the count and control sum
// invariants intact under concurrent writers. Retries on transient
// serialization errors.
func (uc *BatchUseCase) AddTransfers(ctx context.Context, input AddTransfersInput) ([]*domain.BatchTransfer, error) {
	var created []*domain.BatchTransfer

	err := uc.retrier.Retry(ctx, func() error {
		var err error

		created, err = uc.addTransfersOnce(ctx, input)

		return err
	})
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.ValidationFailures.WithLabelValues("add_transfers").Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersAttached.Add(float64(len(created)))
		for _, t := range created {
			uc.metrics.TransferAmount.Observe(float64(t.AmountCents))
		}
	}

	return created, nil
}

func (uc *BatchUseCase) addTransfersOnce(ctx context.Context, input AddTransfersInput) ([]*domain.BatchTransfer, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	batch, err := uc.batchRepo.GetByIDForUpdate(ctx, tx, input.BatchID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var (
		created  []*domain.BatchTransfer
		sumCents int64
	)

	for i, ti := range input.Transfers {
		transfer := &domain.BatchTransfer{
			ID:                    uc.idGen.Generate(),
			BatchID:               batch.ID,
			Sequence:              batch.NumberOfTransactions + i + 1,
			EndToEndID:            ti.EndToEndID,
			AmountCents:           ti.AmountCents,
			CounterpartyName:      ti.CounterpartyName,
			CounterpartyIBAN:      ti.CounterpartyIBAN,
			CounterpartyBIC:       ti.CounterpartyBIC,
			RemittanceInformation: ti.RemittanceInformation,
			MandateID:             ti.MandateID,
			MandateSignDate:       ti.MandateSignDate,
			CreatedAt:             now,
		}
		if transfer.EndToEndID == "" {
			transfer.EndToEndID = transfer.ID
		}

		if err := transfer.Validate(); err != nil {
			return nil, err
		}

		// Direct debit transfers must carry a usable mandate; reject them at
		// intake instead of at document generation.
		if _, err := domain.AssembleTransferFile(batch, []*domain.BatchTransfer{transfer}, batch.ID); err != nil {
			return nil, err
		}

		if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
			return nil, err
		}

		created = append(created, transfer)
		sumCents += transfer.AmountCents
	}

	err = uc.batchRepo.IncrementAggregates(ctx, tx, batch.ID, len(created), sumCents, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// GetBatch retrieves a batch by ID.
func (uc *BatchUseCase) GetBatch(ctx context.Context, id string) (*domain.Batch, error) {
	return uc.batchRepo.GetByID(ctx, id)
}

// ListBatchesInput represents input for listing batches.
type ListBatchesInput struct {
	Limit  int
	Offset int
}

// ListBatches lists stored batches.
func (uc *BatchUseCase) ListBatches(ctx context.Context, input ListBatchesInput) ([]*domain.Batch, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.batchRepo.List(ctx, input.Limit, input.Offset)
}

// ListTransfers lists the stored transfers of a batch in insertion order.
func (uc *BatchUseCase) ListTransfers(ctx context.Context, batchID string) ([]*domain.BatchTransfer, error) {
	if _, err := uc.batchRepo.GetByID(ctx, batchID); err != nil {
		return nil, err
	}

	return uc.transferRepo.ListByBatch(ctx, batchID)
}
