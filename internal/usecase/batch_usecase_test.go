package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/gosepa/internal/domain"
	"github.com/iho/gosepa/internal/usecase"
	"github.com/iho/gosepa/internal/usecase/mocks"
)

func newBatchUseCase() (*usecase.BatchUseCase, *mocks.MockBatchRepository, *mocks.MockTransferRepository) {
	batchRepo := mocks.NewMockBatchRepository()
	transferRepo := mocks.NewMockTransferRepository()
	uc := usecase.NewBatchUseCase(
		mocks.NewMockTransactionManager(),
		batchRepo,
		transferRepo,
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		nil,
	)

	return uc, batchRepo, transferRepo
}

func validCreditBatchInput() usecase.CreateBatchInput {
	return usecase.CreateBatchInput{
		Type:       domain.BatchTypeCreditTransfer,
		OriginName: "ACME Corp",
		OriginIBAN: "FR7630006000011234567890189",
		OriginBIC:  "AGRIFRPP",
	}
}

func TestBatchUseCase_CreateBatch(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateBatchInput
		expectError error
	}{
		{
			name:  "valid credit transfer batch",
			input: validCreditBatchInput(),
		},
		{
			name: "valid direct debit batch gets defaults",
			input: usecase.CreateBatchInput{
				Type:       domain.BatchTypeDirectDebit,
				OriginName: "ACME Corp",
				OriginIBAN: "FR7630006000011234567890189",
				OriginBIC:  "AGRIFRPP",
				CreditorID: "FR72ZZZ123456",
			},
		},
		{
			name: "unknown batch type",
			input: usecase.CreateBatchInput{
				Type:       "cheque",
				OriginName: "ACME Corp",
				OriginIBAN: "FR7630006000011234567890189",
				OriginBIC:  "AGRIFRPP",
			},
			expectError: domain.ErrUnknownBatchType,
		},
		{
			name: "invalid service level",
			input: func() usecase.CreateBatchInput {
				in := validCreditBatchInput()
				in.ServiceLevel = "FOO"
				return in
			}(),
			expectError: domain.ErrInvalidConfiguration,
		},
		{
			name: "invalid instruction priority",
			input: func() usecase.CreateBatchInput {
				in := validCreditBatchInput()
				in.InstructionPriority = "URGENT"
				return in
			}(),
			expectError: domain.ErrInvalidConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newBatchUseCase()

			batch, err := uc.CreateBatch(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if batch.ID == "" {
				t.Error("expected generated batch ID")
			}
			if batch.DueDate.IsZero() {
				t.Error("expected due date to default to now")
			}

			if tt.input.Type == domain.BatchTypeDirectDebit {
				if batch.SequenceType != domain.SequenceTypeOneOff {
					t.Errorf("expected default sequence type OOFF, got %s", batch.SequenceType)
				}
				if batch.LocalInstrument != domain.LocalInstrumentCore {
					t.Errorf("expected default local instrument CORE, got %s", batch.LocalInstrument)
				}
			}
		})
	}
}

func TestBatchUseCase_AddTransfers(t *testing.T) {
	uc, batchRepo, transferRepo := newBatchUseCase()

	batch, err := uc.CreateBatch(context.Background(), validCreditBatchInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created, err := uc.AddTransfers(context.Background(), usecase.AddTransfersInput{
		BatchID: batch.ID,
		Transfers: []usecase.TransferInput{
			{AmountCents: 1000, CounterpartyName: "Alpha", CounterpartyIBAN: "IBAN-A", CounterpartyBIC: "BIC-A"},
			{AmountCents: 2500, CounterpartyName: "Beta", CounterpartyIBAN: "IBAN-B", CounterpartyBIC: "BIC-B"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(created) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(created))
	}
	for i, tr := range created {
		if tr.EndToEndID == "" {
			t.Error("expected end-to-end ID to default to the transfer ID")
		}
		if tr.Sequence != i+1 {
			t.Errorf("expected sequence %d, got %d", i+1, tr.Sequence)
		}
	}

	stored, err := batchRepo.GetByID(context.Background(), batch.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.NumberOfTransactions != 2 {
		t.Errorf("expected aggregate count 2, got %d", stored.NumberOfTransactions)
	}
	if stored.ControlSumCents != 3500 {
		t.Errorf("expected aggregate control sum 3500, got %d", stored.ControlSumCents)
	}

	transfers, err := transferRepo.ListByBatch(context.Background(), batch.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transfers) != 2 {
		t.Errorf("expected 2 stored transfers, got %d", len(transfers))
	}
}

func TestBatchUseCase_AddTransfers_RejectsInvalidAmount(t *testing.T) {
	uc, batchRepo, _ := newBatchUseCase()

	batch, err := uc.CreateBatch(context.Background(), validCreditBatchInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = uc.AddTransfers(context.Background(), usecase.AddTransfersInput{
		BatchID: batch.ID,
		Transfers: []usecase.TransferInput{
			{AmountCents: 0, CounterpartyName: "Alpha", CounterpartyIBAN: "IBAN-A", CounterpartyBIC: "BIC-A"},
		},
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	stored, _ := batchRepo.GetByID(context.Background(), batch.ID)
	if stored.NumberOfTransactions != 0 || stored.ControlSumCents != 0 {
		t.Error("rejected transfer must not alter aggregates")
	}
}

func TestBatchUseCase_AddTransfers_DirectDebitRequiresMandate(t *testing.T) {
	uc, _, _ := newBatchUseCase()

	batch, err := uc.CreateBatch(context.Background(), usecase.CreateBatchInput{
		Type:       domain.BatchTypeDirectDebit,
		OriginName: "ACME Corp",
		OriginIBAN: "FR7630006000011234567890189",
		OriginBIC:  "AGRIFRPP",
		CreditorID: "FR72ZZZ123456",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = uc.AddTransfers(context.Background(), usecase.AddTransfersInput{
		BatchID: batch.ID,
		Transfers: []usecase.TransferInput{
			{AmountCents: 1000, CounterpartyName: "Alpha", CounterpartyIBAN: "IBAN-A", CounterpartyBIC: "BIC-A"},
		},
	})
	if !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration for missing mandate, got %v", err)
	}

	signDate := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	created, err := uc.AddTransfers(context.Background(), usecase.AddTransfersInput{
		BatchID: batch.ID,
		Transfers: []usecase.TransferInput{
			{
				AmountCents:      1000,
				CounterpartyName: "Alpha",
				CounterpartyIBAN: "IBAN-A",
				CounterpartyBIC:  "BIC-A",
				MandateID:        "MNDT-1",
				MandateSignDate:  &signDate,
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 transfer, got %d", len(created))
	}
}

func TestBatchUseCase_AddTransfers_UnknownBatch(t *testing.T) {
	uc, _, _ := newBatchUseCase()

	_, err := uc.AddTransfers(context.Background(), usecase.AddTransfersInput{
		BatchID: "missing",
		Transfers: []usecase.TransferInput{
			{AmountCents: 1000, CounterpartyName: "Alpha", CounterpartyIBAN: "IBAN-A", CounterpartyBIC: "BIC-A"},
		},
	})
	if !errors.Is(err, domain.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound, got %v", err)
	}
}

func TestBatchUseCase_ListBatches_LimitClamped(t *testing.T) {
	batchRepo := mocks.NewMockBatchRepository()

	var gotLimit int
	batchRepo.ListFunc = func(ctx context.Context, limit, offset int) ([]*domain.Batch, error) {
		gotLimit = limit
		return nil, nil
	}

	uc := usecase.NewBatchUseCase(
		mocks.NewMockTransactionManager(),
		batchRepo,
		mocks.NewMockTransferRepository(),
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		nil,
	)

	if _, err := uc.ListBatches(context.Background(), usecase.ListBatchesInput{Limit: 1000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 100 {
		t.Errorf("expected limit clamped to 100, got %d", gotLimit)
	}

	if _, err := uc.ListBatches(context.Background(), usecase.ListBatchesInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 20 {
		t.Errorf("expected default limit 20, got %d", gotLimit)
	}
}
