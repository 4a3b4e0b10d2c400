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

func storedCreditBatch() *domain.Batch {
	return &domain.Batch{
		ID:         "batch-1",
		Type:       domain.BatchTypeCreditTransfer,
		OriginName: "ACME Corp",
		OriginIBAN: "FR7630006000011234567890189",
		OriginBIC:  "AGRIFRPP",
		DueDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func storedTransfers() []*domain.BatchTransfer {
	return []*domain.BatchTransfer{
		{ID: "t-1", BatchID: "batch-1", Sequence: 1, EndToEndID: "E2E-1", AmountCents: 1000, CounterpartyName: "Alpha", CounterpartyIBAN: "IBAN-A", CounterpartyBIC: "BIC-A"},
		{ID: "t-2", BatchID: "batch-1", Sequence: 2, EndToEndID: "E2E-2", AmountCents: 2500, CounterpartyName: "Beta", CounterpartyIBAN: "IBAN-B", CounterpartyBIC: "BIC-B"},
	}
}

func TestDocumentUseCase_GenerateDocument(t *testing.T) {
	batchRepo := mocks.NewMockBatchRepository()
	transferRepo := mocks.NewMockTransferRepository()
	documentRepo := mocks.NewMockDocumentRepository()
	renderer := mocks.NewMockRenderer()
	cache := mocks.NewMockCache()

	_ = batchRepo.Create(context.Background(), storedCreditBatch())
	for _, tr := range storedTransfers() {
		_ = transferRepo.Create(context.Background(), nil, tr)
	}

	var renderedFile *domain.TransferFile
	renderer.RenderFunc = func(file *domain.TransferFile) ([]byte, error) {
		renderedFile = file
		return []byte("<Document>rendered</Document>"), nil
	}

	uc := usecase.NewDocumentUseCase(batchRepo, transferRepo, documentRepo, renderer, mocks.NewMockIDGenerator(), cache, nil)

	document, err := uc.GenerateDocument(context.Background(), "batch-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if document.PainFormat != domain.PainFormatCreditTransfer {
		t.Errorf("expected pain format %s, got %s", domain.PainFormatCreditTransfer, document.PainFormat)
	}
	if document.NumberOfTransactions != 2 {
		t.Errorf("expected 2 transactions, got %d", document.NumberOfTransactions)
	}
	if document.ControlSumCents != 3500 {
		t.Errorf("expected control sum 3500, got %d", document.ControlSumCents)
	}
	if string(document.XML) != "<Document>rendered</Document>" {
		t.Errorf("unexpected document XML: %s", document.XML)
	}

	if renderedFile == nil || renderedFile.NumberOfTransactions() != 2 {
		t.Error("expected renderer to receive the assembled transfer file")
	}

	// Stored and cached.
	stored, err := documentRepo.GetByBatch(context.Background(), "batch-1")
	if err != nil {
		t.Fatalf("expected stored document: %v", err)
	}
	if stored.MessageID != document.MessageID {
		t.Error("stored document differs from returned document")
	}

	cached, _ := cache.Get(context.Background(), "document:batch-1")
	if string(cached) != string(document.XML) {
		t.Error("expected rendered XML to be cached")
	}
}

func TestDocumentUseCase_GenerateDocument_EmptyBatch(t *testing.T) {
	batchRepo := mocks.NewMockBatchRepository()
	_ = batchRepo.Create(context.Background(), storedCreditBatch())

	uc := usecase.NewDocumentUseCase(
		batchRepo,
		mocks.NewMockTransferRepository(),
		mocks.NewMockDocumentRepository(),
		mocks.NewMockRenderer(),
		mocks.NewMockIDGenerator(),
		nil,
		nil,
	)

	_, err := uc.GenerateDocument(context.Background(), "batch-1")
	if !errors.Is(err, domain.ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestDocumentUseCase_GenerateDocument_BatchNotFound(t *testing.T) {
	uc := usecase.NewDocumentUseCase(
		mocks.NewMockBatchRepository(),
		mocks.NewMockTransferRepository(),
		mocks.NewMockDocumentRepository(),
		mocks.NewMockRenderer(),
		mocks.NewMockIDGenerator(),
		nil,
		nil,
	)

	_, err := uc.GenerateDocument(context.Background(), "missing")
	if !errors.Is(err, domain.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound, got %v", err)
	}
}

func TestDocumentUseCase_GetDocumentXML_PrefersCache(t *testing.T) {
	cache := mocks.NewMockCache()
	_ = cache.Set(context.Background(), "document:batch-1", []byte("<cached/>"), time.Hour)

	documentRepo := mocks.NewMockDocumentRepository()
	documentRepo.GetByBatchFunc = func(ctx context.Context, batchID string) (*domain.Document, error) {
		t.Fatal("repository must not be hit on cache hit")
		return nil, nil
	}

	uc := usecase.NewDocumentUseCase(
		mocks.NewMockBatchRepository(),
		mocks.NewMockTransferRepository(),
		documentRepo,
		mocks.NewMockRenderer(),
		mocks.NewMockIDGenerator(),
		cache,
		nil,
	)

	xml, err := uc.GetDocumentXML(context.Background(), "batch-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(xml) != "<cached/>" {
		t.Errorf("expected cached XML, got %s", xml)
	}
}

func TestDocumentUseCase_GetDocumentXML_FallsBackToStorage(t *testing.T) {
	documentRepo := mocks.NewMockDocumentRepository()
	_ = documentRepo.Create(context.Background(), &domain.Document{
		ID:      "doc-1",
		BatchID: "batch-1",
		XML:     []byte("<stored/>"),
	})

	cache := mocks.NewMockCache()

	uc := usecase.NewDocumentUseCase(
		mocks.NewMockBatchRepository(),
		mocks.NewMockTransferRepository(),
		documentRepo,
		mocks.NewMockRenderer(),
		mocks.NewMockIDGenerator(),
		cache,
		nil,
	)

	xml, err := uc.GetDocumentXML(context.Background(), "batch-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(xml) != "<stored/>" {
		t.Errorf("expected stored XML, got %s", xml)
	}

	// Backfilled into the cache.
	cached, _ := cache.Get(context.Background(), "document:batch-1")
	if string(cached) != "<stored/>" {
		t.Error("expected storage hit to backfill the cache")
	}
}
