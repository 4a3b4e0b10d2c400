package usecase

import (
	"context"
	"time"

	"github.com/iho/gosepa/internal/domain"
	"github.com/iho/gosepa/internal/infrastructure/metrics"
)

const documentCacheTTL = 24 * time.Hour

// DocumentUseCase handles pain document generation.
type DocumentUseCase struct {
	batchRepo    BatchRepository
	transferRepo TransferRepository
	documentRepo DocumentRepository
	renderer     DocumentRenderer
	idGen        IDGenerator
	cache        Cache
	metrics      *metrics.Metrics
}

// NewDocumentUseCase creates a new DocumentUseCase. Cache and metrics are
// optional; pass nil to disable them.
func NewDocumentUseCase(
	batchRepo BatchRepository,
	transferRepo TransferRepository,
	documentRepo DocumentRepository,
	renderer DocumentRenderer,
	idGen IDGenerator,
	cache Cache,
	m *metrics.Metrics,
) *DocumentUseCase {
	return &DocumentUseCase{
		batchRepo:    batchRepo,
		transferRepo: transferRepo,
		documentRepo: documentRepo,
		renderer:     renderer,
		idGen:        idGen,
		cache:        cache,
		metrics:      m,
	}
}

// GenerateDocument assembles the batch into a transfer file, renders the
// pain XML and stores the result. An empty batch cannot be rendered: the
// schemas require at least one transaction.
func (uc *DocumentUseCase) GenerateDocument(ctx context.Context, batchID string) (*domain.Document, error) {
	batch, err := uc.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	transfers, err := uc.transferRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	if len(transfers) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	messageID := uc.idGen.Generate()

	file, err := domain.AssembleTransferFile(batch, transfers, messageID)
	if err != nil {
		return nil, err
	}

	xmlBytes, err := uc.renderer.Render(file)
	if err != nil {
		return nil, err
	}

	document := &domain.Document{
		ID:                   uc.idGen.Generate(),
		BatchID:              batch.ID,
		MessageID:            messageID,
		PainFormat:           file.PainFormat,
		NumberOfTransactions: file.NumberOfTransactions(),
		ControlSumCents:      file.ControlSumCents(),
		XML:                  xmlBytes,
		CreatedAt:            time.Now().UTC(),
	}

	if err := uc.documentRepo.Create(ctx, document); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		// Best effort; a cache failure must not fail the generation.
		_ = uc.cache.Set(ctx, documentCacheKey(batch.ID), xmlBytes, documentCacheTTL)
	}

	if uc.metrics != nil {
		uc.metrics.DocumentsGenerated.WithLabelValues(file.PainFormat).Inc()
		uc.metrics.DocumentBytes.Observe(float64(len(xmlBytes)))
	}

	return document, nil
}

// GetDocument retrieves the latest generated document for a batch.
func (uc *DocumentUseCase) GetDocument(ctx context.Context, batchID string) (*domain.Document, error) {
	return uc.documentRepo.GetByBatch(ctx, batchID)
}

// GetDocumentXML retrieves the rendered XML for a batch, preferring the
// cache over storage.
func (uc *DocumentUseCase) GetDocumentXML(ctx context.Context, batchID string) ([]byte, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, documentCacheKey(batchID)); err == nil && cached != nil {
			if uc.metrics != nil {
				uc.metrics.CacheHits.Inc()
			}
			return cached, nil
		}
		if uc.metrics != nil {
			uc.metrics.CacheMisses.Inc()
		}
	}

	document, err := uc.documentRepo.GetByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, documentCacheKey(batchID), document.XML, documentCacheTTL)
	}

	return document.XML, nil
}

func documentCacheKey(batchID string) string {
	return "document:" + batchID
}
