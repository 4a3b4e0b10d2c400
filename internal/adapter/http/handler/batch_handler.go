package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gosepa/internal/adapter/http/dto"
	"github.com/iho/gosepa/internal/usecase"
)

// BatchHandler handles batch-related HTTP requests.
type BatchHandler struct {
	batchUC *usecase.BatchUseCase
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(batchUC *usecase.BatchUseCase) *BatchHandler {
	return &BatchHandler{batchUC: batchUC}
}

// Create creates a new payment batch.
func (h *BatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid due date", err.Error())
		return
	}

	batch, err := h.batchUC.CreateBatch(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create batch", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.BatchFromDomain(batch))
}

// Get retrieves a batch by ID.
func (h *BatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing batch ID", "")
		return
	}

	batch, err := h.batchUC.GetBatch(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get batch", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BatchFromDomain(batch))
}

// List lists stored batches.
func (h *BatchHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	batches, err := h.batchUC.ListBatches(r.Context(), usecase.ListBatchesInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list batches", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BatchesFromDomain(batches))
}

// AddTransfers appends transfers to a batch.
func (h *BatchHandler) AddTransfers(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")
	if batchID == "" {
		writeError(w, http.StatusBadRequest, "missing batch ID", "")
		return
	}

	var req dto.AddTransfersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.Transfers) == 0 {
		writeError(w, http.StatusBadRequest, "no transfers provided", "")
		return
	}

	input, err := req.ToUseCaseInput(batchID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transfer", err.Error())
		return
	}

	transfers, err := h.batchUC.AddTransfers(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to add transfers", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TransfersFromDomain(transfers))
}

// ListTransfers lists the transfers of a batch in document order.
func (h *BatchHandler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")
	if batchID == "" {
		writeError(w, http.StatusBadRequest, "missing batch ID", "")
		return
	}

	transfers, err := h.batchUC.ListTransfers(r.Context(), batchID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list transfers", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransfersFromDomain(transfers))
}
