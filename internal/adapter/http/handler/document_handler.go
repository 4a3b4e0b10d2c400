package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gosepa/internal/adapter/http/dto"
	"github.com/iho/gosepa/internal/usecase"
)

// DocumentHandler handles pain document HTTP requests.
type DocumentHandler struct {
	documentUC *usecase.DocumentUseCase
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentUC *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{documentUC: documentUC}
}

// Generate renders and stores the pain document for a batch.
func (h *DocumentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")
	if batchID == "" {
		writeError(w, http.StatusBadRequest, "missing batch ID", "")
		return
	}

	document, err := h.documentUC.GenerateDocument(r.Context(), batchID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to generate document", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.DocumentFromDomain(document))
}

// Get retrieves the stored document metadata for a batch.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")
	if batchID == "" {
		writeError(w, http.StatusBadRequest, "missing batch ID", "")
		return
	}

	document, err := h.documentUC.GetDocument(r.Context(), batchID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get document", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DocumentFromDomain(document))
}

// Download serves the stored document XML.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")
	if batchID == "" {
		writeError(w, http.StatusBadRequest, "missing batch ID", "")
		return
	}

	xml, err := h.documentUC.GetDocumentXML(r.Context(), batchID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get document", err.Error())

		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="`+batchID+`.xml"`)
	w.WriteHeader(http.StatusOK)
	w.Write(xml)
}
