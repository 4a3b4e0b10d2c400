package domain

import "errors"

var (
	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// Batch errors
	ErrBatchNotFound    = errors.New("batch not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrEmptyBatch       = errors.New("batch has no transfers")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrUnknownBatchType = errors.New("unknown batch type")
)
