package domain

import (
	"fmt"
	"time"
)

// Batch types accepted by the service.
const (
	BatchTypeCreditTransfer = "credit_transfer"
	BatchTypeDirectDebit    = "direct_debit"
)

// Batch is a stored payment batch: the persistent counterpart of one
// PaymentInformation block plus its file-level context. The aggregate columns
// mirror the in-memory invariants and are updated in the same transaction as
// every transfer insert.
type Batch struct {
	ID                  string
	Type                string
	OriginName          string
	OriginIBAN          string
	OriginBIC           string
	Currency            string
	DueDate             time.Time
	CreditorID          string
	SequenceType        string
	LocalInstrument     string
	ServiceLevel        string
	InstructionPriority string
	CategoryPurpose     string
	BatchBooking        *bool

	NumberOfTransactions int
	ControlSumCents      int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentMethod returns the SEPA payment method implied by the batch type.
func (b *Batch) PaymentMethod() (string, error) {
	switch b.Type {
	case BatchTypeCreditTransfer:
		return PaymentMethodTransfer, nil
	case BatchTypeDirectDebit:
		return PaymentMethodDirectDebit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBatchType, b.Type)
	}
}

// BatchTransfer is one stored transfer instruction inside a batch. Amounts
// are integer minor currency units. Sequence preserves insertion order; it
// defines the order transfers appear in the generated document.
type BatchTransfer struct {
	ID                    string
	BatchID               string
	Sequence              int
	EndToEndID            string
	AmountCents           int64
	CounterpartyName      string
	CounterpartyIBAN      string
	CounterpartyBIC       string
	RemittanceInformation string
	MandateID             string
	MandateSignDate       *time.Time
	CreatedAt             time.Time
}

// Validate validates a transfer instruction before it is stored.
func (t *BatchTransfer) Validate() error {
	if t.AmountCents <= 0 {
		return ErrInvalidAmount
	}

	return nil
}

// Document is a generated pain XML document for a batch.
type Document struct {
	ID                   string
	BatchID              string
	MessageID            string
	PainFormat           string
	NumberOfTransactions int
	ControlSumCents      int64
	XML                  []byte
	CreatedAt            time.Time
}
