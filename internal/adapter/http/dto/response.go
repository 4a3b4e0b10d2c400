package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gosepa/internal/domain"
)

// BatchResponse represents a batch in API responses.
type BatchResponse struct {
	ID                   string          `json:"id"`
	Type                 string          `json:"type"`
	OriginName           string          `json:"origin_name"`
	OriginIBAN           string          `json:"origin_iban"`
	OriginBIC            string          `json:"origin_bic"`
	Currency             string          `json:"currency,omitempty"`
	DueDate              string          `json:"due_date"`
	CreditorID           string          `json:"creditor_id,omitempty"`
	SequenceType         string          `json:"sequence_type,omitempty"`
	LocalInstrument      string          `json:"local_instrument,omitempty"`
	ServiceLevel         string          `json:"service_level,omitempty"`
	InstructionPriority  string          `json:"instruction_priority,omitempty"`
	CategoryPurpose      string          `json:"category_purpose,omitempty"`
	BatchBooking         *bool           `json:"batch_booking,omitempty"`
	NumberOfTransactions int             `json:"number_of_transactions"`
	ControlSum           decimal.Decimal `json:"control_sum"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// BatchFromDomain converts a domain batch to a response.
func BatchFromDomain(b *domain.Batch) *BatchResponse {
	return &BatchResponse{
		ID:                   b.ID,
		Type:                 b.Type,
		OriginName:           b.OriginName,
		OriginIBAN:           b.OriginIBAN,
		OriginBIC:            b.OriginBIC,
		Currency:             b.Currency,
		DueDate:              b.DueDate.Format(domain.DefaultDateLayout),
		CreditorID:           b.CreditorID,
		SequenceType:         b.SequenceType,
		LocalInstrument:      b.LocalInstrument,
		ServiceLevel:         b.ServiceLevel,
		InstructionPriority:  b.InstructionPriority,
		CategoryPurpose:      b.CategoryPurpose,
		BatchBooking:         b.BatchBooking,
		NumberOfTransactions: b.NumberOfTransactions,
		ControlSum:           decimal.New(b.ControlSumCents, -2),
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

// BatchesFromDomain converts domain batches to responses.
func BatchesFromDomain(batches []*domain.Batch) []*BatchResponse {
	result := make([]*BatchResponse, len(batches))
	for i, b := range batches {
		result[i] = BatchFromDomain(b)
	}
	return result
}

// TransferResponse represents a stored transfer in API responses.
type TransferResponse struct {
	ID                    string          `json:"id"`
	BatchID               string          `json:"batch_id"`
	Sequence              int             `json:"sequence"`
	EndToEndID            string          `json:"end_to_end_id"`
	Amount                decimal.Decimal `json:"amount"`
	CounterpartyName      string          `json:"counterparty_name"`
	CounterpartyIBAN      string          `json:"counterparty_iban"`
	CounterpartyBIC       string          `json:"counterparty_bic"`
	RemittanceInformation string          `json:"remittance_information,omitempty"`
	MandateID             string          `json:"mandate_id,omitempty"`
	MandateSignDate       string          `json:"mandate_sign_date,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}

// TransferFromDomain converts a domain transfer to a response.
func TransferFromDomain(t *domain.BatchTransfer) *TransferResponse {
	resp := &TransferResponse{
		ID:                    t.ID,
		BatchID:               t.BatchID,
		Sequence:              t.Sequence,
		EndToEndID:            t.EndToEndID,
		Amount:                decimal.New(t.AmountCents, -2),
		CounterpartyName:      t.CounterpartyName,
		CounterpartyIBAN:      t.CounterpartyIBAN,
		CounterpartyBIC:       t.CounterpartyBIC,
		RemittanceInformation: t.RemittanceInformation,
		MandateID:             t.MandateID,
		CreatedAt:             t.CreatedAt,
	}
	if t.MandateSignDate != nil {
		resp.MandateSignDate = t.MandateSignDate.Format(domain.DefaultDateLayout)
	}
	return resp
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.BatchTransfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// DocumentResponse represents a generated document in API responses. The XML
// payload itself is served by the download endpoint.
type DocumentResponse struct {
	ID                   string          `json:"id"`
	BatchID              string          `json:"batch_id"`
	MessageID            string          `json:"message_id"`
	PainFormat           string          `json:"pain_format"`
	NumberOfTransactions int             `json:"number_of_transactions"`
	ControlSum           decimal.Decimal `json:"control_sum"`
	SizeBytes            int             `json:"size_bytes"`
	CreatedAt            time.Time       `json:"created_at"`
}

// DocumentFromDomain converts a domain document to a response.
func DocumentFromDomain(d *domain.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:                   d.ID,
		BatchID:              d.BatchID,
		MessageID:            d.MessageID,
		PainFormat:           d.PainFormat,
		NumberOfTransactions: d.NumberOfTransactions,
		ControlSum:           decimal.New(d.ControlSumCents, -2),
		SizeBytes:            len(d.XML),
		CreatedAt:            d.CreatedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
