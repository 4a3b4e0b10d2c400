package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gosepa/internal/domain"
	"github.com/iho/gosepa/internal/usecase"
)

// CreateBatchRequest represents a request to create a payment batch.
type CreateBatchRequest struct {
	Type                string `json:"type"`
	OriginName          string `json:"origin_name"`
	OriginIBAN          string `json:"origin_iban"`
	OriginBIC           string `json:"origin_bic"`
	Currency            string `json:"currency,omitempty"`
	DueDate             string `json:"due_date,omitempty"`
	CreditorID          string `json:"creditor_id,omitempty"`
	SequenceType        string `json:"sequence_type,omitempty"`
	LocalInstrument     string `json:"local_instrument,omitempty"`
	ServiceLevel        string `json:"service_level,omitempty"`
	InstructionPriority string `json:"instruction_priority,omitempty"`
	CategoryPurpose     string `json:"category_purpose,omitempty"`
	BatchBooking        *bool  `json:"batch_booking,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBatchRequest) ToUseCaseInput() (usecase.CreateBatchInput, error) {
	input := usecase.CreateBatchInput{
		Type:                r.Type,
		OriginName:          r.OriginName,
		OriginIBAN:          r.OriginIBAN,
		OriginBIC:           r.OriginBIC,
		Currency:            r.Currency,
		CreditorID:          r.CreditorID,
		SequenceType:        r.SequenceType,
		LocalInstrument:     r.LocalInstrument,
		ServiceLevel:        r.ServiceLevel,
		InstructionPriority: r.InstructionPriority,
		CategoryPurpose:     r.CategoryPurpose,
		BatchBooking:        r.BatchBooking,
	}

	if r.DueDate != "" {
		due, err := time.Parse(domain.DefaultDateLayout, r.DueDate)
		if err != nil {
			return usecase.CreateBatchInput{}, fmt.Errorf("invalid due_date %q: %w", r.DueDate, err)
		}
		input.DueDate = &due
	}

	return input, nil
}

// AddTransfersRequest represents a request to append transfers to a batch.
type AddTransfersRequest struct {
	Transfers []TransferItem `json:"transfers"`
}

// TransferItem represents a single transfer in an append request. Amount is a
// decimal major-unit string; it must not carry sub-cent precision.
type TransferItem struct {
	EndToEndID            string          `json:"end_to_end_id,omitempty"`
	Amount                decimal.Decimal `json:"amount"`
	CounterpartyName      string          `json:"counterparty_name"`
	CounterpartyIBAN      string          `json:"counterparty_iban"`
	CounterpartyBIC       string          `json:"counterparty_bic"`
	RemittanceInformation string          `json:"remittance_information,omitempty"`
	MandateID             string          `json:"mandate_id,omitempty"`
	MandateSignDate       string          `json:"mandate_sign_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddTransfersRequest) ToUseCaseInput(batchID string) (usecase.AddTransfersInput, error) {
	transfers := make([]usecase.TransferInput, len(r.Transfers))
	for i, item := range r.Transfers {
		cents, err := amountToCents(item.Amount)
		if err != nil {
			return usecase.AddTransfersInput{}, err
		}

		transfers[i] = usecase.TransferInput{
			EndToEndID:            item.EndToEndID,
			AmountCents:           cents,
			CounterpartyName:      item.CounterpartyName,
			CounterpartyIBAN:      item.CounterpartyIBAN,
			CounterpartyBIC:       item.CounterpartyBIC,
			RemittanceInformation: item.RemittanceInformation,
			MandateID:             item.MandateID,
		}

		if item.MandateSignDate != "" {
			signDate, err := time.Parse(domain.DefaultDateLayout, item.MandateSignDate)
			if err != nil {
				return usecase.AddTransfersInput{}, fmt.Errorf("invalid mandate_sign_date %q: %w", item.MandateSignDate, err)
			}
			transfers[i].MandateSignDate = &signDate
		}
	}

	return usecase.AddTransfersInput{
		BatchID:   batchID,
		Transfers: transfers,
	}, nil
}

// amountToCents converts a decimal major-unit amount to integer minor units.
func amountToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %s has sub-cent precision", amount)
	}

	return cents.IntPart(), nil
}
