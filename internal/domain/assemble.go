package domain

import "fmt"

// AssembleTransferFile builds the in-memory document aggregate for a stored
// batch: one transfer file wrapping one payment information block holding the
// batch's transfers in stored order. All enumeration values pass through the
// block's validated setters, so a batch carrying an out-of-schema value is
// rejected here rather than producing an invalid document.
func AssembleTransferFile(batch *Batch, transfers []*BatchTransfer, messageID string) (*TransferFile, error) {
	method, err := batch.PaymentMethod()
	if err != nil {
		return nil, err
	}

	var file *TransferFile
	switch batch.Type {
	case BatchTypeCreditTransfer:
		file = NewCreditTransferFile(messageID, batch.OriginName)
	case BatchTypeDirectDebit:
		file = NewDirectDebitFile(messageID, batch.OriginName)
	}

	payment := NewPaymentInformation(batch.ID, batch.OriginIBAN, batch.OriginBIC, batch.OriginName)
	file.AddPaymentInformation(payment)

	if err := payment.SetPaymentMethod(method); err != nil {
		return nil, err
	}
	if batch.Currency != "" {
		payment.SetOriginAccountCurrency(batch.Currency)
	}
	if !batch.DueDate.IsZero() {
		payment.SetDueDate(batch.DueDate)
	}
	if batch.CreditorID != "" {
		payment.SetCreditorID(batch.CreditorID)
	}
	if batch.SequenceType != "" {
		if err := payment.SetSequenceType(batch.SequenceType); err != nil {
			return nil, err
		}
	}
	if batch.LocalInstrument != "" {
		if err := payment.SetLocalInstrumentCode(batch.LocalInstrument); err != nil {
			return nil, err
		}
	}
	if batch.ServiceLevel != "" {
		if err := payment.SetServiceLevel(batch.ServiceLevel); err != nil {
			return nil, err
		}
	}
	if batch.InstructionPriority != "" {
		if err := payment.SetInstructionPriority(batch.InstructionPriority); err != nil {
			return nil, err
		}
	}
	if batch.CategoryPurpose != "" {
		payment.SetCategoryPurposeCode(batch.CategoryPurpose)
	}
	if batch.BatchBooking != nil {
		payment.SetBatchBooking(*batch.BatchBooking)
	}

	for _, t := range transfers {
		leaf, err := assembleTransfer(batch, t)
		if err != nil {
			return nil, err
		}

		payment.AddTransfer(leaf)
	}

	return file, nil
}

func assembleTransfer(batch *Batch, t *BatchTransfer) (Transfer, error) {
	switch batch.Type {
	case BatchTypeCreditTransfer:
		ct := NewCreditTransfer(t.EndToEndID, t.AmountCents, t.CounterpartyName, t.CounterpartyIBAN, t.CounterpartyBIC)
		if batch.Currency != "" {
			ct.Currency = batch.Currency
		}
		if t.RemittanceInformation != "" {
			ct.SetRemittanceInformation(t.RemittanceInformation)
		}

		return ct, nil
	case BatchTypeDirectDebit:
		if t.MandateID == "" || t.MandateSignDate == nil {
			return nil, fmt.Errorf("%w: direct debit transfer %s requires a signed mandate", ErrInvalidConfiguration, t.EndToEndID)
		}

		dd := NewDirectDebit(t.EndToEndID, t.AmountCents, t.CounterpartyName, t.CounterpartyIBAN, t.CounterpartyBIC)
		if batch.Currency != "" {
			dd.Currency = batch.Currency
		}
		dd.SetMandate(t.MandateID, *t.MandateSignDate)
		if t.RemittanceInformation != "" {
			dd.SetRemittanceInformation(t.RemittanceInformation)
		}

		return dd, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBatchType, batch.Type)
	}
}
