package domain

import "time"

// Transfer is one instructed movement of funds inside a payment information
// block. Amounts are integer minor currency units (cents); the aggregate
// control sum is maintained in the same representation so totals are exact.
type Transfer interface {
	// AmountCents returns the instructed amount in minor currency units.
	AmountCents() int64
	// Accept dispatches the transfer to the visitor method for its kind.
	Accept(v Visitor) error
}

// CreditTransfer is a single outgoing credit transfer instruction.
type CreditTransfer struct {
	EndToEndID             string
	Amount                 int64
	Currency               string
	CreditorName           string
	CreditorIBAN           string
	CreditorBIC            string
	RemittanceInformation  string
	InstructionInformation string
}

// NewCreditTransfer creates a credit transfer leaf. Free-text fields are
// sanitized for the SEPA character set.
func NewCreditTransfer(endToEndID string, amountCents int64, creditorName, creditorIBAN, creditorBIC string) *CreditTransfer {
	return &CreditTransfer{
		EndToEndID:   endToEndID,
		Amount:       amountCents,
		Currency:     "EUR",
		CreditorName: Sanitize(creditorName),
		CreditorIBAN: creditorIBAN,
		CreditorBIC:  creditorBIC,
	}
}

// SetRemittanceInformation stores sanitized unstructured remittance text.
func (t *CreditTransfer) SetRemittanceInformation(info string) {
	t.RemittanceInformation = Sanitize(info)
}

// AmountCents returns the instructed amount in minor currency units.
func (t *CreditTransfer) AmountCents() int64 {
	return t.Amount
}

// Accept dispatches to the credit transfer visitor method.
func (t *CreditTransfer) Accept(v Visitor) error {
	return v.VisitCreditTransfer(t)
}

// DirectDebit is a single direct debit collection instruction under a
// creditor mandate.
type DirectDebit struct {
	EndToEndID            string
	Amount                int64
	Currency              string
	DebtorName            string
	DebtorIBAN            string
	DebtorBIC             string
	MandateID             string
	MandateSignDate       time.Time
	RemittanceInformation string
}

// NewDirectDebit creates a direct debit leaf. Free-text fields are sanitized
// for the SEPA character set.
func NewDirectDebit(endToEndID string, amountCents int64, debtorName, debtorIBAN, debtorBIC string) *DirectDebit {
	return &DirectDebit{
		EndToEndID: endToEndID,
		Amount:     amountCents,
		Currency:   "EUR",
		DebtorName: Sanitize(debtorName),
		DebtorIBAN: debtorIBAN,
		DebtorBIC:  debtorBIC,
	}
}

// SetMandate stores the mandate reference and its signature date.
func (t *DirectDebit) SetMandate(mandateID string, signDate time.Time) {
	t.MandateID = Sanitize(mandateID)
	t.MandateSignDate = signDate
}

// SetRemittanceInformation stores sanitized unstructured remittance text.
func (t *DirectDebit) SetRemittanceInformation(info string) {
	t.RemittanceInformation = Sanitize(info)
}

// AmountCents returns the instructed amount in minor currency units.
func (t *DirectDebit) AmountCents() int64 {
	return t.Amount
}

// Accept dispatches to the direct debit visitor method.
func (t *DirectDebit) Accept(v Visitor) error {
	return v.VisitDirectDebit(t)
}
