package domain

import "time"

// Pain formats emitted by the document builder.
const (
	PainFormatCreditTransfer = "pain.001.001.03"
	PainFormatDirectDebit    = "pain.008.001.02"
)

// Payment methods per pain format.
const (
	PaymentMethodTransfer    = "TRF"
	PaymentMethodDirectDebit = "DD"
)

// TransferFile is the top-level document wrapper: file-level header data plus
// one or more payment information blocks. The concrete constructors pin the
// pain format and the set of payment methods that blocks inside the file may
// carry.
type TransferFile struct {
	MessageID           string
	InitiatingPartyName string
	InitiatingPartyID   string
	CreationDateTime    time.Time
	PainFormat          string

	validPaymentMethods []string
	payments            []*PaymentInformation
}

// NewCreditTransferFile creates a customer credit transfer initiation file
// (pain.001). Blocks added to it may only use the TRF payment method.
func NewCreditTransferFile(messageID, initiatingPartyName string) *TransferFile {
	return &TransferFile{
		MessageID:           Sanitize(messageID),
		InitiatingPartyName: Sanitize(initiatingPartyName),
		CreationDateTime:    time.Now(),
		PainFormat:          PainFormatCreditTransfer,
		validPaymentMethods: []string{PaymentMethodTransfer},
	}
}

// NewDirectDebitFile creates a customer direct debit initiation file
// (pain.008). Blocks added to it may only use the DD payment method.
func NewDirectDebitFile(messageID, initiatingPartyName string) *TransferFile {
	return &TransferFile{
		MessageID:           Sanitize(messageID),
		InitiatingPartyName: Sanitize(initiatingPartyName),
		CreationDateTime:    time.Now(),
		PainFormat:          PainFormatDirectDebit,
		validPaymentMethods: []string{PaymentMethodDirectDebit},
	}
}

// SetInitiatingPartyID stores a sanitized initiating party identification.
func (f *TransferFile) SetInitiatingPartyID(id string) {
	f.InitiatingPartyID = Sanitize(id)
}

// AddPaymentInformation attaches a block to the file and injects the file's
// payment method whitelist into it. Blocks are emitted in attachment order.
func (f *TransferFile) AddPaymentInformation(payment *PaymentInformation) {
	payment.SetValidPaymentMethods(f.validPaymentMethods)
	f.payments = append(f.payments, payment)
}

// PaymentInformations returns the attached blocks in attachment order.
func (f *TransferFile) PaymentInformations() []*PaymentInformation {
	return f.payments
}

// NumberOfTransactions returns the file-level transaction count, derived
// from the attached blocks.
func (f *TransferFile) NumberOfTransactions() int {
	total := 0
	for _, p := range f.payments {
		total += p.NumberOfTransactions()
	}

	return total
}

// ControlSumCents returns the file-level control sum in minor currency
// units, derived from the attached blocks.
func (f *TransferFile) ControlSumCents() int64 {
	var total int64
	for _, p := range f.payments {
		total += p.ControlSumCents()
	}

	return total
}

// Accept presents the file to the visitor, then each payment information
// block in attachment order. Each block in turn dispatches its transfers.
func (f *TransferFile) Accept(v Visitor) error {
	if err := v.VisitTransferFile(f); err != nil {
		return err
	}

	for _, payment := range f.payments {
		if err := payment.Accept(v); err != nil {
			return err
		}
	}

	return nil
}
