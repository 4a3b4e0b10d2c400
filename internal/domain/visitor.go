package domain

// Visitor renders the finite set of visitable SEPA elements. A document
// builder implements one method per concrete kind; dispatch is closed at
// compile time.
type Visitor interface {
	VisitTransferFile(file *TransferFile) error
	VisitPaymentInformation(payment *PaymentInformation) error
	VisitCreditTransfer(transfer *CreditTransfer) error
	VisitDirectDebit(transfer *DirectDebit) error
}
