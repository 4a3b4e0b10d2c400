// Package builder renders domain transfer files into ISO 20022 payment
// initiation XML (pain.001.001.03 and pain.008.001.02).
package builder

import (
	"encoding/xml"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gosepa/internal/domain"
)

const (
	namespaceCreditTransfer = "urn:iso:std:iso:20022:tech:xsd:pain.001.001.03"
	namespaceDirectDebit    = "urn:iso:std:iso:20022:tech:xsd:pain.008.001.02"

	creationTimeLayout = "2006-01-02T15:04:05"
)

// DocumentBuilder accumulates an ISO 20022 document from visitor callbacks.
// It implements domain.Visitor; the traversal entry point is the transfer
// file's Accept. One builder renders one document.
type DocumentBuilder struct {
	format string

	creditDoc *pain001Document
	debitDoc  *pain008Document

	currentCreditPmtInf *pain001PaymentInfo
	currentDebitPmtInf  *pain008PaymentInfo
}

// New creates an empty DocumentBuilder.
func New() *DocumentBuilder {
	return &DocumentBuilder{}
}

// VisitTransferFile starts the document and renders the group header.
func (b *DocumentBuilder) VisitTransferFile(file *domain.TransferFile) error {
	header := groupHeader{
		MsgID:   file.MessageID,
		CreDtTm: file.CreationDateTime.Format(creationTimeLayout),
		NbOfTxs: fmt.Sprintf("%d", file.NumberOfTransactions()),
		CtrlSum: centsToAmount(file.ControlSumCents()),
		InitgPty: initiatingParty{
			Nm: file.InitiatingPartyName,
		},
	}
	if file.InitiatingPartyID != "" {
		header.InitgPty.ID = &partyID{
			OrgID: &orgID{Othr: &genericID{ID: file.InitiatingPartyID}},
		}
	}

	b.format = file.PainFormat

	switch file.PainFormat {
	case domain.PainFormatCreditTransfer:
		b.creditDoc = &pain001Document{
			Xmlns: namespaceCreditTransfer,
			CstmrCdtTrfInitn: pain001Initiation{
				GrpHdr: header,
			},
		}
	case domain.PainFormatDirectDebit:
		b.debitDoc = &pain008Document{
			Xmlns: namespaceDirectDebit,
			CstmrDrctDbtInitn: pain008Initiation{
				GrpHdr: header,
			},
		}
	default:
		return fmt.Errorf("%w: unsupported pain format %q", domain.ErrInvalidConfiguration, file.PainFormat)
	}

	return nil
}

// VisitPaymentInformation renders one PmtInf element, honoring the block's
// hidden-field flags, enumerations and formatted due date exactly as exposed
// by its accessors.
func (b *DocumentBuilder) VisitPaymentInformation(payment *domain.PaymentInformation) error {
	switch b.format {
	case domain.PainFormatCreditTransfer:
		return b.appendCreditPaymentInfo(payment)
	case domain.PainFormatDirectDebit:
		return b.appendDebitPaymentInfo(payment)
	default:
		return fmt.Errorf("%w: payment information visited before transfer file", domain.ErrInvalidConfiguration)
	}
}

func (b *DocumentBuilder) appendCreditPaymentInfo(payment *domain.PaymentInformation) error {
	info := pain001PaymentInfo{
		PmtInfID:    payment.ID,
		PmtMtd:      payment.PaymentMethod(),
		BtchBookg:   payment.BatchBooking,
		NbOfTxs:     fmt.Sprintf("%d", payment.NumberOfTransactions()),
		CtrlSum:     centsToAmount(payment.ControlSumCents()),
		PmtTpInf:    buildPaymentTypeInfo(payment),
		ReqdExctnDt: payment.DueDateString(),
		Dbtr:        buildOriginParty(payment),
		DbtrAgt:     agent{FinInstnID: finInstnID{BIC: payment.OriginAgentBIC}},
		ChrgBr:      "SLEV",
	}
	if !payment.HasHiddenOriginAccountIBAN() {
		info.DbtrAcct = &account{
			ID:  buildOriginAccountID(payment),
			Ccy: payment.OriginAccountCurrency,
		}
	}

	doc := &b.creditDoc.CstmrCdtTrfInitn
	doc.PmtInf = append(doc.PmtInf, info)
	b.currentCreditPmtInf = &doc.PmtInf[len(doc.PmtInf)-1]

	return nil
}

func (b *DocumentBuilder) appendDebitPaymentInfo(payment *domain.PaymentInformation) error {
	info := pain008PaymentInfo{
		PmtInfID:     payment.ID,
		PmtMtd:       payment.PaymentMethod(),
		BtchBookg:    payment.BatchBooking,
		NbOfTxs:      fmt.Sprintf("%d", payment.NumberOfTransactions()),
		CtrlSum:      centsToAmount(payment.ControlSumCents()),
		PmtTpInf:     buildDebitPaymentTypeInfo(payment),
		ReqdColltnDt: payment.DueDateString(),
		Cdtr:         buildOriginParty(payment),
		CdtrAgt:      agent{FinInstnID: finInstnID{BIC: payment.OriginAgentBIC}},
		ChrgBr:       "SLEV",
	}
	if !payment.HasHiddenOriginAccountIBAN() {
		info.CdtrAcct = &account{
			ID: buildOriginAccountID(payment),
		}
	}
	if payment.CreditorID != "" {
		info.CdtrSchmeID = &creditorSchemeID{
			ID: creditorSchemePartyID{
				PrvtID: privateID{
					Othr: genericSchemeID{
						ID:      payment.CreditorID,
						SchmeNm: schemeName{Prtry: "SEPA"},
					},
				},
			},
		}
	}

	doc := &b.debitDoc.CstmrDrctDbtInitn
	doc.PmtInf = append(doc.PmtInf, info)
	b.currentDebitPmtInf = &doc.PmtInf[len(doc.PmtInf)-1]

	return nil
}

// VisitCreditTransfer appends one CdtTrfTxInf to the current PmtInf.
func (b *DocumentBuilder) VisitCreditTransfer(transfer *domain.CreditTransfer) error {
	if b.currentCreditPmtInf == nil {
		return fmt.Errorf("%w: credit transfer visited before payment information", domain.ErrInvalidConfiguration)
	}

	tx := pain001Transaction{
		PmtID: paymentID{EndToEndID: transfer.EndToEndID},
		Amt: transactionAmount{
			InstdAmt: instructedAmount{
				Ccy:   transfer.Currency,
				Value: centsToAmount(transfer.Amount),
			},
		},
		CdtrAgt:  &agent{FinInstnID: finInstnID{BIC: transfer.CreditorBIC}},
		Cdtr:     party{Nm: transfer.CreditorName},
		CdtrAcct: account{ID: accountID{IBAN: transfer.CreditorIBAN}},
	}
	if transfer.RemittanceInformation != "" {
		tx.RmtInf = &remittanceInfo{Ustrd: transfer.RemittanceInformation}
	}

	b.currentCreditPmtInf.CdtTrfTxInf = append(b.currentCreditPmtInf.CdtTrfTxInf, tx)

	return nil
}

// VisitDirectDebit appends one DrctDbtTxInf to the current PmtInf.
func (b *DocumentBuilder) VisitDirectDebit(transfer *domain.DirectDebit) error {
	if b.currentDebitPmtInf == nil {
		return fmt.Errorf("%w: direct debit visited before payment information", domain.ErrInvalidConfiguration)
	}

	tx := pain008Transaction{
		PmtID: paymentID{EndToEndID: transfer.EndToEndID},
		InstdAmt: instructedAmount{
			Ccy:   transfer.Currency,
			Value: centsToAmount(transfer.Amount),
		},
		DrctDbtTx: directDebitTx{
			MndtRltdInf: mandateInfo{
				MndtID:    transfer.MandateID,
				DtOfSgntr: transfer.MandateSignDate.Format("2006-01-02"),
			},
		},
		DbtrAgt:  agent{FinInstnID: finInstnID{BIC: transfer.DebtorBIC}},
		Dbtr:     party{Nm: transfer.DebtorName},
		DbtrAcct: account{ID: accountID{IBAN: transfer.DebtorIBAN}},
	}
	if transfer.RemittanceInformation != "" {
		tx.RmtInf = &remittanceInfo{Ustrd: transfer.RemittanceInformation}
	}

	b.currentDebitPmtInf.DrctDbtTxInf = append(b.currentDebitPmtInf.DrctDbtTxInf, tx)

	return nil
}

// Serialize marshals the accumulated document with the XML declaration.
func (b *DocumentBuilder) Serialize() ([]byte, error) {
	var (
		body []byte
		err  error
	)

	switch {
	case b.creditDoc != nil:
		body, err = xml.MarshalIndent(b.creditDoc, "", "  ")
	case b.debitDoc != nil:
		body, err = xml.MarshalIndent(b.debitDoc, "", "  ")
	default:
		return nil, fmt.Errorf("%w: nothing visited", domain.ErrInvalidConfiguration)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}

// buildPaymentTypeInfo renders PmtTpInf for credit transfers, nil when the
// block's general settings are hidden.
func buildPaymentTypeInfo(payment *domain.PaymentInformation) *paymentTypeInfo {
	if payment.HasHiddenGeneralSettings() {
		return nil
	}

	info := &paymentTypeInfo{
		SvcLvl: &codeWrapper{Cd: payment.ServiceLevel},
	}
	if payment.InstructionPriority != "" {
		info.InstrPrty = payment.InstructionPriority
	}
	if payment.LocalInstrumentCode != "" {
		info.LclInstrm = &codeWrapper{Cd: payment.LocalInstrumentCode}
	}
	if payment.CategoryPurposeCode != "" {
		info.CtgyPurp = &codeWrapper{Cd: payment.CategoryPurposeCode}
	}

	return info
}

// buildDebitPaymentTypeInfo renders PmtTpInf for direct debits, including
// the mandate sequence type.
func buildDebitPaymentTypeInfo(payment *domain.PaymentInformation) *paymentTypeInfo {
	info := buildPaymentTypeInfo(payment)
	if info == nil {
		return nil
	}

	info.SeqTp = payment.SequenceType

	return info
}

// buildOriginAccountID renders the origin account identification per the
// block's schema name: IBAN accounts use the IBAN element, BBAN accounts the
// generic Othr identification.
func buildOriginAccountID(payment *domain.PaymentInformation) accountID {
	if payment.SchemaName == domain.SchemaNameBBAN {
		return accountID{Othr: &genericID{
			ID:      payment.OriginAccountIBAN,
			SchmeNm: &schemeName{Prtry: domain.SchemaNameBBAN},
		}}
	}

	return accountID{IBAN: payment.OriginAccountIBAN}
}

// buildOriginParty renders the origin party with optional country and bank
// party identification.
func buildOriginParty(payment *domain.PaymentInformation) party {
	p := party{Nm: payment.OriginName}

	if payment.Country != "" {
		p.PstlAdr = &postalAddress{Ctry: payment.Country}
	}
	if payment.OriginBankPartyIdentification != "" {
		p.ID = &partyID{
			OrgID: &orgID{
				Othr: &genericID{
					ID:      payment.OriginBankPartyIdentification,
					SchmeNm: &schemeName{Cd: payment.OriginBankPartyIdentificationScheme},
				},
			},
		}
	}

	return p
}

// centsToAmount renders integer minor currency units as a fixed two-decimal
// string. Exponent math only; no floating point.
func centsToAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

var _ domain.Visitor = (*DocumentBuilder)(nil)
