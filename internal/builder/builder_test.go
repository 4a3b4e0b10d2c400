package builder

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gosepa/internal/domain"
)

func buildCreditFile(t *testing.T) *domain.TransferFile {
	t.Helper()

	file := domain.NewCreditTransferFile("MSG-2026-001", "ACME Corp")

	payment := domain.NewPaymentInformation("PAY-1", "FR7630006000011234567890189", "AGRIFRPP", "ACME")
	// Attaching first injects the file's payment method whitelist; the setter
	// rejects everything before that.
	file.AddPaymentInformation(payment)
	payment.SetDueDate(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, payment.SetPaymentMethod("TRF"))

	t1 := domain.NewCreditTransfer("E2E-1", 1000, "Alpha GmbH", "DE89370400440532013000", "COBADEFF")
	t1.SetRemittanceInformation("Invoice 42")
	t2 := domain.NewCreditTransfer("E2E-2", 2500, "Beta BV", "NL91ABNA0417164300", "ABNANL2A")

	payment.AddTransfer(t1)
	payment.AddTransfer(t2)

	return file
}

func TestDocumentBuilder_CreditTransfer(t *testing.T) {
	file := buildCreditFile(t)

	b := New()
	require.NoError(t, file.Accept(b))

	out, err := b.Serialize()
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, xml.Header), "serialized document must carry the XML declaration")
	assert.Contains(t, doc, `urn:iso:std:iso:20022:tech:xsd:pain.001.001.03`)
	assert.Contains(t, doc, "<MsgId>MSG-2026-001</MsgId>")
	assert.Contains(t, doc, "<NbOfTxs>2</NbOfTxs>")
	assert.Contains(t, doc, "<CtrlSum>35.00</CtrlSum>")
	assert.Contains(t, doc, "<PmtMtd>TRF</PmtMtd>")
	assert.Contains(t, doc, "<ReqdExctnDt>2026-09-01</ReqdExctnDt>")
	assert.Contains(t, doc, "<IBAN>FR7630006000011234567890189</IBAN>")
	assert.Contains(t, doc, "<BIC>AGRIFRPP</BIC>")
	assert.Contains(t, doc, `<InstdAmt Ccy="EUR">10.00</InstdAmt>`)
	assert.Contains(t, doc, `<InstdAmt Ccy="EUR">25.00</InstdAmt>`)
	assert.Contains(t, doc, "<Ustrd>Invoice 42</Ustrd>")
	assert.Contains(t, doc, "<Cd>SEPA</Cd>")

	// Transfers render in attachment order.
	assert.Less(t, strings.Index(doc, "E2E-1"), strings.Index(doc, "E2E-2"))
}

func TestDocumentBuilder_CreditTransferRoundTrips(t *testing.T) {
	file := buildCreditFile(t)

	b := New()
	require.NoError(t, file.Accept(b))

	out, err := b.Serialize()
	require.NoError(t, err)

	// The emitted document must be well-formed.
	var parsed pain001Document
	require.NoError(t, xml.Unmarshal(out, &parsed))
	require.Len(t, parsed.CstmrCdtTrfInitn.PmtInf, 1)
	assert.Equal(t, "PAY-1", parsed.CstmrCdtTrfInitn.PmtInf[0].PmtInfID)
	assert.Len(t, parsed.CstmrCdtTrfInitn.PmtInf[0].CdtTrfTxInf, 2)
}

func TestDocumentBuilder_DirectDebit(t *testing.T) {
	file := domain.NewDirectDebitFile("MSG-2026-002", "ACME Corp")

	payment := domain.NewPaymentInformation("PAY-DD-1", "FR7630006000011234567890189", "AGRIFRPP", "ACME")
	file.AddPaymentInformation(payment)
	payment.SetDueDate(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	payment.SetCreditorID("FR72ZZZ123456")
	require.NoError(t, payment.SetPaymentMethod("DD"))
	require.NoError(t, payment.SetSequenceType(domain.SequenceTypeFirst))
	require.NoError(t, payment.SetLocalInstrumentCode(domain.LocalInstrumentCore))

	dd := domain.NewDirectDebit("E2E-DD-1", 4990, "Jose Garcia", "ES9121000418450200051332", "CAIXESBB")
	dd.SetMandate("MNDT-7", time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC))
	payment.AddTransfer(dd)

	b := New()
	require.NoError(t, file.Accept(b))

	out, err := b.Serialize()
	require.NoError(t, err)

	doc := string(out)
	assert.Contains(t, doc, `urn:iso:std:iso:20022:tech:xsd:pain.008.001.02`)
	assert.Contains(t, doc, "<PmtMtd>DD</PmtMtd>")
	assert.Contains(t, doc, "<SeqTp>FRST</SeqTp>")
	assert.Contains(t, doc, "<Cd>CORE</Cd>")
	assert.Contains(t, doc, "<ReqdColltnDt>2026-09-10</ReqdColltnDt>")
	assert.Contains(t, doc, "<MndtId>MNDT-7</MndtId>")
	assert.Contains(t, doc, "<DtOfSgntr>2025-11-02</DtOfSgntr>")
	assert.Contains(t, doc, "<Id>FR72ZZZ123456</Id>")
	assert.Contains(t, doc, "<Prtry>SEPA</Prtry>")
	assert.Contains(t, doc, `<InstdAmt Ccy="EUR">49.90</InstdAmt>`)
}

func TestDocumentBuilder_BBANOriginAccount(t *testing.T) {
	file := domain.NewCreditTransferFile("MSG-5", "ACME Corp")

	payment := domain.NewPaymentInformation("PAY-1", "20041010050500013M02606", "PSSTFRPP", "ACME")
	file.AddPaymentInformation(payment)
	require.NoError(t, payment.SetPaymentMethod("TRF"))
	require.NoError(t, payment.SetSchemaName(domain.SchemaNameBBAN))
	payment.AddTransfer(domain.NewCreditTransfer("E2E-1", 100, "Alpha", "DE89370400440532013000", "COBADEFF"))

	b := New()
	require.NoError(t, file.Accept(b))

	out, err := b.Serialize()
	require.NoError(t, err)

	doc := string(out)
	assert.NotContains(t, doc, "<IBAN>20041010050500013M02606</IBAN>")
	assert.Contains(t, doc, "<Id>20041010050500013M02606</Id>")
	assert.Contains(t, doc, "<Prtry>BBAN</Prtry>")
	// Counterparty accounts are unaffected by the origin schema.
	assert.Contains(t, doc, "<IBAN>DE89370400440532013000</IBAN>")
}

func TestDocumentBuilder_HiddenOriginIBAN(t *testing.T) {
	file := domain.NewCreditTransferFile("MSG-3", "ACME Corp")

	payment := domain.NewPaymentInformation("PAY-1", "FR7630006000011234567890189", "AGRIFRPP", "ACME")
	file.AddPaymentInformation(payment)
	require.NoError(t, payment.SetPaymentMethod("TRF"))
	payment.HideOriginAccountIBAN()
	payment.AddTransfer(domain.NewCreditTransfer("E2E-1", 100, "Alpha", "DE89370400440532013000", "COBADEFF"))

	b := New()
	require.NoError(t, file.Accept(b))

	out, err := b.Serialize()
	require.NoError(t, err)

	doc := string(out)
	assert.NotContains(t, doc, "DbtrAcct", "hidden origin IBAN must omit the debtor account element")
	assert.NotContains(t, doc, "FR7630006000011234567890189")
}

func TestDocumentBuilder_HiddenGeneralSettings(t *testing.T) {
	file := domain.NewCreditTransferFile("MSG-4", "ACME Corp")

	payment := domain.NewPaymentInformation("PAY-1", "FR7630006000011234567890189", "AGRIFRPP", "ACME")
	file.AddPaymentInformation(payment)
	require.NoError(t, payment.SetPaymentMethod("TRF"))
	payment.HideGeneralSettings()
	payment.AddTransfer(domain.NewCreditTransfer("E2E-1", 100, "Alpha", "DE89370400440532013000", "COBADEFF"))

	b := New()
	require.NoError(t, file.Accept(b))

	out, err := b.Serialize()
	require.NoError(t, err)

	assert.NotContains(t, string(out), "PmtTpInf", "hidden general settings must omit the payment type block")
}

func TestDocumentBuilder_VisitOrderEnforced(t *testing.T) {
	b := New()

	payment := domain.NewPaymentInformation("PAY-1", "IBAN", "BIC", "Name")
	err := b.VisitPaymentInformation(payment)
	require.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	err = b.VisitCreditTransfer(domain.NewCreditTransfer("E2E", 1, "N", "I", "B"))
	require.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	_, err = b.Serialize()
	require.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestCentsToAmount(t *testing.T) {
	tests := []struct {
		cents    int64
		expected string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{99, "0.99"},
		{100, "1.00"},
		{3500, "35.00"},
		{123456789, "1234567.89"},
	}

	for _, tt := range tests {
		if got := centsToAmount(tt.cents); got != tt.expected {
			t.Errorf("centsToAmount(%d) = %s, expected %s", tt.cents, got, tt.expected)
		}
	}
}
