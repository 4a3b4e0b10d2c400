package domain

import (
	"fmt"
	"strings"
	"time"
)

// Mandate sequence types for recurring direct debits (ISO 20022 SeqTp).
const (
	SequenceTypeFirst     = "FRST"
	SequenceTypeRecurring = "RCUR"
	SequenceTypeOneOff    = "OOFF"
	SequenceTypeFinal     = "FNAL"
)

// Instruction priorities (ISO 20022 InstrPrty).
const (
	InstructionPriorityNormal = "NORM"
	InstructionPriorityHigh   = "HIGH"
)

// Service levels (ISO 20022 SvcLvl/Cd).
const (
	ServiceLevelSEPA      = "SEPA"
	ServiceLevelNonUrgent = "NURG"
)

// Local instrument codes (ISO 20022 LclInstrm/Cd).
const (
	LocalInstrumentB2B  = "B2B"
	LocalInstrumentCore = "CORE"
	LocalInstrumentCOR1 = "COR1"
	LocalInstrumentIN   = "IN"
	LocalInstrumentONCL = "ONCL"
)

// Account schema names.
const (
	SchemaNameIBAN = "IBAN"
	SchemaNameBBAN = "BBAN"
)

// DefaultDateLayout renders due dates as ISO calendar dates.
const DefaultDateLayout = "2006-01-02"

var validLocalInstrumentCodes = map[string]bool{
	LocalInstrumentB2B:  true,
	LocalInstrumentCore: true,
	LocalInstrumentCOR1: true,
	LocalInstrumentIN:   true,
	LocalInstrumentONCL: true,
}

var validInstructionPriorities = map[string]bool{
	InstructionPriorityNormal: true,
	InstructionPriorityHigh:   true,
}

var validServiceLevels = map[string]bool{
	ServiceLevelSEPA:      true,
	ServiceLevelNonUrgent: true,
}

var validSchemaNames = map[string]bool{
	SchemaNameIBAN: true,
	SchemaNameBBAN: true,
}

var validSequenceTypes = map[string]bool{
	SequenceTypeFirst:     true,
	SequenceTypeRecurring: true,
	SequenceTypeOneOff:    true,
	SequenceTypeFinal:     true,
}

// PaymentInformation groups transfers that share one origin account, due
// date, payment method and sequencing rules. It owns the aggregate totals
// (transaction count and control sum in integer cents), enforces the SEPA
// enumeration rules at assignment time, and drives visitor traversal over its
// transfers in attachment order.
//
// The block is assembled by a single caller and handed to a Visitor once
// assembly is complete; it is not safe for concurrent mutation.
type PaymentInformation struct {
	ID string

	// Origin (debtor for credit transfers, creditor for direct debits)
	OriginName                          string
	OriginAccountIBAN                   string
	OriginAgentBIC                      string
	OriginAccountCurrency               string
	OriginBankPartyIdentification       string
	OriginBankPartyIdentificationScheme string
	CreditorID                          string

	// Execution metadata
	DueDate             time.Time
	DateLayout          string
	InstructionPriority string
	CategoryPurposeCode string
	ServiceLevel        string
	SchemaName          string
	LocalInstrumentCode string
	SequenceType        string
	BatchBooking        *bool
	MandateSignDate     time.Time
	Country             string

	paymentMethod       string
	validPaymentMethods []string

	numberOfTransactions int
	controlSumCents      int64
	transfers            []Transfer

	hiddenOriginAccountIBAN bool
	hiddenGeneralSettings   bool
}

// NewPaymentInformation creates a payment information block. The ID must be
// unambiguous within the owning transfer file; uniqueness is the caller's
// responsibility. Currency defaults to EUR and the due date to construction
// time.
func NewPaymentInformation(id, originAccountIBAN, originAgentBIC, originName string) *PaymentInformation {
	return &PaymentInformation{
		ID:                    id,
		OriginName:            Sanitize(originName),
		OriginAccountIBAN:     originAccountIBAN,
		OriginAgentBIC:        originAgentBIC,
		OriginAccountCurrency: "EUR",
		DueDate:               time.Now(),
		DateLayout:            DefaultDateLayout,
		ServiceLevel:          ServiceLevelSEPA,
		SchemaName:            SchemaNameIBAN,
	}
}

// SetValidPaymentMethods injects the whitelist against which subsequent
// SetPaymentMethod calls are checked. The legal set differs between credit
// transfer and direct debit files, so the owning transfer file supplies it.
// No validation is performed here; an empty whitelist rejects every method.
func (p *PaymentInformation) SetValidPaymentMethods(methods []string) {
	p.validPaymentMethods = methods
}

// SetPaymentMethod validates the method against the injected whitelist and
// stores the upper-cased value. Calling it before SetValidPaymentMethods is a
// caller error: the empty whitelist rejects every candidate.
func (p *PaymentInformation) SetPaymentMethod(method string) error {
	method = strings.ToUpper(strings.TrimSpace(method))
	for _, valid := range p.validPaymentMethods {
		if method == strings.ToUpper(valid) {
			p.paymentMethod = method
			return nil
		}
	}

	return fmt.Errorf("%w: payment method %q not in %v", ErrInvalidConfiguration, method, p.validPaymentMethods)
}

// PaymentMethod returns the validated payment method, empty if unset.
func (p *PaymentInformation) PaymentMethod() string {
	return p.paymentMethod
}

// SetLocalInstrumentCode validates and stores the local instrument code.
func (p *PaymentInformation) SetLocalInstrumentCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !validLocalInstrumentCodes[code] {
		return fmt.Errorf("%w: invalid local instrument code %q", ErrInvalidConfiguration, code)
	}

	p.LocalInstrumentCode = code

	return nil
}

// SetInstructionPriority validates and stores the instruction priority.
func (p *PaymentInformation) SetInstructionPriority(priority string) error {
	priority = strings.ToUpper(strings.TrimSpace(priority))
	if !validInstructionPriorities[priority] {
		return fmt.Errorf("%w: invalid instruction priority %q", ErrInvalidConfiguration, priority)
	}

	p.InstructionPriority = priority

	return nil
}

// SetServiceLevel validates and stores the service level.
func (p *PaymentInformation) SetServiceLevel(level string) error {
	level = strings.ToUpper(strings.TrimSpace(level))
	if !validServiceLevels[level] {
		return fmt.Errorf("%w: invalid service level %q", ErrInvalidConfiguration, level)
	}

	p.ServiceLevel = level

	return nil
}

// SetSequenceType validates and stores the mandate sequence type.
func (p *PaymentInformation) SetSequenceType(seqType string) error {
	seqType = strings.ToUpper(strings.TrimSpace(seqType))
	if !validSequenceTypes[seqType] {
		return fmt.Errorf("%w: invalid sequence type %q", ErrInvalidConfiguration, seqType)
	}

	p.SequenceType = seqType

	return nil
}

// SetSchemaName validates and stores the account identification schema. BBAN
// accounts render through the generic Othr identification instead of the
// IBAN element.
func (p *PaymentInformation) SetSchemaName(name string) error {
	name = strings.ToUpper(strings.TrimSpace(name))
	if !validSchemaNames[name] {
		return fmt.Errorf("%w: invalid schema name %q", ErrInvalidConfiguration, name)
	}

	p.SchemaName = name

	return nil
}

// SetOriginBankPartyIdentification stores a sanitized party identification
// with its coded scheme. The scheme must be 1 to 4 characters.
func (p *PaymentInformation) SetOriginBankPartyIdentification(id, scheme string) error {
	scheme = Sanitize(scheme)
	if len(scheme) < 1 || len(scheme) > 4 {
		return fmt.Errorf("%w: party identification scheme must be 1-4 characters, got %q", ErrInvalidConfiguration, scheme)
	}

	p.OriginBankPartyIdentification = Sanitize(id)
	p.OriginBankPartyIdentificationScheme = scheme

	return nil
}

// SetCreditorID stores the sanitized creditor identifier. Mandatory for
// direct debit files, unused otherwise.
func (p *PaymentInformation) SetCreditorID(id string) {
	p.CreditorID = Sanitize(id)
}

// SetCategoryPurposeCode stores the payment purpose classification.
func (p *PaymentInformation) SetCategoryPurposeCode(code string) {
	p.CategoryPurposeCode = Sanitize(code)
}

// SetCountry stores the origin country.
func (p *PaymentInformation) SetCountry(country string) {
	p.Country = Sanitize(country)
}

// SetOriginAccountCurrency overrides the default EUR account currency.
func (p *PaymentInformation) SetOriginAccountCurrency(currency string) {
	p.OriginAccountCurrency = strings.ToUpper(strings.TrimSpace(currency))
}

// SetBatchBooking sets the batch booking indicator. Unset means the bank
// default applies.
func (p *PaymentInformation) SetBatchBooking(batchBooking bool) {
	p.BatchBooking = &batchBooking
}

// SetDueDate sets the requested execution (or collection) date.
func (p *PaymentInformation) SetDueDate(dueDate time.Time) {
	p.DueDate = dueDate
}

// SetDateLayout overrides the Go reference layout used to render the due date.
func (p *PaymentInformation) SetDateLayout(layout string) {
	p.DateLayout = layout
}

// SetMandateSignDate sets the mandate signature date for direct debits.
func (p *PaymentInformation) SetMandateSignDate(signDate time.Time) {
	p.MandateSignDate = signDate
}

// HideOriginAccountIBAN latches the flag telling the document builder to omit
// the origin IBAN. One-way: once hidden it stays hidden for the block's
// lifetime.
func (p *PaymentInformation) HideOriginAccountIBAN() {
	p.hiddenOriginAccountIBAN = true
}

// HasHiddenOriginAccountIBAN reports whether the origin IBAN must be omitted.
func (p *PaymentInformation) HasHiddenOriginAccountIBAN() bool {
	return p.hiddenOriginAccountIBAN
}

// HideGeneralSettings latches the flag telling the document builder to omit
// the general settings block. One-way, like HideOriginAccountIBAN.
func (p *PaymentInformation) HideGeneralSettings() {
	p.hiddenGeneralSettings = true
}

// HasHiddenGeneralSettings reports whether general settings must be omitted.
func (p *PaymentInformation) HasHiddenGeneralSettings() bool {
	return p.hiddenGeneralSettings
}

// AddTransfer appends a transfer to the block and updates the aggregates.
// The count and control sum are maintained here and only here; transfers
// cannot be detached, so the invariants hold after every attachment without
// any compensating logic. Callers that need to drop a transfer rebuild the
// block.
func (p *PaymentInformation) AddTransfer(transfer Transfer) {
	p.transfers = append(p.transfers, transfer)
	p.numberOfTransactions++
	p.controlSumCents += transfer.AmountCents()
}

// NumberOfTransactions returns the count of attached transfers.
func (p *PaymentInformation) NumberOfTransactions() int {
	return p.numberOfTransactions
}

// ControlSumCents returns the exact sum of attached transfer amounts in
// minor currency units.
func (p *PaymentInformation) ControlSumCents() int64 {
	return p.controlSumCents
}

// Transfers returns the attached transfers in attachment order.
func (p *PaymentInformation) Transfers() []Transfer {
	return p.transfers
}

// DueDateString returns the due date rendered with the configured layout.
func (p *PaymentInformation) DueDateString() string {
	return p.DueDate.Format(p.DateLayout)
}

// Accept presents the block to the visitor, then dispatches each attached
// transfer in attachment order. The block is always visited before any of
// its transfers.
func (p *PaymentInformation) Accept(v Visitor) error {
	if err := v.VisitPaymentInformation(p); err != nil {
		return err
	}

	for _, transfer := range p.transfers {
		if err := transfer.Accept(v); err != nil {
			return err
		}
	}

	return nil
}
