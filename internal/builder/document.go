package builder

import "encoding/xml"

// XML marshaling structs for the pain.001.001.03 and pain.008.001.02
// schemas. Only the subset of the schemas this service emits is modeled.

type pain001Document struct {
	XMLName          xml.Name          `xml:"Document"`
	Xmlns            string            `xml:"xmlns,attr"`
	CstmrCdtTrfInitn pain001Initiation `xml:"CstmrCdtTrfInitn"`
}

type pain001Initiation struct {
	GrpHdr groupHeader          `xml:"GrpHdr"`
	PmtInf []pain001PaymentInfo `xml:"PmtInf"`
}

type pain008Document struct {
	XMLName           xml.Name          `xml:"Document"`
	Xmlns             string            `xml:"xmlns,attr"`
	CstmrDrctDbtInitn pain008Initiation `xml:"CstmrDrctDbtInitn"`
}

type pain008Initiation struct {
	GrpHdr groupHeader          `xml:"GrpHdr"`
	PmtInf []pain008PaymentInfo `xml:"PmtInf"`
}

type groupHeader struct {
	MsgID    string          `xml:"MsgId"`
	CreDtTm  string          `xml:"CreDtTm"`
	NbOfTxs  string          `xml:"NbOfTxs"`
	CtrlSum  string          `xml:"CtrlSum"`
	InitgPty initiatingParty `xml:"InitgPty"`
}

type initiatingParty struct {
	Nm string   `xml:"Nm"`
	ID *partyID `xml:"Id,omitempty"`
}

type pain001PaymentInfo struct {
	PmtInfID    string               `xml:"PmtInfId"`
	PmtMtd      string               `xml:"PmtMtd"`
	BtchBookg   *bool                `xml:"BtchBookg,omitempty"`
	NbOfTxs     string               `xml:"NbOfTxs"`
	CtrlSum     string               `xml:"CtrlSum"`
	PmtTpInf    *paymentTypeInfo     `xml:"PmtTpInf,omitempty"`
	ReqdExctnDt string               `xml:"ReqdExctnDt"`
	Dbtr        party                `xml:"Dbtr"`
	DbtrAcct    *account             `xml:"DbtrAcct,omitempty"`
	DbtrAgt     agent                `xml:"DbtrAgt"`
	ChrgBr      string               `xml:"ChrgBr"`
	CdtTrfTxInf []pain001Transaction `xml:"CdtTrfTxInf"`
}

type pain008PaymentInfo struct {
	PmtInfID     string               `xml:"PmtInfId"`
	PmtMtd       string               `xml:"PmtMtd"`
	BtchBookg    *bool                `xml:"BtchBookg,omitempty"`
	NbOfTxs      string               `xml:"NbOfTxs"`
	CtrlSum      string               `xml:"CtrlSum"`
	PmtTpInf     *paymentTypeInfo     `xml:"PmtTpInf,omitempty"`
	ReqdColltnDt string               `xml:"ReqdColltnDt"`
	Cdtr         party                `xml:"Cdtr"`
	CdtrAcct     *account             `xml:"CdtrAcct,omitempty"`
	CdtrAgt      agent                `xml:"CdtrAgt"`
	ChrgBr       string               `xml:"ChrgBr"`
	CdtrSchmeID  *creditorSchemeID    `xml:"CdtrSchmeId,omitempty"`
	DrctDbtTxInf []pain008Transaction `xml:"DrctDbtTxInf"`
}

type paymentTypeInfo struct {
	InstrPrty string       `xml:"InstrPrty,omitempty"`
	SvcLvl    *codeWrapper `xml:"SvcLvl,omitempty"`
	LclInstrm *codeWrapper `xml:"LclInstrm,omitempty"`
	SeqTp     string       `xml:"SeqTp,omitempty"`
	CtgyPurp  *codeWrapper `xml:"CtgyPurp,omitempty"`
}

type codeWrapper struct {
	Cd string `xml:"Cd"`
}

type party struct {
	Nm      string         `xml:"Nm"`
	PstlAdr *postalAddress `xml:"PstlAdr,omitempty"`
	ID      *partyID       `xml:"Id,omitempty"`
}

type postalAddress struct {
	Ctry string `xml:"Ctry"`
}

type partyID struct {
	OrgID *orgID `xml:"OrgId,omitempty"`
}

type orgID struct {
	Othr *genericID `xml:"Othr,omitempty"`
}

type genericID struct {
	ID      string      `xml:"Id"`
	SchmeNm *schemeName `xml:"SchmeNm,omitempty"`
}

type schemeName struct {
	Cd    string `xml:"Cd,omitempty"`
	Prtry string `xml:"Prtry,omitempty"`
}

type account struct {
	ID  accountID `xml:"Id"`
	Ccy string    `xml:"Ccy,omitempty"`
}

type accountID struct {
	IBAN string     `xml:"IBAN,omitempty"`
	Othr *genericID `xml:"Othr,omitempty"`
}

type agent struct {
	FinInstnID finInstnID `xml:"FinInstnId"`
}

type finInstnID struct {
	BIC string `xml:"BIC"`
}

type paymentID struct {
	EndToEndID string `xml:"EndToEndId"`
}

type instructedAmount struct {
	Ccy   string `xml:"Ccy,attr"`
	Value string `xml:",chardata"`
}

type transactionAmount struct {
	InstdAmt instructedAmount `xml:"InstdAmt"`
}

type remittanceInfo struct {
	Ustrd string `xml:"Ustrd"`
}

type pain001Transaction struct {
	PmtID    paymentID         `xml:"PmtId"`
	Amt      transactionAmount `xml:"Amt"`
	CdtrAgt  *agent            `xml:"CdtrAgt,omitempty"`
	Cdtr     party             `xml:"Cdtr"`
	CdtrAcct account           `xml:"CdtrAcct"`
	RmtInf   *remittanceInfo   `xml:"RmtInf,omitempty"`
}

type pain008Transaction struct {
	PmtID     paymentID        `xml:"PmtId"`
	InstdAmt  instructedAmount `xml:"InstdAmt"`
	DrctDbtTx directDebitTx    `xml:"DrctDbtTx"`
	DbtrAgt   agent            `xml:"DbtrAgt"`
	Dbtr      party            `xml:"Dbtr"`
	DbtrAcct  account          `xml:"DbtrAcct"`
	RmtInf    *remittanceInfo  `xml:"RmtInf,omitempty"`
}

type directDebitTx struct {
	MndtRltdInf mandateInfo `xml:"MndtRltdInf"`
}

type mandateInfo struct {
	MndtID    string `xml:"MndtId"`
	DtOfSgntr string `xml:"DtOfSgntr"`
}

type creditorSchemeID struct {
	ID creditorSchemePartyID `xml:"Id"`
}

type creditorSchemePartyID struct {
	PrvtID privateID `xml:"PrvtId"`
}

type privateID struct {
	Othr genericSchemeID `xml:"Othr"`
}

type genericSchemeID struct {
	ID      string     `xml:"Id"`
	SchmeNm schemeName `xml:"SchmeNm"`
}
