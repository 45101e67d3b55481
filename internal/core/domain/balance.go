package domain

import "github.com/shopspring/decimal"

// PairBalance is the signed net debt between two persons as of a cutoff.
// A positive Net means PersonOne owes PersonTwo; negative means the reverse.
// Net is rounded to two decimal places at the final netting step only.
type PairBalance struct {
	PersonOneID   string          `json:"personOneID"`
	PersonOneName string          `json:"personOneName"`
	PersonTwoID   string          `json:"personTwoID"`
	PersonTwoName string          `json:"personTwoName"`
	Net           decimal.Decimal `json:"net"`
}

// DebtRecord is one non-zero pairwise balance, oriented debtor -> creditor
// with a positive amount.
type DebtRecord struct {
	DebtorID     string          `json:"debtorID"`
	DebtorName   string          `json:"debtorName"`
	CreditorID   string          `json:"creditorID"`
	CreditorName string          `json:"creditorName"`
	Amount       decimal.Decimal `json:"amount"`
}
