package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType at the database layer.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// SplitItem is one decoded entry of the split_ratio JSONB column.
type SplitItem struct {
	MemberID   string `json:"memberId"`
	Percentage int64  `json:"percentage"`
}

// Transaction is the database representation of a transaction. SplitRatio is
// stored as a JSONB document and decoded exactly once, in the repository.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	GroupID       string          `db:"group_id"`
	CategoryID    string          `db:"category_id"`
	Amount        decimal.Decimal `db:"amount"`
	Date          time.Time       `db:"date"`
	Type          TransactionType `db:"type"`
	PayerID       *string         `db:"payer_id"`
	IsShared      bool            `db:"is_shared"`
	SplitRatio    []SplitItem     `db:"split_ratio"`
	Note          string          `db:"note"`
	AuditFields
}

// Settlement is the database representation of a settlement.
type Settlement struct {
	SettlementID string          `db:"settlement_id"`
	GroupID      string          `db:"group_id"`
	PayerID      string          `db:"payer_id"`
	PayeeID      string          `db:"payee_id"`
	Amount       decimal.Decimal `db:"amount"`
	Date         time.Time       `db:"date"`
	Note         string          `db:"note"`
	AuditFields
}

// Category is the database representation of a category.
type Category struct {
	CategoryID   string           `db:"category_id"`
	GroupID      string           `db:"group_id"`
	Name         string           `db:"name"`
	ParentID     *string          `db:"parent_id"`
	BudgetLimit  *decimal.Decimal `db:"budget_limit"`
	DisplayOrder int              `db:"display_order"`
	AuditFields
}
