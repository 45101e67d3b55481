package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction records money coming in or going out.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// SplitItem is one entry of a shared transaction's split ratio. Percentages
// are whole numbers; a non-empty split must sum to exactly 100.
type SplitItem struct {
	MemberID   string `json:"memberId"`   // Membership.membershipID
	Percentage int64  `json:"percentage"` // 0..100
}

// Transaction is a single income or expense record inside a group.
// A shared transaction carries a split ratio describing how much of the
// amount each member owes the payer; a non-shared transaction is absorbed
// entirely by the payer and creates no debt.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	GroupID       string          `json:"groupID"`       // FK -> Group.groupID (Not Null)
	CategoryID    string          `json:"categoryID"`    // FK -> Category.categoryID (Not Null)
	Amount        decimal.Decimal `json:"amount"`        // Positive value
	Date          time.Time       `json:"date"`          // Date the money moved
	Type          TransactionType `json:"type"`          // INCOME or EXPENSE (Not Null)
	PayerID       *string         `json:"payerID"`       // FK -> Membership.membershipID, nullable
	IsShared      bool            `json:"isShared"`
	SplitRatio    []SplitItem     `json:"splitRatio"` // Empty when not shared
	Note          string          `json:"note"`       // Nullable
	AuditFields
}
