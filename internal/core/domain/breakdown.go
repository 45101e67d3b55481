package domain

import "github.com/shopspring/decimal"

// PeriodType selects the bucketing of a breakdown window.
type PeriodType string

const (
	PeriodMonthly   PeriodType = "MONTHLY"
	PeriodQuarterly PeriodType = "QUARTERLY"
	PeriodYearly    PeriodType = "YEARLY"
)

// BreakdownDimension selects the grouping key of a breakdown.
type BreakdownDimension string

const (
	ByCategory BreakdownDimension = "CATEGORY"
	ByMember   BreakdownDimension = "MEMBER"
)

// BreakdownRow is one grouped total in a breakdown report. BudgetLimit and
// ParentID are populated for category rows only.
type BreakdownRow struct {
	Key         string             `json:"key"`  // Category or membership id
	Name        string             `json:"name"` // Display name for the key
	Income      decimal.Decimal    `json:"income"`
	Expense     decimal.Decimal    `json:"expense"`
	Net         decimal.Decimal    `json:"net"` // Income minus expense
	BudgetLimit *decimal.Decimal   `json:"budgetLimit,omitempty"`
	ParentID    *string            `json:"parentID,omitempty"`
	Dimension   BreakdownDimension `json:"dimension"`
}
