package domain

import "github.com/shopspring/decimal"

// BudgetStatus classifies actual spend against a budget.
type BudgetStatus string

const (
	BudgetOver          BudgetStatus = "OVER"
	BudgetNear          BudgetStatus = "NEAR"
	BudgetUnder         BudgetStatus = "UNDER"
	BudgetNotApplicable BudgetStatus = "NOT_APPLICABLE"
)

// BudgetTrendRow compares a category's budget against its actual expenses for
// one period bucket. Budget is the monthly limit scaled to the bucket length.
type BudgetTrendRow struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Budget       decimal.Decimal `json:"budget"`
	Actual       decimal.Decimal `json:"actual"`
	Status       BudgetStatus    `json:"status"`
}
