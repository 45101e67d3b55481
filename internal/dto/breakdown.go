package dto

import (
	"github.com/danghm/famledger/internal/core/domain"
)

// PeriodSpec selects a concrete reporting window. Yearly periods must not
// carry a month or quarter; monthly periods need Month, quarterly need
// Quarter.
type PeriodSpec struct {
	Type    domain.PeriodType `json:"periodType" binding:"required"`
	Year    int               `json:"year" binding:"required"`
	Month   *int              `json:"month,omitempty"`   // 1..12
	Quarter *int              `json:"quarter,omitempty"` // 1..4
}

// BreakdownRequest describes one breakdown query. FilterIDs is an allow-list
// on the grouping dimension's keys; MemberIDs selects members for
// participation filtering, with Strict switching between the
// all-must-participate and the proportional any-participates semantics.
type BreakdownRequest struct {
	Dimension domain.BreakdownDimension `json:"dimension" binding:"required"`
	Period    PeriodSpec                `json:"period" binding:"required"`
	FilterIDs []string                  `json:"filterIds,omitempty"`
	MemberIDs []string                  `json:"memberIds,omitempty"`
	Strict    bool                      `json:"strict"`
}

// BreakdownResponse wraps the grouped rows of one breakdown query.
type BreakdownResponse struct {
	Rows []domain.BreakdownRow `json:"rows"`
}

// BudgetTrendRequest describes one budget-vs-actual query. Member filtering
// carries the same strict/proportional semantics as BreakdownRequest.
type BudgetTrendRequest struct {
	Period      PeriodSpec `json:"period" binding:"required"`
	CategoryIDs []string   `json:"categoryIds,omitempty"`
	MemberIDs   []string   `json:"memberIds,omitempty"`
	Strict      bool       `json:"strict"`
}

// BudgetTrendResponse wraps the per-category trend rows.
type BudgetTrendResponse struct {
	Rows []domain.BudgetTrendRow `json:"rows"`
}
