package services

import (
	"context"

	"github.com/danghm/famledger/internal/core/domain"
	"github.com/danghm/famledger/internal/dto"
)

// BreakdownSvc buckets transactions into a period window and groups them by
// category or member under proportional or strict member filtering.
type BreakdownSvc interface {
	Breakdown(ctx context.Context, groupID string, req dto.BreakdownRequest) ([]domain.BreakdownRow, error)
}

// BudgetSvc compares per-category budget limits against actual expenses for a
// period, reusing the breakdown member-filtering semantics.
type BudgetSvc interface {
	BudgetTrend(ctx context.Context, groupID string, req dto.BudgetTrendRequest) ([]domain.BudgetTrendRow, error)
}
