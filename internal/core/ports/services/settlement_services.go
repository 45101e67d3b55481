package services

import (
	"context"
	"time"

	"github.com/danghm/famledger/internal/core/domain"
	"github.com/danghm/famledger/internal/dto"
)

// SettlementSvc records and lists manual debt settlements.
type SettlementSvc interface {
	// CreateSettlement validates and persists one settlement. Both persons
	// must hold an active membership in the group.
	CreateSettlement(ctx context.Context, groupID string, req dto.CreateSettlementRequest, creatorPersonID string) (*domain.Settlement, error)

	// ListSettlements returns settlements of the group and its immediate
	// parent with from <= date < until.
	ListSettlements(ctx context.Context, groupID string, from, until time.Time) ([]domain.Settlement, error)
}

// CategorySvc lists categories with budgets and reorders them atomically.
type CategorySvc interface {
	ListCategoriesWithBudget(ctx context.Context, groupID string) ([]domain.Category, error)

	// ReorderCategories applies a new display order in one atomic batch; the
	// ids must be a permutation of the group's categories.
	ReorderCategories(ctx context.Context, groupID string, req dto.ReorderCategoriesRequest, updaterPersonID string) error
}
