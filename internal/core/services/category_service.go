package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danghm/famledger/internal/apperrors"
	"github.com/danghm/famledger/internal/core/domain"
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	portssvc "github.com/danghm/famledger/internal/core/ports/services"
	"github.com/danghm/famledger/internal/dto"
)

// ErrReorderNotPermutation means a reorder request does not name exactly the
// group's categories.
var ErrReorderNotPermutation = fmt.Errorf("%w: ordered ids must be a permutation of the group's categories", apperrors.ErrValidation)

// categoryService lists categories with budgets and reorders them atomically.
type categoryService struct {
	BaseService
	scope        portssvc.ScopeResolverSvc
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(scope portssvc.ScopeResolverSvc, categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvc {
	return &categoryService{
		scope:        scope,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.CategorySvc = (*categoryService)(nil)

// ListCategoriesWithBudget returns the categories of the group and its
// immediate parent, budget limits included.
func (s *categoryService) ListCategoriesWithBudget(ctx context.Context, groupID string) ([]domain.Category, error) {
	chain, err := s.scope.AncestorChain(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(chain) > visibleChainLen {
		chain = chain[:visibleChainLen]
	}
	categories, err := s.categoryRepo.ListCategoriesWithBudget(ctx, chain)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ReorderCategories applies the requested display order in one atomic batch.
// The request must name exactly the group's own categories, each once;
// readers never observe a half-applied order.
func (s *categoryService) ReorderCategories(ctx context.Context, groupID string, req dto.ReorderCategoriesRequest, updaterPersonID string) error {
	if groupID == "" {
		return fmt.Errorf("%w: group id is required", apperrors.ErrValidation)
	}
	if len(req.OrderedCategoryIDs) == 0 {
		return fmt.Errorf("%w: ordered category ids are required", apperrors.ErrValidation)
	}

	existing, err := s.categoryRepo.ListCategoriesWithBudget(ctx, []string{groupID})
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	owned := make(map[string]struct{}, len(existing))
	for _, cat := range existing {
		owned[cat.CategoryID] = struct{}{}
	}
	if len(req.OrderedCategoryIDs) != len(owned) {
		return ErrReorderNotPermutation
	}

	orders := make(map[string]int, len(req.OrderedCategoryIDs))
	for position, id := range req.OrderedCategoryIDs {
		if _, ok := owned[id]; !ok {
			return ErrReorderNotPermutation
		}
		if _, dup := orders[id]; dup {
			return ErrReorderNotPermutation
		}
		orders[id] = position
	}

	if err := s.categoryRepo.UpdateCategoryOrders(ctx, groupID, orders, updaterPersonID, time.Now()); err != nil {
		return fmt.Errorf("failed to reorder categories: %w", err)
	}

	s.LogInfo(ctx, "Categories reordered",
		slog.String("group_id", groupID),
		slog.Int("count", len(orders)))
	return nil
}
