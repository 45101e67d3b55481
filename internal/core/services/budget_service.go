package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/danghm/famledger/internal/core/domain"
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	portssvc "github.com/danghm/famledger/internal/core/ports/services"
	"github.com/danghm/famledger/internal/dto"
	"github.com/shopspring/decimal"
)

// budgetNearRatio is the fixed threshold above which actual spend counts as
// "near" its budget.
var budgetNearRatio = decimal.NewFromFloat(0.8)

// budgetService compares per-category monthly budget limits against actual
// expenses from the breakdown aggregator.
type budgetService struct {
	BaseService
	scope        portssvc.ScopeResolverSvc
	breakdown    portssvc.BreakdownSvc
	categoryRepo portsrepo.CategoryRepository
}

// NewBudgetService creates a new budget trend calculator.
func NewBudgetService(
	scope portssvc.ScopeResolverSvc,
	breakdown portssvc.BreakdownSvc,
	categoryRepo portsrepo.CategoryRepository,
) portssvc.BudgetSvc {
	return &budgetService{
		scope:        scope,
		breakdown:    breakdown,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.BudgetSvc = (*budgetService)(nil)

// BudgetTrend produces one row per relevant category for the period: the
// monthly budget limit scaled to the bucket length against the actual expense
// total under the same member-filtering semantics as the breakdown.
// Without an explicit category selection only budgeted categories appear;
// selected categories appear even without a limit, contributing zero budget.
func (s *budgetService) BudgetTrend(ctx context.Context, groupID string, req dto.BudgetTrendRequest) ([]domain.BudgetTrendRow, error) {
	_, _, months, err := resolveWindow(req.Period)
	if err != nil {
		return nil, err
	}
	if req.Strict && len(req.MemberIDs) == 0 {
		// Strict mode over an empty member set selects nothing, same as the
		// breakdown it is built on.
		return []domain.BudgetTrendRow{}, nil
	}

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

	rows, err := s.breakdown.Breakdown(ctx, groupID, dto.BreakdownRequest{
		Dimension: domain.ByCategory,
		Period:    req.Period,
		FilterIDs: req.CategoryIDs,
		MemberIDs: req.MemberIDs,
		Strict:    req.Strict,
	})
	if err != nil {
		return nil, err
	}
	actuals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		actuals[row.Key] = row.Expense
	}

	selected := toSet(req.CategoryIDs)
	scale := decimal.NewFromInt(int64(months))

	trend := make([]domain.BudgetTrendRow, 0, len(categories))
	for _, cat := range categories {
		if len(selected) > 0 {
			if _, ok := selected[cat.CategoryID]; !ok {
				continue
			}
		} else if cat.BudgetLimit == nil {
			continue
		}

		budget := decimal.Zero
		if cat.BudgetLimit != nil {
			budget = cat.BudgetLimit.Mul(scale)
		}
		actual := actuals[cat.CategoryID]
		trend = append(trend, domain.BudgetTrendRow{
			CategoryID:   cat.CategoryID,
			CategoryName: cat.Name,
			Budget:       budget,
			Actual:       actual,
			Status:       ClassifyBudgetStatus(actual, budget),
		})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].CategoryID < trend[j].CategoryID })

	s.LogDebug(ctx, "Budget trend computed",
		slog.String("group_id", groupID),
		slog.Int("categories", len(trend)))
	return trend, nil
}

// ClassifyBudgetStatus grades actual spend against a budget: over when actual
// exceeds it, near from 80% upward, under below that, and not-applicable when
// there is no positive budget to compare against.
func ClassifyBudgetStatus(actual, budget decimal.Decimal) domain.BudgetStatus {
	if budget.LessThanOrEqual(decimal.Zero) {
		return domain.BudgetNotApplicable
	}
	if actual.GreaterThan(budget) {
		return domain.BudgetOver
	}
	if actual.GreaterThanOrEqual(budget.Mul(budgetNearRatio)) {
		return domain.BudgetNear
	}
	return domain.BudgetUnder
}
