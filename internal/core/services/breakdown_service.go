package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/danghm/famledger/internal/apperrors"
	"github.com/danghm/famledger/internal/core/domain"
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	portssvc "github.com/danghm/famledger/internal/core/ports/services"
	"github.com/danghm/famledger/internal/dto"
	"github.com/danghm/famledger/internal/utils/splitmath"
	"github.com/shopspring/decimal"
)

var (
	ErrYearlyWithSubPeriod = fmt.Errorf("%w: yearly period must not specify month or quarter", apperrors.ErrValidation)
	ErrMonthOutOfRange     = fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
	ErrQuarterOutOfRange   = fmt.Errorf("%w: quarter must be between 1 and 4", apperrors.ErrValidation)
	ErrUnknownPeriodType   = fmt.Errorf("%w: unknown period type", apperrors.ErrValidation)
	ErrUnknownDimension    = fmt.Errorf("%w: unknown breakdown dimension", apperrors.ErrValidation)
)

// visibleChainLen caps the breakdown scope at the group and its immediate
// parent; deeper ancestors are other households' business.
const visibleChainLen = 2

// breakdownService buckets transactions into a period window and groups them
// by category or member.
type breakdownService struct {
	BaseService
	scope        portssvc.ScopeResolverSvc
	members      portssvc.MembershipIndexSvc
	txnRepo      portsrepo.TransactionRepository
	categoryRepo portsrepo.CategoryRepository
}

// NewBreakdownService creates a new breakdown aggregator.
func NewBreakdownService(
	scope portssvc.ScopeResolverSvc,
	members portssvc.MembershipIndexSvc,
	txnRepo portsrepo.TransactionRepository,
	categoryRepo portsrepo.CategoryRepository,
) portssvc.BreakdownSvc {
	return &breakdownService{
		scope:        scope,
		members:      members,
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.BreakdownSvc = (*breakdownService)(nil)

// resolveWindow turns a period spec into a half-open [start, end) window and
// the number of months it spans.
func resolveWindow(p dto.PeriodSpec) (time.Time, time.Time, int, error) {
	if p.Year <= 0 {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("%w: year is required", apperrors.ErrValidation)
	}
	switch p.Type {
	case domain.PeriodYearly:
		if p.Month != nil || p.Quarter != nil {
			return time.Time{}, time.Time{}, 0, ErrYearlyWithSubPeriod
		}
		start := time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0), 12, nil
	case domain.PeriodQuarterly:
		if p.Quarter == nil {
			return time.Time{}, time.Time{}, 0, fmt.Errorf("%w: quarterly period requires a quarter", apperrors.ErrValidation)
		}
		if *p.Quarter < 1 || *p.Quarter > 4 {
			return time.Time{}, time.Time{}, 0, ErrQuarterOutOfRange
		}
		start := time.Date(p.Year, time.Month((*p.Quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 3, 0), 3, nil
	case domain.PeriodMonthly:
		if p.Month == nil {
			return time.Time{}, time.Time{}, 0, fmt.Errorf("%w: monthly period requires a month", apperrors.ErrValidation)
		}
		if *p.Month < 1 || *p.Month > 12 {
			return time.Time{}, time.Time{}, 0, ErrMonthOutOfRange
		}
		start := time.Date(p.Year, time.Month(*p.Month), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), 1, nil
	default:
		return time.Time{}, time.Time{}, 0, ErrUnknownPeriodType
	}
}

// Breakdown groups the scope's transactions for the period by the requested
// dimension, applying the allow-list and member-participation filters.
func (s *breakdownService) Breakdown(ctx context.Context, groupID string, req dto.BreakdownRequest) ([]domain.BreakdownRow, error) {
	if req.Dimension != domain.ByCategory && req.Dimension != domain.ByMember {
		return nil, ErrUnknownDimension
	}
	start, end, _, err := resolveWindow(req.Period)
	if err != nil {
		return nil, err
	}

	selected := toSet(req.MemberIDs)
	if req.Strict && len(selected) == 0 {
		// Strict mode over an empty member set is defined to select nothing.
		return []domain.BreakdownRow{}, nil
	}

	chain, err := s.scope.AncestorChain(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(chain) > visibleChainLen {
		chain = chain[:visibleChainLen]
	}

	txns, err := s.txnRepo.ListTransactionsInRange(ctx, chain, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	categories, err := s.categoryRepo.ListCategoriesWithBudget(ctx, chain)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	members, err := s.members.ActiveMembers(ctx, chain)
	if err != nil {
		return nil, err
	}
	memberNames := make(map[string]string, len(members))
	for _, m := range members {
		memberNames[m.MembershipID] = m.PersonName
	}
	categoryByID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.CategoryID] = c
	}

	allow := toSet(req.FilterIDs)
	rows := make(map[string]*domain.BreakdownRow)

	for _, txn := range txns {
		portions, included := memberPortions(txn, selected, req.Strict)
		if !included {
			continue
		}

		switch req.Dimension {
		case domain.ByCategory:
			if len(allow) > 0 {
				if _, ok := allow[txn.CategoryID]; !ok {
					continue
				}
			}
			row := s.categoryRow(rows, txn.CategoryID, categoryByID)
			addPortion(row, txn.Type, portions.total)
		case domain.ByMember:
			for memberID, amount := range portions.perMember {
				if len(allow) > 0 {
					if _, ok := allow[memberID]; !ok {
						continue
					}
				}
				row, ok := rows[memberID]
				if !ok {
					row = &domain.BreakdownRow{
						Key:       memberID,
						Name:      memberNames[memberID],
						Dimension: domain.ByMember,
					}
					rows[memberID] = row
				}
				addPortion(row, txn.Type, amount)
			}
		}
	}

	out := make([]domain.BreakdownRow, 0, len(rows))
	for _, row := range rows {
		row.Net = row.Income.Sub(row.Expense)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	s.LogDebug(ctx, "Breakdown computed",
		slog.String("group_id", groupID),
		slog.String("dimension", string(req.Dimension)),
		slog.Int("transactions", len(txns)),
		slog.Int("rows", len(out)))
	return out, nil
}

func (s *breakdownService) categoryRow(rows map[string]*domain.BreakdownRow, categoryID string, categories map[string]domain.Category) *domain.BreakdownRow {
	if row, ok := rows[categoryID]; ok {
		return row
	}
	row := &domain.BreakdownRow{
		Key:       categoryID,
		Dimension: domain.ByCategory,
	}
	if cat, ok := categories[categoryID]; ok {
		row.Name = cat.Name
		row.BudgetLimit = cat.BudgetLimit
		row.ParentID = cat.ParentID
	}
	rows[categoryID] = row
	return row
}

// txnPortions is the counted amount of one transaction after member
// filtering: the dimension total plus the per-member distribution used by the
// member dimension.
type txnPortions struct {
	total     decimal.Decimal
	perMember map[string]decimal.Decimal
}

// memberPortions applies the member-participation filter to one transaction.
//
// Non-strict: the transaction counts when any selected member pays it
// (non-shared) or appears in its split (shared); shared amounts are rescaled
// to the selected members' combined percentage.
//
// Strict: only shared transactions where every selected member participates
// count, at the selected members' combined percentage; a combined share of
// zero excludes the transaction. Non-shared transactions never count.
func memberPortions(txn domain.Transaction, selected map[string]struct{}, strict bool) (txnPortions, bool) {
	shared := txn.IsShared && len(txn.SplitRatio) > 0

	if strict {
		if !shared {
			return txnPortions{}, false
		}
		subset, shares, ok := splitmath.RestrictToSubset(txn.Amount, txn.SplitRatio, selected)
		if !ok {
			return txnPortions{}, false
		}
		return txnPortions{total: subset, perMember: shares}, true
	}

	if len(selected) == 0 {
		// No member filter: full amount, split per ratio for the member view.
		if !shared {
			if txn.PayerID == nil {
				return txnPortions{total: txn.Amount, perMember: map[string]decimal.Decimal{}}, true
			}
			return txnPortions{total: txn.Amount, perMember: map[string]decimal.Decimal{*txn.PayerID: txn.Amount}}, true
		}
		per := make(map[string]decimal.Decimal, len(txn.SplitRatio))
		for _, item := range txn.SplitRatio {
			per[item.MemberID] = splitmath.Share(txn.Amount, item.Percentage)
		}
		return txnPortions{total: txn.Amount, perMember: per}, true
	}

	if !shared {
		if txn.PayerID == nil {
			return txnPortions{}, false
		}
		if _, ok := selected[*txn.PayerID]; !ok {
			return txnPortions{}, false
		}
		return txnPortions{total: txn.Amount, perMember: map[string]decimal.Decimal{*txn.PayerID: txn.Amount}}, true
	}

	total := decimal.Zero
	per := make(map[string]decimal.Decimal)
	for _, item := range txn.SplitRatio {
		if _, ok := selected[item.MemberID]; !ok {
			continue
		}
		share := splitmath.Share(txn.Amount, item.Percentage)
		per[item.MemberID] = share
		total = total.Add(share)
	}
	if len(per) == 0 {
		return txnPortions{}, false
	}
	return txnPortions{total: total, perMember: per}, true
}

func addPortion(row *domain.BreakdownRow, txnType domain.TransactionType, amount decimal.Decimal) {
	if txnType == domain.Income {
		row.Income = row.Income.Add(amount)
	} else {
		row.Expense = row.Expense.Add(amount)
	}
}

func toSet(ids []string) map[string]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
