package services

import (
	"context"
	"time"

	"github.com/danghm/famledger/internal/core/domain"
)

// BalanceSvc nets owed amounts between persons across a scope, cumulative to
// the end of a cutoff month.
type BalanceSvc interface {
	// CalculatePairBalance computes the signed net debt between two persons.
	// scopeGroupID nil means global mode: the union of both persons'
	// accessible groups. A nil result with nil error means the pair is
	// settled (rounded net of zero).
	CalculatePairBalance(ctx context.Context, scopeGroupID *string, personOneID, personTwoID string, asOfYear int, asOfMonth time.Month) (*domain.PairBalance, error)

	// CalculateAllBalances computes every non-zero pairwise balance among the
	// scope's active members, oriented debtor -> creditor. scopeGroupID nil
	// means the person's full accessible set.
	CalculateAllBalances(ctx context.Context, scopeGroupID *string, personID string, asOfYear int, asOfMonth time.Month) ([]domain.DebtRecord, error)
}
