package repositories

import (
	"context"
	"time"

	"github.com/danghm/famledger/internal/core/domain"
)

// TransactionRepository defines read operations over transactions.
type TransactionRepository interface {
	// ListTransactionsThrough retrieves every transaction in the given groups
	// dated strictly before until. Used for cumulative running balances.
	ListTransactionsThrough(ctx context.Context, groupIDs []string, until time.Time) ([]domain.Transaction, error)

	// ListTransactionsInRange retrieves every transaction in the given groups
	// with from <= date < until. Used for period breakdowns.
	ListTransactionsInRange(ctx context.Context, groupIDs []string, from, until time.Time) ([]domain.Transaction, error)
}
