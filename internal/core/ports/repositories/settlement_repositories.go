package repositories

import (
	"context"
	"time"

	"github.com/danghm/famledger/internal/core/domain"
)

// SettlementRepository defines operations over recorded settlements.
type SettlementRepository interface {
	// SaveSettlement persists a new settlement.
	SaveSettlement(ctx context.Context, settlement domain.Settlement) error

	// ListSettlementsThrough retrieves every settlement in the given groups
	// dated strictly before until.
	ListSettlementsThrough(ctx context.Context, groupIDs []string, until time.Time) ([]domain.Settlement, error)

	// ListSettlementsInRange retrieves every settlement in the given groups
	// with from <= date < until.
	ListSettlementsInRange(ctx context.Context, groupIDs []string, from, until time.Time) ([]domain.Settlement, error)
}
