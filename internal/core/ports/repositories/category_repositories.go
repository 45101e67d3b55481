package repositories

import (
	"context"
	"time"

	"github.com/danghm/famledger/internal/core/domain"
)

// CategoryRepository defines operations over transaction categories.
type CategoryRepository interface {
	// ListCategoriesWithBudget retrieves categories of the given groups,
	// budget limits included, ordered by display order.
	ListCategoriesWithBudget(ctx context.Context, groupIDs []string) ([]domain.Category, error)

	// UpdateCategoryOrders applies new display orders to the given group's
	// categories in a single atomic batch: all rows update or none.
	UpdateCategoryOrders(ctx context.Context, groupID string, orders map[string]int, updatedBy string, updatedAt time.Time) error
}
