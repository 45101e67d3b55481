package repositories

import (
	"context"

	"github.com/danghm/famledger/internal/core/domain"
)

// GroupRepository defines read operations over the family group tree.
type GroupRepository interface {
	// FindGroupByID retrieves a single group by its id.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// ListChildGroups retrieves every group whose parent is one of parentIDs.
	ListChildGroups(ctx context.Context, parentIDs []string) ([]domain.Group, error)
}
