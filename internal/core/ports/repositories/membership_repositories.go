package repositories

import (
	"context"

	"github.com/danghm/famledger/internal/core/domain"
)

// MembershipRepository defines read operations over group memberships.
type MembershipRepository interface {
	// ListActiveMemberships retrieves active memberships across the given
	// groups, person name included.
	ListActiveMemberships(ctx context.Context, groupIDs []string) ([]domain.Membership, error)

	// ListMembershipsOfPersons retrieves active memberships of the given
	// persons restricted to the given groups.
	ListMembershipsOfPersons(ctx context.Context, personIDs []string, groupIDs []string) ([]domain.Membership, error)

	// ListGroupIDsForPerson retrieves every group where the person holds any
	// membership, active or not.
	ListGroupIDsForPerson(ctx context.Context, personID string) ([]string, error)
}
