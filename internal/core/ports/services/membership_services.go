package services

import (
	"context"

	"github.com/danghm/famledger/internal/core/domain"
)

// MembershipIndexSvc finds active memberships within a resolved scope.
type MembershipIndexSvc interface {
	// ActiveMembers returns active memberships across the given groups.
	ActiveMembers(ctx context.Context, groupIDs []string) ([]domain.Membership, error)

	// MembershipsOfPersonsInGroups returns the given persons' active
	// memberships in the given groups, keyed by person id. A person with no
	// active membership anywhere in the scope yields apperrors.ErrForbidden;
	// this is an authorization boundary, not a data-completeness check.
	MembershipsOfPersonsInGroups(ctx context.Context, personIDs []string, groupIDs []string) (map[string][]domain.Membership, error)
}
