package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danghm/famledger/internal/apperrors"
	"github.com/danghm/famledger/internal/core/domain"
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	portssvc "github.com/danghm/famledger/internal/core/ports/services"
)

// membershipIndexService finds active memberships within a resolved scope.
type membershipIndexService struct {
	BaseService
	membershipRepo portsrepo.MembershipRepository
}

// NewMembershipIndexService creates a new membership index.
func NewMembershipIndexService(membershipRepo portsrepo.MembershipRepository) portssvc.MembershipIndexSvc {
	return &membershipIndexService{membershipRepo: membershipRepo}
}

var _ portssvc.MembershipIndexSvc = (*membershipIndexService)(nil)

// ActiveMembers returns the active memberships across the given groups.
func (s *membershipIndexService) ActiveMembers(ctx context.Context, groupIDs []string) ([]domain.Membership, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	members, err := s.membershipRepo.ListActiveMemberships(ctx, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list active memberships: %w", err)
	}
	return members, nil
}

// MembershipsOfPersonsInGroups returns the persons' active memberships within
// the given groups, keyed by person id. A person holding no active membership
// anywhere in the scope is an authorization failure, not an empty result:
// computing against a scope one cannot act in must be refused.
func (s *membershipIndexService) MembershipsOfPersonsInGroups(ctx context.Context, personIDs []string, groupIDs []string) (map[string][]domain.Membership, error) {
	if len(personIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one person id is required", apperrors.ErrValidation)
	}

	byPerson := make(map[string][]domain.Membership, len(personIDs))
	if len(groupIDs) > 0 {
		memberships, err := s.membershipRepo.ListMembershipsOfPersons(ctx, personIDs, groupIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to list memberships of persons: %w", err)
		}
		for _, m := range memberships {
			byPerson[m.PersonID] = append(byPerson[m.PersonID], m)
		}
	}

	for _, personID := range personIDs {
		if len(byPerson[personID]) == 0 {
			s.LogInfo(ctx, "Person has no active membership in scope",
				slog.String("person_id", personID),
				slog.Int("scope_size", len(groupIDs)))
			return nil, fmt.Errorf("%w: person %s has no active membership in this scope", apperrors.ErrForbidden, personID)
		}
	}
	return byPerson, nil
}
