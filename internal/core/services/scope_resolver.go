package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danghm/famledger/internal/apperrors"
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	portssvc "github.com/danghm/famledger/internal/core/ports/services"
)

var (
	// ErrGroupTreeCycle means a parent walk revisited a group. The tree is
	// corrupt; the request cannot be served.
	ErrGroupTreeCycle = fmt.Errorf("%w: group tree contains a cycle", apperrors.ErrInternal)

	// ErrGroupTreeTooDeep means a parent walk exceeded the depth cap without
	// reaching a root.
	ErrGroupTreeTooDeep = fmt.Errorf("%w: group tree exceeds maximum depth", apperrors.ErrInternal)
)

// maxTreeDepth caps ancestor walks as a second line of defence behind the
// visited-set cycle check.
const maxTreeDepth = 64

// scopeResolverService resolves which groups are visible to a computation.
type scopeResolverService struct {
	BaseService
	groupRepo      portsrepo.GroupRepository
	membershipRepo portsrepo.MembershipRepository
}

// NewScopeResolverService creates a new scope resolver.
func NewScopeResolverService(groupRepo portsrepo.GroupRepository, membershipRepo portsrepo.MembershipRepository) portssvc.ScopeResolverSvc {
	return &scopeResolverService{
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
	}
}

var _ portssvc.ScopeResolverSvc = (*scopeResolverService)(nil)

// AncestorChain walks parent pointers from groupID to the root. The walk is
// iterative with a visited set so a corrupt tree fails fast instead of
// looping.
func (s *scopeResolverService) AncestorChain(ctx context.Context, groupID string) ([]string, error) {
	if groupID == "" {
		return nil, fmt.Errorf("%w: group id is required", apperrors.ErrValidation)
	}

	chain := make([]string, 0, 4)
	visited := make(map[string]struct{})

	current := groupID
	for depth := 0; ; depth++ {
		if depth >= maxTreeDepth {
			s.LogError(ctx, ErrGroupTreeTooDeep, "Ancestor walk exceeded depth cap", slog.String("group_id", groupID))
			return nil, ErrGroupTreeTooDeep
		}
		if _, seen := visited[current]; seen {
			s.LogError(ctx, ErrGroupTreeCycle, "Ancestor walk revisited a group", slog.String("group_id", current))
			return nil, ErrGroupTreeCycle
		}
		visited[current] = struct{}{}

		group, err := s.groupRepo.FindGroupByID(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve group %s: %w", current, err)
		}
		chain = append(chain, group.GroupID)

		if group.ParentID == nil {
			return chain, nil
		}
		current = *group.ParentID
	}
}

// DescendantClosure expands the given groups breadth-first through child
// links until no more children are found.
func (s *scopeResolverService) DescendantClosure(ctx context.Context, groupIDs []string) ([]string, error) {
	closure := make([]string, 0, len(groupIDs))
	visited := make(map[string]struct{}, len(groupIDs))

	frontier := make([]string, 0, len(groupIDs))
	for _, id := range groupIDs {
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}
		closure = append(closure, id)
		frontier = append(frontier, id)
	}

	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= maxTreeDepth {
			s.LogError(ctx, ErrGroupTreeTooDeep, "Descendant walk exceeded depth cap")
			return nil, ErrGroupTreeTooDeep
		}

		children, err := s.groupRepo.ListChildGroups(ctx, frontier)
		if err != nil {
			return nil, fmt.Errorf("failed to list child groups: %w", err)
		}

		frontier = frontier[:0]
		for _, child := range children {
			if _, seen := visited[child.GroupID]; seen {
				// A child reachable twice means the tree is not a tree.
				s.LogError(ctx, ErrGroupTreeCycle, "Descendant walk revisited a group", slog.String("group_id", child.GroupID))
				return nil, ErrGroupTreeCycle
			}
			visited[child.GroupID] = struct{}{}
			closure = append(closure, child.GroupID)
			frontier = append(frontier, child.GroupID)
		}
	}
	return closure, nil
}

// FullTreeIDs returns the ancestor chain of groupID united with the
// descendant closure of that chain: every group a member of groupID can act in.
func (s *scopeResolverService) FullTreeIDs(ctx context.Context, groupID string) ([]string, error) {
	chain, err := s.AncestorChain(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return s.DescendantClosure(ctx, chain)
}

// AllAccessibleGroupIDs returns every group where the person holds any
// membership, active or not. This is the outer bound for global balance queries.
func (s *scopeResolverService) AllAccessibleGroupIDs(ctx context.Context, personID string) ([]string, error) {
	if personID == "" {
		return nil, fmt.Errorf("%w: person id is required", apperrors.ErrValidation)
	}
	groupIDs, err := s.membershipRepo.ListGroupIDsForPerson(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accessible groups for person %s: %w", personID, err)
	}
	return groupIDs, nil
}
