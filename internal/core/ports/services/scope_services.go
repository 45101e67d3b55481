package services

import "context"

// ScopeResolverSvc computes the set of group ids relevant to a query.
// All traversals are cycle-safe: a malformed tree yields an internal
// consistency error instead of looping.
type ScopeResolverSvc interface {
	// AncestorChain returns the chain group, parent, ..., root.
	AncestorChain(ctx context.Context, groupID string) ([]string, error)

	// DescendantClosure returns the given groups plus every transitive child.
	DescendantClosure(ctx context.Context, groupIDs []string) ([]string, error)

	// FullTreeIDs returns the ancestor chain of groupID united with the
	// descendant closure of that chain.
	FullTreeIDs(ctx context.Context, groupID string) ([]string, error)

	// AllAccessibleGroupIDs returns every group where the person holds any
	// membership, active or not.
	AllAccessibleGroupIDs(ctx context.Context, personID string) ([]string, error)
}
