package services

import (
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	portssvc "github.com/danghm/famledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Scope and membership resolution first; everything else builds on them.
	container.Scope = NewScopeResolverService(repos.GroupRepo, repos.MembershipRepo)
	container.Members = NewMembershipIndexService(repos.MembershipRepo)

	container.Balance = NewBalanceService(container.Scope, container.Members, repos.TxnRepo, repos.SettlementRepo)
	container.Breakdown = NewBreakdownService(container.Scope, container.Members, repos.TxnRepo, repos.CategoryRepo)
	container.Budget = NewBudgetService(container.Scope, container.Breakdown, repos.CategoryRepo)
	container.Settlement = NewSettlementService(container.Scope, container.Members, repos.SettlementRepo)
	container.Category = NewCategoryService(container.Scope, repos.CategoryRepo)

	return container
}
