package services

// ServiceContainer bundles every service facade handed to the HTTP layer.
type ServiceContainer struct {
	Scope      ScopeResolverSvc
	Members    MembershipIndexSvc
	Balance    BalanceSvc
	Breakdown  BreakdownSvc
	Budget     BudgetSvc
	Settlement SettlementSvc
	Category   CategorySvc
}
