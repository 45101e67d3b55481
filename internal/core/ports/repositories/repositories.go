package repositories

// RepositoryProvider bundles every repository implementation handed to the
// service container. Constructed once at startup by the database adapter.
type RepositoryProvider struct {
	GroupRepo      GroupRepository
	MembershipRepo MembershipRepository
	TxnRepo        TransactionRepository
	SettlementRepo SettlementRepository
	CategoryRepo   CategoryRepository
}
