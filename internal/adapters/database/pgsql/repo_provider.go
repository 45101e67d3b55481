package pgsql

import (
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		GroupRepo:      newPgxGroupRepository(dbPool),
		MembershipRepo: newPgxMembershipRepository(dbPool),
		TxnRepo:        newPgxTransactionRepository(dbPool),
		SettlementRepo: newPgxSettlementRepository(dbPool),
		CategoryRepo:   newPgxCategoryRepository(dbPool),
	}
}
