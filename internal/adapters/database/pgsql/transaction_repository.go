package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danghm/famledger/internal/core/domain"
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	"github.com/danghm/famledger/internal/models"
	"github.com/danghm/famledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{pool: pool}
}

const transactionQuery = `
	SELECT transaction_id, group_id, category_id, amount, date, type, payer_id, is_shared, split_ratio, note,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM transactions
`

func scanTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	var txns []domain.Transaction
	for rows.Next() {
		var m models.Transaction
		var splitRatioJSON []byte
		if err := rows.Scan(
			&m.TransactionID,
			&m.GroupID,
			&m.CategoryID,
			&m.Amount,
			&m.Date,
			&m.Type,
			&m.PayerID,
			&m.IsShared,
			&splitRatioJSON,
			&m.Note,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		// split_ratio carries its sum-to-100 invariant from write time; reads
		// only decode it.
		if len(splitRatioJSON) > 0 {
			if err := json.Unmarshal(splitRatioJSON, &m.SplitRatio); err != nil {
				return nil, fmt.Errorf("failed to decode split ratio of transaction %s: %w", m.TransactionID, err)
			}
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// ListTransactionsThrough retrieves every transaction in the given groups
// dated strictly before until.
func (r *PgxTransactionRepository) ListTransactionsThrough(ctx context.Context, groupIDs []string, until time.Time) ([]domain.Transaction, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	query := transactionQuery + `
	WHERE group_id = ANY($1) AND date < $2
	ORDER BY date, transaction_id;
	`
	rows, err := r.pool.Query(ctx, query, groupIDs, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions through %s: %w", until.Format(time.RFC3339), err)
	}
	return scanTransactions(rows)
}

// ListTransactionsInRange retrieves every transaction in the given groups
// with from <= date < until.
func (r *PgxTransactionRepository) ListTransactionsInRange(ctx context.Context, groupIDs []string, from, until time.Time) ([]domain.Transaction, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	query := transactionQuery + `
	WHERE group_id = ANY($1) AND date >= $2 AND date < $3
	ORDER BY date, transaction_id;
	`
	rows, err := r.pool.Query(ctx, query, groupIDs, from, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions in range: %w", err)
	}
	return scanTransactions(rows)
}
