package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/danghm/famledger/internal/core/domain"
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	"github.com/danghm/famledger/internal/models"
	"github.com/danghm/famledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettlementRepository struct {
	pool *pgxpool.Pool
}

// newPgxSettlementRepository creates a new repository for settlement data.
func newPgxSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepository {
	return &PgxSettlementRepository{pool: pool}
}

// SaveSettlement persists a new settlement.
func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	m := mapping.ToModelSettlement(settlement)
	query := `
		INSERT INTO settlements (settlement_id, group_id, payer_id, payee_id, amount, date, note,
		                         created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		m.SettlementID,
		m.GroupID,
		m.PayerID,
		m.PayeeID,
		m.Amount,
		m.Date,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement %s: %w", m.SettlementID, err)
	}
	return nil
}

const settlementQuery = `
	SELECT settlement_id, group_id, payer_id, payee_id, amount, date, note,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM settlements
`

func scanSettlements(rows pgx.Rows) ([]domain.Settlement, error) {
	defer rows.Close()
	var settlements []domain.Settlement
	for rows.Next() {
		var m models.Settlement
		if err := rows.Scan(
			&m.SettlementID,
			&m.GroupID,
			&m.PayerID,
			&m.PayeeID,
			&m.Amount,
			&m.Date,
			&m.Note,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		settlements = append(settlements, mapping.ToDomainSettlement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlement rows: %w", err)
	}
	return settlements, nil
}

// ListSettlementsThrough retrieves every settlement in the given groups dated
// strictly before until.
func (r *PgxSettlementRepository) ListSettlementsThrough(ctx context.Context, groupIDs []string, until time.Time) ([]domain.Settlement, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	query := settlementQuery + `
	WHERE group_id = ANY($1) AND date < $2
	ORDER BY date, settlement_id;
	`
	rows, err := r.pool.Query(ctx, query, groupIDs, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	return scanSettlements(rows)
}

// ListSettlementsInRange retrieves every settlement in the given groups with
// from <= date < until.
func (r *PgxSettlementRepository) ListSettlementsInRange(ctx context.Context, groupIDs []string, from, until time.Time) ([]domain.Settlement, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	query := settlementQuery + `
	WHERE group_id = ANY($1) AND date >= $2 AND date < $3
	ORDER BY date, settlement_id;
	`
	rows, err := r.pool.Query(ctx, query, groupIDs, from, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements in range: %w", err)
	}
	return scanSettlements(rows)
}
