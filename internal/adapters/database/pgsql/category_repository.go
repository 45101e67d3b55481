package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/danghm/famledger/internal/apperrors"
	"github.com/danghm/famledger/internal/core/domain"
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	"github.com/danghm/famledger/internal/models"
	"github.com/danghm/famledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{pool: pool}
}

// ListCategoriesWithBudget retrieves categories of the given groups, budget
// limits included, ordered by display order.
func (r *PgxCategoryRepository) ListCategoriesWithBudget(ctx context.Context, groupIDs []string) ([]domain.Category, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT category_id, group_id, name, parent_id, budget_limit, display_order,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM categories
		WHERE group_id = ANY($1)
		ORDER BY group_id, display_order;
	`
	rows, err := r.pool.Query(ctx, query, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var m models.Category
		if err := rows.Scan(
			&m.CategoryID,
			&m.GroupID,
			&m.Name,
			&m.ParentID,
			&m.BudgetLimit,
			&m.DisplayOrder,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

// UpdateCategoryOrders applies new display orders to the given group's
// categories within a single DB transaction. Every row must update; a miss
// aborts the whole batch so readers never observe a partial reorder.
func (r *PgxCategoryRepository) UpdateCategoryOrders(ctx context.Context, groupID string, orders map[string]int, updatedBy string, updatedAt time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	batch := &pgx.Batch{}
	query := `
		UPDATE categories
		SET display_order = $1, last_updated_at = $2, last_updated_by = $3
		WHERE category_id = $4 AND group_id = $5;
	`
	for categoryID, order := range orders {
		batch.Queue(query, order, updatedAt, updatedBy, categoryID, groupID)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to update category order: %w", err)
		}
		if tag.RowsAffected() == 0 {
			_ = br.Close()
			return fmt.Errorf("category not in group %s: %w", groupID, apperrors.ErrNotFound)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit category reorder: %w", err)
	}
	return nil
}
