package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/danghm/famledger/internal/apperrors"
	"github.com/danghm/famledger/internal/core/domain"
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	"github.com/danghm/famledger/internal/models"
	"github.com/danghm/famledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxGroupRepository struct {
	pool *pgxpool.Pool
}

// newPgxGroupRepository creates a new repository for group tree data.
func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepository {
	return &PgxGroupRepository{pool: pool}
}

// FindGroupByID retrieves a single group by its id.
func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	query := `
		SELECT group_id, name, parent_id, created_at, created_by, last_updated_at, last_updated_by
		FROM groups
		WHERE group_id = $1;
	`
	var m models.Group
	err := r.pool.QueryRow(ctx, query, groupID).Scan(
		&m.GroupID,
		&m.Name,
		&m.ParentID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("group %s: %w", groupID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find group %s: %w", groupID, err)
	}
	group := mapping.ToDomainGroup(m)
	return &group, nil
}

// ListChildGroups retrieves every group whose parent is one of parentIDs.
func (r *PgxGroupRepository) ListChildGroups(ctx context.Context, parentIDs []string) ([]domain.Group, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT group_id, name, parent_id, created_at, created_by, last_updated_at, last_updated_by
		FROM groups
		WHERE parent_id = ANY($1);
	`
	rows, err := r.pool.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list child groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var m models.Group
		if err := rows.Scan(
			&m.GroupID,
			&m.Name,
			&m.ParentID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups = append(groups, mapping.ToDomainGroup(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}
	return groups, nil
}
