package pgsql

import (
	"context"
	"fmt"

	"github.com/danghm/famledger/internal/core/domain"
	portsrepo "github.com/danghm/famledger/internal/core/ports/repositories"
	"github.com/danghm/famledger/internal/models"
	"github.com/danghm/famledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMembershipRepository struct {
	pool *pgxpool.Pool
}

// newPgxMembershipRepository creates a new repository for membership data.
func newPgxMembershipRepository(pool *pgxpool.Pool) portsrepo.MembershipRepository {
	return &PgxMembershipRepository{pool: pool}
}

const membershipColumns = `
	m.membership_id, m.person_id, m.group_id, p.name AS person_name, m.is_active, m.display_order,
	m.created_at, m.created_by, m.last_updated_at, m.last_updated_by
`

func scanMemberships(rows pgx.Rows) ([]domain.Membership, error) {
	defer rows.Close()
	var memberships []domain.Membership
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(
			&m.MembershipID,
			&m.PersonID,
			&m.GroupID,
			&m.PersonName,
			&m.IsActive,
			&m.DisplayOrder,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		memberships = append(memberships, mapping.ToDomainMembership(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", err)
	}
	return memberships, nil
}

// ListActiveMemberships retrieves active memberships across the given groups.
func (r *PgxMembershipRepository) ListActiveMemberships(ctx context.Context, groupIDs []string) ([]domain.Membership, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships m
		JOIN persons p ON p.person_id = m.person_id
		WHERE m.group_id = ANY($1) AND m.is_active
		ORDER BY m.group_id, m.display_order;
	`
	rows, err := r.pool.Query(ctx, query, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list active memberships: %w", err)
	}
	return scanMemberships(rows)
}

// ListMembershipsOfPersons retrieves active memberships of the given persons
// restricted to the given groups.
func (r *PgxMembershipRepository) ListMembershipsOfPersons(ctx context.Context, personIDs []string, groupIDs []string) ([]domain.Membership, error) {
	if len(personIDs) == 0 || len(groupIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships m
		JOIN persons p ON p.person_id = m.person_id
		WHERE m.person_id = ANY($1) AND m.group_id = ANY($2) AND m.is_active
		ORDER BY m.group_id, m.display_order;
	`
	rows, err := r.pool.Query(ctx, query, personIDs, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships of persons: %w", err)
	}
	return scanMemberships(rows)
}

// ListGroupIDsForPerson retrieves every group where the person holds any
// membership, active or not.
func (r *PgxMembershipRepository) ListGroupIDsForPerson(ctx context.Context, personID string) ([]string, error) {
	query := `
		SELECT DISTINCT group_id
		FROM memberships
		WHERE person_id = $1;
	`
	rows, err := r.pool.Query(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for person %s: %w", personID, err)
	}
	defer rows.Close()

	var groupIDs []string
	for rows.Next() {
		var groupID string
		if err := rows.Scan(&groupID); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		groupIDs = append(groupIDs, groupID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group id rows: %w", err)
	}
	return groupIDs, nil
}
