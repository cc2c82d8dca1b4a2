package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// OrganizationRepositoryPG implements OrganizationRepository using PostgreSQL.
type OrganizationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository creates a new organization repo.
func NewOrganizationRepository(pool *pgxpool.Pool) *OrganizationRepositoryPG {
	return &OrganizationRepositoryPG{pool: pool}
}

// GetByID loads one organization.
func (r *OrganizationRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, coalesce(email, ''), coalesce(website, ''), verified, created_at, updated_at
FROM organizations
WHERE id = $1;
`, id)
	var org domain.Organization
	if err := row.Scan(&org.ID, &org.Name, &org.Email, &org.Website, &org.Verified, &org.CreatedAt, &org.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

// ListVerified returns verified organizations for the request form picker.
func (r *OrganizationRepositoryPG) ListVerified(ctx context.Context, limit int) ([]domain.Organization, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, name, coalesce(email, ''), coalesce(website, ''), verified, created_at, updated_at
FROM organizations
WHERE verified
ORDER BY name ASC
LIMIT $1;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Organization
	for rows.Next() {
		var org domain.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.Email, &org.Website, &org.Verified, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, org)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.OrganizationRepository = (*OrganizationRepositoryPG)(nil)
