package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// VolunteerRepositoryPG implements VolunteerRepository using PostgreSQL.
type VolunteerRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewVolunteerRepository creates a new volunteer repo.
func NewVolunteerRepository(pool *pgxpool.Pool) *VolunteerRepositoryPG {
	return &VolunteerRepositoryPG{pool: pool}
}

// Upsert creates or refreshes a volunteer profile keyed by its gateway id.
func (r *VolunteerRepositoryPG) Upsert(ctx context.Context, v *domain.Volunteer) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO volunteers (id, display_name, email, wallet_address, created_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (id) DO UPDATE
SET display_name = excluded.display_name, email = excluded.email, wallet_address = excluded.wallet_address;
`, v.ID, v.DisplayName, v.Email, v.WalletAddress)
	return err
}

// GetByID loads one volunteer profile.
func (r *VolunteerRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Volunteer, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, display_name, coalesce(email, ''), coalesce(wallet_address, ''), created_at
FROM volunteers
WHERE id = $1;
`, id)
	var v domain.Volunteer
	if err := row.Scan(&v.ID, &v.DisplayName, &v.Email, &v.WalletAddress, &v.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

var _ domain.VolunteerRepository = (*VolunteerRepositoryPG)(nil)
