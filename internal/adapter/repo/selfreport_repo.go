package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// SelfReportedHoursRepositoryPG implements SelfReportedHoursRepository using PostgreSQL.
type SelfReportedHoursRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewSelfReportedHoursRepository creates a new self-reported hours repo.
func NewSelfReportedHoursRepository(pool *pgxpool.Pool) *SelfReportedHoursRepositoryPG {
	return &SelfReportedHoursRepositoryPG{pool: pool}
}

// Create inserts a new self-reported hours record.
func (r *SelfReportedHoursRepositoryPG) Create(ctx context.Context, rec *domain.SelfReportedHours) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO self_reported_hours (id, volunteer_id, organization_id, activity_date, hours, activity_type, description, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`, rec.ID, rec.VolunteerID, rec.OrganizationID, rec.ActivityDate, rec.Hours, rec.ActivityType, rec.Description, rec.Status, rec.CreatedAt, rec.UpdatedAt)
	return err
}

// GetByID loads one record.
func (r *SelfReportedHoursRepositoryPG) GetByID(ctx context.Context, id string) (*domain.SelfReportedHours, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, volunteer_id, organization_id, activity_date, hours, activity_type, description, status, coalesce(verification_hash, ''), created_at, updated_at
FROM self_reported_hours
WHERE id = $1;
`, id)
	var rec domain.SelfReportedHours
	if err := row.Scan(&rec.ID, &rec.VolunteerID, &rec.OrganizationID, &rec.ActivityDate, &rec.Hours, &rec.ActivityType, &rec.Description, &rec.Status, &rec.VerificationHash, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ListByVolunteer returns a volunteer's records, most recent activity first.
func (r *SelfReportedHoursRepositoryPG) ListByVolunteer(ctx context.Context, volunteerID string, limit int) ([]domain.SelfReportedHours, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, volunteer_id, organization_id, activity_date, hours, activity_type, description, status, coalesce(verification_hash, ''), created_at, updated_at
FROM self_reported_hours
WHERE volunteer_id = $1
ORDER BY activity_date DESC
LIMIT $2;
`, volunteerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.SelfReportedHours
	for rows.Next() {
		var rec domain.SelfReportedHours
		if err := rows.Scan(&rec.ID, &rec.VolunteerID, &rec.OrganizationID, &rec.ActivityDate, &rec.Hours, &rec.ActivityType, &rec.Description, &rec.Status, &rec.VerificationHash, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update replaces the mutable fields of a record.
func (r *SelfReportedHoursRepositoryPG) Update(ctx context.Context, rec *domain.SelfReportedHours) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE self_reported_hours
SET organization_id = $2, activity_date = $3, hours = $4, activity_type = $5, description = $6, status = $7, verification_hash = nullif($8, ''), updated_at = $9
WHERE id = $1;
`, rec.ID, rec.OrganizationID, rec.ActivityDate, rec.Hours, rec.ActivityType, rec.Description, rec.Status, rec.VerificationHash, rec.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a record.
func (r *SelfReportedHoursRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `
DELETE FROM self_reported_hours
WHERE id = $1;
`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.SelfReportedHoursRepository = (*SelfReportedHoursRepositoryPG)(nil)
