package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// ValidationRequestRepositoryPG implements ValidationRequestRepository using PostgreSQL.
type ValidationRequestRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewValidationRequestRepository creates a new validation request repo.
func NewValidationRequestRepository(pool *pgxpool.Pool) *ValidationRequestRepositoryPG {
	return &ValidationRequestRepositoryPG{pool: pool}
}

const validationRequestColumns = `id, hours_id, organization_id, status, expires_at, coalesce(response_note, ''), responder_id, original_request_id, created_at, updated_at`

func scanValidationRequest(row pgx.Row) (*domain.ValidationRequest, error) {
	var req domain.ValidationRequest
	err := row.Scan(&req.ID, &req.HoursID, &req.OrganizationID, &req.Status, &req.ExpiresAt, &req.ResponseNote, &req.ResponderID, &req.OriginalRequestID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Create inserts a request and flips the covered hours record to pending in
// one statement. The NOT EXISTS guard runs inside the same snapshot as the
// insert, so two concurrent callers cannot both end up with a pending row.
func (r *ValidationRequestRepositoryPG) Create(ctx context.Context, req *domain.ValidationRequest) error {
	tag, err := r.pool.Exec(ctx, `
WITH ins AS (
	INSERT INTO validation_requests (id, hours_id, organization_id, status, expires_at, response_note, responder_id, original_request_id, created_at, updated_at)
	SELECT $1, $2, $3, $4, $5, nullif($6, ''), $7, $8, $9, $10
	WHERE NOT EXISTS (
		SELECT 1 FROM validation_requests WHERE hours_id = $2 AND status = 'pending'
	)
	RETURNING hours_id
)
UPDATE self_reported_hours h
SET status = 'pending', verification_hash = NULL, updated_at = $10
FROM ins
WHERE h.id = ins.hours_id;
`, req.ID, req.HoursID, req.OrganizationID, req.Status, req.ExpiresAt, req.ResponseNote, req.ResponderID, req.OriginalRequestID, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRequestAlreadyOpen
	}
	return nil
}

// GetByID loads one request.
func (r *ValidationRequestRepositoryPG) GetByID(ctx context.Context, id string) (*domain.ValidationRequest, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+validationRequestColumns+`
FROM validation_requests
WHERE id = $1;
`, id)
	return scanValidationRequest(row)
}

// GetOpenByHoursID returns the pending request covering a record, if any.
func (r *ValidationRequestRepositoryPG) GetOpenByHoursID(ctx context.Context, hoursID string) (*domain.ValidationRequest, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+validationRequestColumns+`
FROM validation_requests
WHERE hours_id = $1 AND status = 'pending'
LIMIT 1;
`, hoursID)
	return scanValidationRequest(row)
}

// ListPendingByOrganization returns an organization's review queue joined
// with volunteer display data, soonest-expiring first.
func (r *ValidationRequestRepositoryPG) ListPendingByOrganization(ctx context.Context, orgID string, limit int) ([]domain.PendingQueueItem, error) {
	rows, err := r.pool.Query(ctx, `
SELECT vr.id, vr.hours_id, vr.organization_id, vr.status, vr.expires_at, coalesce(vr.response_note, ''), vr.responder_id, vr.original_request_id, vr.created_at, vr.updated_at,
       coalesce(v.display_name, ''), h.activity_date, h.hours, h.activity_type, h.description
FROM validation_requests vr
JOIN self_reported_hours h ON h.id = vr.hours_id
LEFT JOIN volunteers v ON v.id = h.volunteer_id
WHERE vr.organization_id = $1 AND vr.status = 'pending'
ORDER BY vr.expires_at ASC
LIMIT $2;
`, orgID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PendingQueueItem
	for rows.Next() {
		var item domain.PendingQueueItem
		req := &item.Request
		if err := rows.Scan(&req.ID, &req.HoursID, &req.OrganizationID, &req.Status, &req.ExpiresAt, &req.ResponseNote, &req.ResponderID, &req.OriginalRequestID, &req.CreatedAt, &req.UpdatedAt,
			&item.VolunteerName, &item.ActivityDate, &item.Hours, &item.ActivityType, &item.Description); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Close writes the request's terminal state and the covered hours record's
// new status in one statement, so a response can never land half-applied.
func (r *ValidationRequestRepositoryPG) Close(ctx context.Context, req *domain.ValidationRequest, hoursStatus domain.HoursStatus, verificationHash string) error {
	tag, err := r.pool.Exec(ctx, `
WITH req AS (
	UPDATE validation_requests
	SET status = $2, response_note = nullif($3, ''), responder_id = $4, updated_at = $5
	WHERE id = $1
	RETURNING hours_id
)
UPDATE self_reported_hours h
SET status = $6, verification_hash = nullif($7, ''), updated_at = $5
FROM req
WHERE h.id = req.hours_id;
`, req.ID, req.Status, req.ResponseNote, req.ResponderID, req.UpdatedAt, hoursStatus, verificationHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExpirePending closes overdue pending requests, marks the covered records
// expired, and returns the ids of those records. A single statement: the
// sweep cannot close a request without expiring its record.
func (r *ValidationRequestRepositoryPG) ExpirePending(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
WITH expired AS (
	UPDATE validation_requests
	SET status = 'cancelled', updated_at = now()
	WHERE status = 'pending' AND expires_at <= $1
	RETURNING hours_id
)
UPDATE self_reported_hours h
SET status = 'expired', updated_at = now()
FROM expired
WHERE h.id = expired.hours_id
RETURNING h.id;
`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hoursIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		hoursIDs = append(hoursIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return hoursIDs, nil
}

var _ domain.ValidationRequestRepository = (*ValidationRequestRepositoryPG)(nil)
