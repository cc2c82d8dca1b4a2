package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// DonationRepositoryPG implements DonationRepository using PostgreSQL.
// Donations are append-only; there is deliberately no update or delete.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool}
}

// CreateCrypto inserts an on-chain donation record.
func (r *DonationRepositoryPG) CreateCrypto(ctx context.Context, d *domain.Donation) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO donations (id, donor_id, charity_id, amount, token_symbol, chain, usd_value, tx_hash, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`, d.ID, d.DonorID, d.CharityID, d.Amount, d.TokenSymbol, d.Chain, d.USDValue, d.TxHash, d.CreatedAt)
	return err
}

// CreateFiat inserts a card donation settled through the payment processor.
func (r *DonationRepositoryPG) CreateFiat(ctx context.Context, d *domain.FiatDonation) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO fiat_donations (id, donor_id, charity_id, amount_cents, currency, payment_ref, donor_country, created_at)
VALUES ($1, $2, $3, $4, $5, $6, nullif($7, ''), $8);
`, d.ID, d.DonorID, d.CharityID, d.AmountCents, d.Currency, d.PaymentRef, d.DonorCountry, d.CreatedAt)
	return err
}

// ListRecent returns recent crypto donations limited by the input value.
func (r *DonationRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, donor_id, charity_id, amount, token_symbol, chain, usd_value, coalesce(tx_hash, ''), created_at
FROM donations
ORDER BY created_at DESC
LIMIT $1;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.DonorID, &d.CharityID, &d.Amount, &d.TokenSymbol, &d.Chain, &d.USDValue, &d.TxHash, &d.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ListRecentFiat returns recent fiat donations limited by the input value.
func (r *DonationRepositoryPG) ListRecentFiat(ctx context.Context, limit int) ([]domain.FiatDonation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, donor_id, charity_id, amount_cents, currency, payment_ref, coalesce(donor_country, ''), created_at
FROM fiat_donations
ORDER BY created_at DESC
LIMIT $1;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.FiatDonation
	for rows.Next() {
		var d domain.FiatDonation
		if err := rows.Scan(&d.ID, &d.DonorID, &d.CharityID, &d.AmountCents, &d.Currency, &d.PaymentRef, &d.DonorCountry, &d.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
