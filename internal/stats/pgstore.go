package stats

import (
	"context"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// PGStore implements PrimaryStore over the service's own database.
type PGStore struct {
	sql infra.SQLExecutor
}

// NewPGStore creates the primary-source store.
func NewPGStore(sql infra.SQLExecutor) *PGStore {
	return &PGStore{sql: sql}
}

// DonationTotalUSD sums a donor's crypto and fiat contributions in USD.
func (s *PGStore) DonationTotalUSD(ctx context.Context, userID string) (float64, error) {
	var total float64
	if err := s.sql.QueryRow(ctx, sqlinline.QUserDonationTotalUSD, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// SelfReportedTotals splits a volunteer's self-reported hours into validated
// and not-yet-validated sums.
func (s *PGStore) SelfReportedTotals(ctx context.Context, userID string) (float64, float64, error) {
	var validated, unvalidated float64
	if err := s.sql.QueryRow(ctx, sqlinline.QUserSelfReportedTotals, userID).Scan(&validated, &unvalidated); err != nil {
		return 0, 0, err
	}
	return validated, unvalidated, nil
}

// TopDonors ranks donors by combined USD value.
func (s *PGStore) TopDonors(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return s.queryLeaderboard(ctx, sqlinline.QTopDonors, limit)
}

// TopVolunteers ranks volunteers by weighted self-reported hours.
func (s *PGStore) TopVolunteers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return s.queryLeaderboard(ctx, sqlinline.QTopVolunteers, limit)
}

func (s *PGStore) queryLeaderboard(ctx context.Context, query string, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := s.sql.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var entry domain.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.DisplayName, &entry.Score); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// GlobalTotals reads the platform-wide rollup.
func (s *PGStore) GlobalTotals(ctx context.Context) (*domain.GlobalSummary, error) {
	var summary domain.GlobalSummary
	err := s.sql.QueryRow(ctx, sqlinline.QGlobalTotals).Scan(
		&summary.TotalDonatedUSD,
		&summary.TotalSelfReported,
		&summary.TotalVolunteers,
		&summary.TotalCharities,
	)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

var _ PrimaryStore = (*PGStore)(nil)
