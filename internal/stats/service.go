// Package stats reconciles donations, formal volunteer hours, self-reported
// hours, and endorsements into per-user stats, leaderboards, and a global
// summary.
package stats

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"server/internal/domain"
)

const maxLeaderboardLimit = 100

// PrimaryStore reads the sources owned by this service's database: donations
// (crypto and fiat) and self-reported hours.
type PrimaryStore interface {
	DonationTotalUSD(ctx context.Context, userID string) (float64, error)
	SelfReportedTotals(ctx context.Context, userID string) (validated, unvalidated float64, err error)
	TopDonors(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	TopVolunteers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	GlobalTotals(ctx context.Context) (*domain.GlobalSummary, error)
}

// PortalStore reads the sources the charity portal owns: formal hours and
// endorsements.
type PortalStore interface {
	FormalHours(ctx context.Context, userID string) (float64, error)
	EndorsementCount(ctx context.Context, userID string) (int, error)
	GlobalFormalHours(ctx context.Context) (float64, error)
}

// Service fans reads out across both stores. A failing source degrades to
// zeros rather than failing the whole aggregate; partial data beats no
// dashboard.
type Service struct {
	primary PrimaryStore
	portal  PortalStore
	log     zerolog.Logger
}

// Options configures a stats Service.
type Options struct {
	Primary PrimaryStore
	Portal  PortalStore
	Logger  zerolog.Logger
}

// NewService wires the aggregation service. Portal may be nil when no
// charity-portal backend is configured.
func NewService(opts Options) (*Service, error) {
	if opts.Primary == nil {
		return nil, errors.New("stats: primary store is required")
	}
	return &Service{primary: opts.Primary, portal: opts.Portal, log: opts.Logger}, nil
}

// UserStats aggregates one volunteer's contributions across every source.
func (s *Service) UserStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	out := &domain.UserStats{UserID: userID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		usd, err := s.primary.DonationTotalUSD(gctx, userID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("stats: donation source failed")
			return nil
		}
		out.TotalDonatedUSD = usd
		return nil
	})
	g.Go(func() error {
		validated, unvalidated, err := s.primary.SelfReportedTotals(gctx, userID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("stats: self-reported source failed")
			return nil
		}
		out.ValidatedHours = validated
		out.UnvalidatedHours = unvalidated
		return nil
	})
	if s.portal != nil {
		g.Go(func() error {
			hours, err := s.portal.FormalHours(gctx, userID)
			if err != nil {
				s.log.Warn().Err(err).Str("user_id", userID).Msg("stats: formal hours source failed")
				return nil
			}
			out.FormalHours = hours
			return nil
		})
		g.Go(func() error {
			count, err := s.portal.EndorsementCount(gctx, userID)
			if err != nil {
				s.log.Warn().Err(err).Str("user_id", userID).Msg("stats: endorsement source failed")
				return nil
			}
			out.EndorsementCount = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// TopDonors returns the donor leaderboard ranked by USD value donated.
func (s *Service) TopDonors(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	entries, err := s.primary.TopDonors(ctx, capLimit(limit))
	if err != nil {
		return nil, err
	}
	return ranked(entries), nil
}

// TopVolunteers returns the volunteer leaderboard. Validated hours count in
// full, unvalidated at half weight.
func (s *Service) TopVolunteers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	entries, err := s.primary.TopVolunteers(ctx, capLimit(limit))
	if err != nil {
		return nil, err
	}
	return ranked(entries), nil
}

// Summary returns the platform-wide rollup.
func (s *Service) Summary(ctx context.Context) (*domain.GlobalSummary, error) {
	summary, err := s.primary.GlobalTotals(ctx)
	if err != nil {
		return nil, err
	}
	if s.portal != nil {
		formal, err := s.portal.GlobalFormalHours(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("stats: global formal hours source failed")
		} else {
			summary.TotalFormalHours = formal
		}
	}
	return summary, nil
}

func capLimit(limit int) int {
	if limit <= 0 || limit > maxLeaderboardLimit {
		return maxLeaderboardLimit
	}
	return limit
}

func ranked(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
