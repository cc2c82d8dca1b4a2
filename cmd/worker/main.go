package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/infra"
	"server/internal/pricing"
	"server/internal/validation"
)

// The worker owns the background duties the API should not block on: sweeping
// validation requests past their window and keeping the price cache warm.
func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	workflow, err := validation.NewService(validation.Options{
		Hours:    repo.NewSelfReportedHoursRepository(pool),
		Requests: repo.NewValidationRequestRepository(pool),
		Orgs:     repo.NewOrganizationRepository(pool),
		Window:   cfg.ValidationWindow(),
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to build validation workflow")
	}

	var fallback pricing.Feed
	if cfg.ChainlinkFeedURL != "" {
		fallback, err = pricing.NewChainlinkClient(pricing.ChainlinkOptions{FeedURL: cfg.ChainlinkFeedURL})
		if err != nil {
			logger.Fatal().Err(err).Msg("worker: failed to configure chainlink feed")
		}
	}
	prices, err := pricing.NewService(pricing.ServiceOptions{
		Primary:  pricing.NewCoinGeckoClient(pricing.CoinGeckoOptions{BaseURL: cfg.CoinGeckoBaseURL}),
		Fallback: fallback,
		TTL:      cfg.PriceTTL,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to build price service")
	}

	logger.Info().
		Dur("sweep_interval", cfg.SweepInterval).
		Int("window_days", cfg.ValidationWindowDays).
		Msg("worker: started")

	go refreshPrices(ctx, prices, cfg.PriceSymbols, cfg.PriceTTL, logger)

	sweep := time.NewTicker(cfg.SweepInterval)
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("worker: stopped")
			return
		case <-sweep.C:
			expired, err := workflow.ExpireOverdue(ctx)
			if err != nil {
				logger.Error().Err(err).Msg("worker: expiry sweep failed")
				continue
			}
			if expired > 0 {
				logger.Info().Int("expired", expired).Msg("worker: closed overdue validation requests")
			}
		}
	}
}

// refreshPrices keeps quotes warm so donation valuation rarely pays the
// upstream fetch on the request path.
func refreshPrices(ctx context.Context, prices *pricing.Service, symbols []string, ttl time.Duration, logger infra.Logger) {
	prices.Refresh(ctx, symbols)

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			prices.Refresh(ctx, symbols)
		}
	}
}
