package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/http/handlers"
	"server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/infra/geoip"
	"server/internal/payments/helcim"
	"server/internal/pricing"
	"server/internal/stats"
	"server/internal/supabase"
	"server/internal/validation"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)

	hoursRepo := repo.NewSelfReportedHoursRepository(dbpool)
	requestRepo := repo.NewValidationRequestRepository(dbpool)
	orgRepo := repo.NewOrganizationRepository(dbpool)
	volunteerRepo := repo.NewVolunteerRepository(dbpool)
	donationRepo := repo.NewDonationRepository(dbpool)

	workflow, err := validation.NewService(validation.Options{
		Hours:    hoursRepo,
		Requests: requestRepo,
		Orgs:     orgRepo,
		Window:   cfg.ValidationWindow(),
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build validation workflow")
	}

	var portal stats.PortalStore
	if cfg.SupabaseURL != "" {
		supaClient, err := supabase.New(supabase.Options{ProjectURL: cfg.SupabaseURL, APIKey: cfg.SupabaseAPIKey})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure charity portal client")
		}
		portal = stats.NewSupabasePortal(supaClient)
	} else {
		logger.Warn().Msg("SUPABASE_URL not set, formal hours and endorsements unavailable")
	}

	statsService, err := stats.NewService(stats.Options{
		Primary: stats.NewPGStore(runner),
		Portal:  portal,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build stats service")
	}

	var fallback pricing.Feed
	if cfg.ChainlinkFeedURL != "" {
		fallback, err = pricing.NewChainlinkClient(pricing.ChainlinkOptions{FeedURL: cfg.ChainlinkFeedURL})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure chainlink feed")
		}
	}
	priceService, err := pricing.NewService(pricing.ServiceOptions{
		Primary:  pricing.NewCoinGeckoClient(pricing.CoinGeckoOptions{BaseURL: cfg.CoinGeckoBaseURL}),
		Fallback: fallback,
		TTL:      cfg.PriceTTL,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build price service")
	}

	var payments handlers.PaymentProcessor
	if cfg.HelcimAPIToken != "" {
		client, err := helcim.NewClient(helcim.Options{APIToken: cfg.HelcimAPIToken, BaseURL: cfg.HelcimBaseURL})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure helcim client")
		}
		payments = client
	} else {
		logger.Warn().Msg("HELCIM_API_TOKEN not set, card donations unavailable")
	}

	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable, donor countries will be empty")
	}

	app := &handlers.App{
		Workflow:   workflow,
		Stats:      statsService,
		Prices:     priceService,
		Payments:   payments,
		Donations:  donationRepo,
		Volunteers: volunteerRepo,
		Orgs:       orgRepo,
		Geo:        geo,
		Log:        logger,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMin:    cfg.RateLimitPerMin,
		Logger:             logger,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
