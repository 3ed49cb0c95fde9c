package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/http/handlers"
	"server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/infra/geoip"
	"server/internal/ledger"
	"server/internal/middleware"
	"server/internal/payout"
	"server/internal/sweep"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// Payout, journal and account backends: Postgres when configured,
	// in-memory otherwise.
	var (
		payer    domain.Payer
		journal  domain.EventJournal
		accounts domain.AccountRepository
		restore  domain.CampaignSnapshots
	)
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		runner := infra.NewSQLRunner(pool, logger)
		payer = payout.NewPayerPG(pool)
		journal = repo.NewEventJournal(pool)
		accounts = repo.NewAccountRepository(runner)
		restore = repo.NewCampaignRepository(runner)
	} else {
		logger.Warn().Msg("DATABASE_URL not set, running with in-memory state only")
		memPayer := payout.NewMemoryPayer()
		payer = memPayer
		accounts = memPayer
		journal = ledger.NewMemoryJournal()
	}

	lgr := ledger.New(ledger.SystemClock{}, payer, journal, logger)
	if restore != nil {
		campaigns, err := restore.ListAll(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load campaign snapshots")
		}
		if err := lgr.Restore(campaigns); err != nil {
			logger.Fatal().Err(err).Msg("failed to restore ledger")
		}
		logger.Info().Int("campaigns", lgr.Len()).Msg("ledger restored")
	}

	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Error().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		defer resolver.Close()
		lookup = resolver.CountryCode
	}

	app := handlers.NewApp(lgr, journal, accounts, logger)
	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Logger:          logger,
		DefaultLocale:   cfg.DefaultLocale,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		CountryLookup:   lookup,
	})

	server := infra.NewHTTPServer(cfg, router)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.SweepInterval > 0 {
		sweeper := sweep.New(lgr, cfg.SweepInterval, logger)
		go sweeper.Run(runCtx)
		logger.Info().Dur("interval", cfg.SweepInterval).Msg("deadline sweeper enabled")
	}

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
