package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/martinezcrafts/shopdesk-backend/api/controllers"
	"github.com/martinezcrafts/shopdesk-backend/api/routes"
	"github.com/martinezcrafts/shopdesk-backend/internal/intake"
	"github.com/martinezcrafts/shopdesk-backend/internal/pricing"
	"github.com/martinezcrafts/shopdesk-backend/internal/receipt"
	"github.com/martinezcrafts/shopdesk-backend/pkg/config"
	"github.com/martinezcrafts/shopdesk-backend/pkg/db"
	"github.com/martinezcrafts/shopdesk-backend/pkg/logger"
	"github.com/martinezcrafts/shopdesk-backend/pkg/mailer"
	"github.com/martinezcrafts/shopdesk-backend/pkg/metrics"
	"github.com/martinezcrafts/shopdesk-backend/pkg/migrate"
	pkgredis "github.com/martinezcrafts/shopdesk-backend/pkg/redis"
	"github.com/martinezcrafts/shopdesk-backend/pkg/sheets"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, readyChecks, closeStore, err := buildStore(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap order store", err)
		os.Exit(1)
	}
	defer closeStore()

	var idempotency pkgredis.IdempotencyStore
	if cfg.Redis.URL != "" {
		redisClient, redisErr := pkgredis.New(ctx, cfg.Redis)
		if redisErr != nil {
			logg.Error(ctx, "failed to bootstrap redis", redisErr)
			os.Exit(1)
		}
		defer func() {
			if closeErr := redisClient.Close(); closeErr != nil {
				logg.Error(ctx, "error closing redis", closeErr)
			}
		}()
		idempotency = redisClient
		readyChecks = append(readyChecks, controllers.ReadyChecker{Name: "redis", Check: redisClient.Ping})
	}

	var notifier intake.Notifier
	if cfg.SMTP.Host != "" {
		mail, mailErr := mailer.New(cfg.SMTP)
		if mailErr != nil {
			logg.Error(ctx, "failed to bootstrap mailer", mailErr)
			os.Exit(1)
		}
		notifier = mail
	} else {
		logg.Warn(ctx, "smtp host not configured, receipt email disabled")
	}

	rates, err := pricing.NewRates(cfg.Pricing)
	if err != nil {
		logg.Error(ctx, "invalid pricing config", err)
		os.Exit(1)
	}

	renderer, err := receipt.NewRenderer(receipt.Config{
		ShopName:    cfg.Receipt.ShopName,
		VenmoHandle: cfg.Payment.VenmoHandle,
		RevTrakURL:  cfg.Payment.RevTrakURL,
		ForwardTo:   cfg.Payment.ForwardTo,
	})
	if err != nil {
		logg.Error(ctx, "invalid receipt config", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc, err := intake.NewService(intake.Params{
		Rates:    rates,
		Renderer: renderer,
		Store:    store,
		Notifier: notifier,
		Logger:   logg,
		Metrics:  metrics.NewIntakeMetrics(registry),
	})
	if err != nil {
		logg.Error(ctx, "failed to create intake service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Store.Backend,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.New(routes.Deps{
			Env:         cfg.App.Env,
			Logger:      logg,
			Intake:      svc,
			Idempotency: idempotency,
			Registry:    registry,
			ReadyChecks: readyChecks,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(startCtx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(startCtx, "graceful shutdown failed", err)
		}
	}
}

// buildStore selects the row-store backend from configuration and returns
// the store, its readiness checks, and a close hook.
func buildStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (intake.Store, []controllers.ReadyChecker, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendDB:
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, nil, func() {}, err
		}
		closeFn := func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(ctx, "error closing database", err)
			}
		}
		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			closeFn()
			return nil, nil, func() {}, err
		}
		repo, err := intake.NewRepository(dbClient.DB())
		if err != nil {
			closeFn()
			return nil, nil, func() {}, err
		}
		checks := []controllers.ReadyChecker{{Name: "database", Check: dbClient.Ping}}
		return repo, checks, closeFn, nil

	case config.StoreBackendSheet:
		sheetClient, err := sheets.New(ctx, cfg.Sheets)
		if err != nil {
			return nil, nil, func() {}, err
		}
		store, err := intake.NewSheetStore(sheetClient)
		if err != nil {
			return nil, nil, func() {}, err
		}
		checks := []controllers.ReadyChecker{{Name: "sheets", Check: sheetClient.Ping}}
		return store, checks, func() {}, nil
	}

	return nil, nil, func() {}, errors.New("unknown store backend " + cfg.Store.Backend)
}
