package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transaction-analytics/internal/config"
	"transaction-analytics/internal/database"
	"transaction-analytics/internal/handlers"
	"transaction-analytics/internal/middleware"
	"transaction-analytics/internal/repositories"
	"transaction-analytics/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}

func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := services.NewPrometheusMetrics(registry)

	transactionRepo := repositories.NewTransactionRepository(db.DB)
	analyticsService := services.NewAnalyticsService(transactionRepo, metrics)
	seedService := services.NewSeedService(transactionRepo, services.NewDataSource(&cfg.Seed), metrics)

	if cfg.Seed.OnStartup {
		go func() {
			select {
			case <-db.Ready():
			case <-ctx.Done():
				return
			}
			if _, err := seedService.Seed(ctx); err != nil {
				slog.Error("Startup seeding failed, serving existing data", "error", err)
			}
		}()
	}

	e := newServer(ctx, cfg, metrics)
	handlers.RegisterRoutes(e, handlers.Handlers{
		Transactions: handlers.NewTransactionHandler(analyticsService),
		Seed:         handlers.NewSeedHandler(seedService),
		Health:       handlers.NewHealthCheckHandler(db),
		Docs:         handlers.NewDocsHandler(),
		Metrics:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server",
			"address", cfg.Server.Address(),
			"environment", cfg.Server.Environment,
			"db_driver", cfg.Database.Driver)
		if err := e.Start(cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

func newServer(ctx context.Context, cfg *config.Config, metrics services.MetricsRecorderInterface) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestID())
	e.Use(middleware.HTTPMetrics(metrics))
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		ExposeHeaders: []string{handlers.TotalCountHeader, handlers.ErrorCodeHeader, middleware.TraceIDHeader},
	}))

	if cfg.Security.RateLimitPerSecond > 0 {
		limiter := middleware.NewIPRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst)
		go limiter.RunCleanup(ctx)
		e.Use(limiter.Middleware())
		slog.Info("Rate limiting enabled",
			"requests_per_second", cfg.Security.RateLimitPerSecond,
			"burst", cfg.Security.RateLimitBurst)
	}

	return e
}
