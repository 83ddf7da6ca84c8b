package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"transaction-analytics/internal/config"
	"transaction-analytics/internal/database"
	"transaction-analytics/internal/repositories"
	"transaction-analytics/internal/services"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	fixture := flag.String("fixture", "", "seed from this local JSON file instead of SEED_SOURCE_URL")
	embedded := flag.Bool("embedded", false, "seed from the embedded fixture")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg := config.Load()
	switch {
	case *fixture != "":
		cfg.Seed.FixturePath = *fixture
	case *embedded:
		cfg.Seed.FixturePath = ""
		cfg.Seed.SourceURL = ""
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inserted, err := seed(ctx, cfg)
	if err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Database initialized successfully. %d records loaded.\n", inserted)
}

// seed owns the store connection for the duration of one run
func seed(ctx context.Context, cfg *config.Config) (int, error) {
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	seeder := services.NewSeedService(
		repositories.NewTransactionRepository(db.DB),
		services.NewDataSource(&cfg.Seed),
		services.NewPrometheusMetrics(prometheus.NewRegistry()),
	)
	return seeder.Seed(ctx)
}
