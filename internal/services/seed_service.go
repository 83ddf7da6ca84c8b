package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"transaction-analytics/internal/dto"
	"transaction-analytics/internal/repositories"
	"transaction-analytics/internal/validation"
)

const (
	seedOutcomeSuccess      = "success"
	seedOutcomeFetchFailed  = "fetch_failed"
	seedOutcomeInvalid      = "invalid"
	seedOutcomeStoreFailure = "store_failed"
)

type seedService struct {
	repo      repositories.TransactionRepositoryInterface
	source    DataSourceInterface
	validator *validation.Validator
	metrics   MetricsRecorderInterface
}

func NewSeedService(
	repo repositories.TransactionRepositoryInterface,
	source DataSourceInterface,
	metrics MetricsRecorderInterface,
) SeedServiceInterface {
	return &seedService{
		repo:      repo,
		source:    source,
		validator: validation.GetValidator(),
		metrics:   metrics,
	}
}

// Seed clears the store and loads the whole snapshot. A snapshot with any
// invalid record is rejected before the store is touched.
func (s *seedService) Seed(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime(MetricSeedDuration, time.Since(start))
	}()

	records, err := s.source.Fetch(ctx)
	if err != nil {
		s.outcome(seedOutcomeFetchFailed)
		slog.Error("failed to fetch seed snapshot",
			"source", s.source.Name(),
			"error", err)
		return 0, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	if err := s.validate(records); err != nil {
		s.outcome(seedOutcomeInvalid)
		slog.Error("seed snapshot rejected",
			"source", s.source.Name(),
			"records", len(records),
			"error", err)
		return 0, err
	}

	inserted, err := s.repo.ReplaceAll(ctx, dto.SeedRecordsToModels(records))
	if err != nil {
		s.outcome(seedOutcomeStoreFailure)
		slog.Error("failed to replace transactions",
			"source", s.source.Name(),
			"error", err)
		return 0, fmt.Errorf("failed to store snapshot: %w", err)
	}

	s.outcome(seedOutcomeSuccess)
	s.metrics.RecordGauge(MetricSeedRecords, float64(inserted), nil)

	slog.Info("database seeded",
		"source", s.source.Name(),
		"records", inserted,
		"duration", time.Since(start))

	return inserted, nil
}

func (s *seedService) validate(records []dto.SeedRecord) error {
	for i, record := range records {
		if err := s.validator.Struct(record); err != nil {
			return fmt.Errorf("%w: record %d: %s",
				ErrInvalidSnapshot, i, strings.Join(validation.FieldErrors(err), ", "))
		}
	}
	return nil
}

func (s *seedService) outcome(outcome string) {
	s.metrics.IncrementCounter(MetricSeedRuns, map[string]string{"outcome": outcome})
}
