package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"transaction-analytics/internal/dto"
	"transaction-analytics/internal/models"
	"transaction-analytics/internal/repositories"

	"golang.org/x/sync/errgroup"
)

type analyticsService struct {
	repo    repositories.TransactionRepositoryInterface
	metrics MetricsRecorderInterface
}

func NewAnalyticsService(
	repo repositories.TransactionRepositoryInterface,
	metrics MetricsRecorderInterface,
) AnalyticsServiceInterface {
	return &analyticsService{
		repo:    repo,
		metrics: metrics,
	}
}

func (s *analyticsService) ListTransactions(ctx context.Context, query dto.ListTransactionsQuery) ([]models.Transaction, int64, error) {
	defer s.observe(OperationList, time.Now())

	filter := query.Filter()

	transactions, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, 0, s.fail(OperationList, query.Month, err)
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, s.fail(OperationList, query.Month, err)
	}

	return transactions, total, nil
}

func (s *analyticsService) Statistics(ctx context.Context, month string) (dto.StatisticsResponse, error) {
	defer s.observe(OperationStatistics, time.Now())

	stats, err := s.statistics(ctx, month)
	if err != nil {
		return dto.StatisticsResponse{}, s.fail(OperationStatistics, month, err)
	}
	return stats, nil
}

func (s *analyticsService) BarChart(ctx context.Context, month string) ([]models.PriceRangeCount, error) {
	defer s.observe(OperationBarChart, time.Now())

	counts, err := s.barChart(ctx, month)
	if err != nil {
		return nil, s.fail(OperationBarChart, month, err)
	}
	return counts, nil
}

func (s *analyticsService) PieChart(ctx context.Context, month string) ([]models.CategoryCount, error) {
	defer s.observe(OperationPieChart, time.Now())

	counts, err := s.repo.CategoryCounts(ctx, month)
	if err != nil {
		return nil, s.fail(OperationPieChart, month, err)
	}
	return counts, nil
}

// Combined fails as a whole when any of the four reads fails
func (s *analyticsService) Combined(ctx context.Context, month string) (*dto.CombinedResponse, error) {
	defer s.observe(OperationCombined, time.Now())

	var result dto.CombinedResponse
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		transactions, err := s.repo.Find(gctx, models.MonthFilter(month))
		if err != nil {
			return err
		}
		result.Transactions = transactions
		return nil
	})

	g.Go(func() error {
		stats, err := s.statistics(gctx, month)
		if err != nil {
			return err
		}
		result.Statistics = stats
		return nil
	})

	g.Go(func() error {
		counts, err := s.barChart(gctx, month)
		if err != nil {
			return err
		}
		result.BarChart = counts
		return nil
	})

	g.Go(func() error {
		counts, err := s.repo.CategoryCounts(gctx, month)
		if err != nil {
			return err
		}
		result.PieChart = counts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, s.fail(OperationCombined, month, err)
	}

	return &result, nil
}

func (s *analyticsService) statistics(ctx context.Context, month string) (dto.StatisticsResponse, error) {
	stats, err := s.repo.Statistics(ctx, month)
	if err != nil {
		return dto.StatisticsResponse{}, err
	}
	return dto.NewStatisticsResponse(stats), nil
}

// barChart maps the grouped rows onto all ten buckets so empty ones report zero
func (s *analyticsService) barChart(ctx context.Context, month string) ([]models.PriceRangeCount, error) {
	rows, err := s.repo.PriceRangeCounts(ctx, month)
	if err != nil {
		return nil, err
	}

	counts := models.EmptyPriceRangeCounts()
	for _, row := range rows {
		if row.Bucket < 0 || row.Bucket >= len(counts) {
			return nil, fmt.Errorf("unexpected price bucket %d", row.Bucket)
		}
		counts[row.Bucket].Count += row.Count
	}
	return counts, nil
}

func (s *analyticsService) observe(operation string, start time.Time) {
	s.metrics.RecordProcessingTime(operation, time.Since(start))
}

func (s *analyticsService) fail(operation, month string, err error) error {
	s.metrics.IncrementCounter(MetricQueryFailures, map[string]string{"operation": operation})
	slog.Error("analytics query failed",
		"operation", operation,
		"month", month,
		"error", err)
	return fmt.Errorf("failed to compute %s: %w", operation, err)
}
