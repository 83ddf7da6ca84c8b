package services

import (
	"context"
	"time"

	"transaction-analytics/internal/dto"
	"transaction-analytics/internal/models"
)

// AnalyticsServiceInterface defines the monthly read operations over the record store
type AnalyticsServiceInterface interface {
	// ListTransactions returns one page of month-filtered, searched records and
	// the total number of matches ignoring pagination
	ListTransactions(ctx context.Context, query dto.ListTransactionsQuery) ([]models.Transaction, int64, error)

	// Statistics returns the sale total and sold/unsold counts of a month
	Statistics(ctx context.Context, month string) (dto.StatisticsResponse, error)

	// BarChart returns all ten price buckets of a month, lowest first
	BarChart(ctx context.Context, month string) ([]models.PriceRangeCount, error)

	// PieChart returns the category histogram of a month
	PieChart(ctx context.Context, month string) ([]models.CategoryCount, error)

	// Combined computes the unpaginated listing and the three aggregates concurrently
	Combined(ctx context.Context, month string) (*dto.CombinedResponse, error)
}

// SeedServiceInterface replaces the store contents with the configured snapshot
type SeedServiceInterface interface {
	Seed(ctx context.Context) (int, error)
}

// DataSourceInterface supplies the snapshot loaded by the seeder
type DataSourceInterface interface {
	Fetch(ctx context.Context) ([]dto.SeedRecord, error)
	Name() string
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
	RecordHTTPRequest(method, path string, status int, duration time.Duration)
}
