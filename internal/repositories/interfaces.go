package repositories

import (
	"context"

	"transaction-analytics/internal/models"
)

// TransactionRepositoryInterface defines the contract for sale record storage and aggregation
type TransactionRepositoryInterface interface {
	// ReplaceAll deletes every record and inserts records in one unit of work
	ReplaceAll(ctx context.Context, records []models.Transaction) (int, error)
	Find(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	Count(ctx context.Context, filter models.TransactionFilter) (int64, error)
	Statistics(ctx context.Context, month string) (models.SaleStatistics, error)
	PriceRangeCounts(ctx context.Context, month string) ([]models.BucketCount, error)
	CategoryCounts(ctx context.Context, month string) ([]models.CategoryCount, error)
}
