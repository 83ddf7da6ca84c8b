package repositories

import (
	"context"
	"fmt"
	"strings"

	"transaction-analytics/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	insertBatchSize = 100

	monthClause = `date_of_sale LIKE ? ESCAPE '\'`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// transactionRepository implements TransactionRepositoryInterface on gorm
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// ReplaceAll clears the collection and bulk-inserts records inside one database transaction
func (r *transactionRepository) ReplaceAll(ctx context.Context, records []models.Transaction) (int, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.Transaction{}).Error; err != nil {
			return fmt.Errorf("failed to clear transactions: %w", err)
		}

		if len(records) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(&records, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert transactions: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(records), nil
}

// Find returns the records of a month matching the search text, in insertion order.
// Search is a case-insensitive regular expression evaluated over the month's
// records, so pagination of searched listings happens after matching.
func (r *transactionRepository) Find(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	if filter.Search != "" {
		matches, err := r.search(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to find transactions: %w", err)
		}
		return paginate(matches, filter.Offset, filter.Limit), nil
	}

	transactions := []models.Transaction{}

	query := r.month(ctx, filter.Month).Order("id ASC")
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}

	return transactions, nil
}

// Count returns how many records match the filter, ignoring pagination
func (r *transactionRepository) Count(ctx context.Context, filter models.TransactionFilter) (int64, error) {
	if filter.Search != "" {
		matches, err := r.search(ctx, filter)
		if err != nil {
			return 0, fmt.Errorf("failed to count transactions: %w", err)
		}
		return int64(len(matches)), nil
	}

	var total int64
	if err := r.month(ctx, filter.Month).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}

// Statistics sums prices and counts sold and unsold records of a month
func (r *transactionRepository) Statistics(ctx context.Context, month string) (models.SaleStatistics, error) {
	var row struct {
		TotalSaleAmount   decimal.Decimal
		TotalSoldItems    int64
		TotalNotSoldItems int64
	}

	err := r.month(ctx, month).
		Select("COALESCE(SUM(price), 0) AS total_sale_amount, " +
			"COALESCE(SUM(CASE WHEN sold THEN 1 ELSE 0 END), 0) AS total_sold_items, " +
			"COALESCE(SUM(CASE WHEN sold THEN 0 ELSE 1 END), 0) AS total_not_sold_items").
		Scan(&row).Error
	if err != nil {
		return models.SaleStatistics{}, fmt.Errorf("failed to aggregate statistics: %w", err)
	}

	return models.SaleStatistics{
		TotalSaleAmount:   row.TotalSaleAmount,
		TotalSoldItems:    row.TotalSoldItems,
		TotalNotSoldItems: row.TotalNotSoldItems,
	}, nil
}

// PriceRangeCounts groups the records of a month by price bucket index.
// Buckets without records are absent from the result.
func (r *transactionRepository) PriceRangeCounts(ctx context.Context, month string) ([]models.BucketCount, error) {
	rows := []models.BucketCount{}

	err := r.month(ctx, month).
		Select(models.BucketCaseExpression("price") + " AS bucket, COUNT(*) AS count").
		Group("bucket").
		Order("bucket").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate price ranges: %w", err)
	}

	return rows, nil
}

// CategoryCounts groups the records of a month by category in first-seen order
func (r *transactionRepository) CategoryCounts(ctx context.Context, month string) ([]models.CategoryCount, error) {
	rows := []models.CategoryCount{}

	err := r.month(ctx, month).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("MIN(id)").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}

	return rows, nil
}

func (r *transactionRepository) month(ctx context.Context, month string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where(monthClause, "%"+escapeLike(models.MonthPattern(month))+"%")
}

func (r *transactionRepository) search(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	var monthRecords []models.Transaction
	if err := r.month(ctx, filter.Month).Order("id ASC").Find(&monthRecords).Error; err != nil {
		return nil, err
	}

	re := models.CompileSearch(filter.Search)
	matches := make([]models.Transaction, 0, len(monthRecords))
	for i := range monthRecords {
		if monthRecords[i].MatchesSearch(re) {
			matches = append(matches, monthRecords[i])
		}
	}
	return matches, nil
}

// paginate applies offset and limit to an in-memory result. Limit <= 0 keeps
// everything after the offset.
func paginate(records []models.Transaction, offset, limit int) []models.Transaction {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(records) {
		return []models.Transaction{}
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
