package dto

import (
	"math"

	"transaction-analytics/internal/models"
)

// ListTransactionsQuery holds the recognised listing query parameters
type ListTransactionsQuery struct {
	Month   string
	Page    int
	PerPage int
	Search  string
}

// Offset returns the number of records skipped before the requested page.
// It saturates at math.MaxInt, which selects no records.
func (q ListTransactionsQuery) Offset() int {
	if q.Page <= 1 || q.PerPage <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PerPage {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PerPage
}

// Filter converts the query into a store filter
func (q ListTransactionsQuery) Filter() models.TransactionFilter {
	return models.TransactionFilter{
		Month:  q.Month,
		Search: q.Search,
		Offset: q.Offset(),
		Limit:  q.PerPage,
	}
}

// StatisticsResponse is the monthly sale summary
type StatisticsResponse struct {
	TotalSaleAmount   float64 `json:"totalSaleAmount"`
	TotalSoldItems    int64   `json:"totalSoldItems"`
	TotalNotSoldItems int64   `json:"totalNotSoldItems"`
}

// NewStatisticsResponse reports the store's sum as is, without rounding
func NewStatisticsResponse(stats models.SaleStatistics) StatisticsResponse {
	return StatisticsResponse{
		TotalSaleAmount:   stats.TotalSaleAmount.InexactFloat64(),
		TotalSoldItems:    stats.TotalSoldItems,
		TotalNotSoldItems: stats.TotalNotSoldItems,
	}
}

// CombinedResponse bundles every monthly view into one payload
type CombinedResponse struct {
	Transactions []models.Transaction     `json:"transactions"`
	Statistics   StatisticsResponse       `json:"statistics"`
	BarChart     []models.PriceRangeCount `json:"barChart"`
	PieChart     []models.CategoryCount   `json:"pieChart"`
}
