package models

import "github.com/shopspring/decimal"

// SaleStatistics is the grouped sale summary for one month
type SaleStatistics struct {
	TotalSaleAmount   decimal.Decimal
	TotalSoldItems    int64
	TotalNotSoldItems int64
}

// MatchedCount is the number of records the statistics were computed over
func (s SaleStatistics) MatchedCount() int64 {
	return s.TotalSoldItems + s.TotalNotSoldItems
}

// CategoryCount is the number of records carrying one category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// BucketCount is a raw grouped row before it is mapped onto PriceRanges
type BucketCount struct {
	Bucket int
	Count  int64
}
