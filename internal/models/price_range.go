package models

import (
	"fmt"
	"strings"
)

// PriceRange is one bucket of the price histogram. A range with Max 0 and
// OpenEnded set holds every price above the previous bucket.
type PriceRange struct {
	Label     string
	Max       float64
	OpenEnded bool
}

// PriceRanges are the ten fixed histogram buckets, lowest first.
// A price belongs to the first bucket whose Max it does not exceed.
var PriceRanges = []PriceRange{
	{Label: "0-100", Max: 100},
	{Label: "101-200", Max: 200},
	{Label: "201-300", Max: 300},
	{Label: "301-400", Max: 400},
	{Label: "401-500", Max: 500},
	{Label: "501-600", Max: 600},
	{Label: "601-700", Max: 700},
	{Label: "701-800", Max: 800},
	{Label: "801-900", Max: 900},
	{Label: "901-above", OpenEnded: true},
}

// PriceRangeCount is the number of records falling in one bucket
type PriceRangeCount struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

// BucketIndex returns the index into PriceRanges that holds price
func BucketIndex(price float64) int {
	for i, r := range PriceRanges {
		if r.OpenEnded || price <= r.Max {
			return i
		}
	}
	return len(PriceRanges) - 1
}

// BucketCaseExpression builds the SQL CASE expression mapping column to a
// bucket index, derived from PriceRanges so SQL and Go agree.
func BucketCaseExpression(column string) string {
	var b strings.Builder
	b.WriteString("CASE")
	for i, r := range PriceRanges {
		if r.OpenEnded {
			fmt.Fprintf(&b, " ELSE %d", i)
			break
		}
		fmt.Fprintf(&b, " WHEN %s <= %s THEN %d", column, FormatPrice(r.Max), i)
	}
	b.WriteString(" END")
	return b.String()
}

// EmptyPriceRangeCounts returns every bucket with a zero count
func EmptyPriceRangeCounts() []PriceRangeCount {
	counts := make([]PriceRangeCount, len(PriceRanges))
	for i, r := range PriceRanges {
		counts[i] = PriceRangeCount{Range: r.Label}
	}
	return counts
}
