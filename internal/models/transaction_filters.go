package models

// TransactionFilter selects records for listing queries
type TransactionFilter struct {
	Month  string
	Search string
	Offset int
	// Limit <= 0 returns every matching record
	Limit int
}

// MonthFilter selects every record of a month
func MonthFilter(month string) TransactionFilter {
	return TransactionFilter{Month: month}
}
