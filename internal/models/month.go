package models

import "strings"

// MonthPattern returns the substring a sale date must contain to belong to month.
// Matching is textual: "03" matches any date containing "-03-".
func MonthPattern(month string) string {
	return "-" + month + "-"
}

// MatchesMonth reports whether dateOfSale belongs to month under the
// substring rule used by the store.
func MatchesMonth(dateOfSale, month string) bool {
	return strings.Contains(dateOfSale, MonthPattern(month))
}

// ExtractMonth returns the first "-MM-" token of a date string
func ExtractMonth(dateOfSale string) string {
	for i := 0; i+3 < len(dateOfSale); i++ {
		if dateOfSale[i] != '-' || dateOfSale[i+3] != '-' {
			continue
		}
		if isDigit(dateOfSale[i+1]) && isDigit(dateOfSale[i+2]) {
			return dateOfSale[i+1 : i+3]
		}
	}
	return ""
}

// HasMonthToken reports whether a date string carries an extractable month
func HasMonthToken(dateOfSale string) bool {
	return ExtractMonth(dateOfSale) != ""
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
