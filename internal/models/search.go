package models

import "regexp"

// CompileSearch turns listing search text into a case-insensitive regular
// expression. Text that does not compile is matched literally.
func CompileSearch(search string) *regexp.Regexp {
	re, err := regexp.Compile("(?i)" + search)
	if err != nil {
		return regexp.MustCompile("(?i)" + regexp.QuoteMeta(search))
	}
	return re
}

// MatchesSearch reports whether the title, description or price text matches re
func (t *Transaction) MatchesSearch(re *regexp.Regexp) bool {
	priceText := t.PriceText
	if priceText == "" {
		priceText = FormatPrice(t.Price)
	}
	return re.MatchString(t.Title) || re.MatchString(t.Description) || re.MatchString(priceText)
}
