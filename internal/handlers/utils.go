package handlers

import (
	"fmt"

	"transaction-analytics/internal/dto"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

// getIntParam reads an integer query parameter, falling back to defaultValue
// when it is absent or not a number
func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(param, "%d", &value); err != nil {
		return defaultValue
	}

	return value
}

// getMonthParam returns the month query parameter as sent. A missing month
// is not an error; it simply matches no records.
func getMonthParam(c echo.Context) string {
	return c.QueryParam("month")
}

// parseListQuery reads the listing parameters. Page and perPage below 1
// fall back to their defaults.
func parseListQuery(c echo.Context) dto.ListTransactionsQuery {
	page := getIntParam(c, "page", defaultPage)
	if page < 1 {
		page = defaultPage
	}

	perPage := getIntParam(c, "perPage", defaultPerPage)
	if perPage < 1 {
		perPage = defaultPerPage
	}

	return dto.ListTransactionsQuery{
		Month:   getMonthParam(c),
		Page:    page,
		PerPage: perPage,
		Search:  c.QueryParam("search"),
	}
}
