package handlers

import (
	"net/http"
	"strconv"

	"transaction-analytics/internal/services"

	"github.com/labstack/echo/v4"
)

// TotalCountHeader carries the number of listing matches ignoring pagination
const TotalCountHeader = "X-Total-Count"

// TransactionHandler serves the monthly listing and aggregate endpoints
type TransactionHandler struct {
	analytics services.AnalyticsServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(analytics services.AnalyticsServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		analytics: analytics,
	}
}

// ListTransactions returns one page of a month's records
// @Summary List transactions
// @Description Month-filtered records; search is a case-insensitive regular expression over title, description and price text
// @Tags Transactions
// @Produce json
// @Param month query string true "Two-digit month token, e.g. 03"
// @Param page query int false "1-based page" default(1)
// @Param perPage query int false "Page size" default(10)
// @Param search query string false "Regular expression search"
// @Success 200 {array} models.Transaction
// @Header 200 {integer} X-Total-Count "Matches ignoring pagination"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	query := parseListQuery(c)

	transactions, total, err := h.analytics.ListTransactions(c.Request().Context(), query)
	if err != nil {
		return SendSystemError(c, err)
	}

	c.Response().Header().Set(TotalCountHeader, strconv.FormatInt(total, 10))
	return c.JSON(http.StatusOK, transactions)
}

// Statistics returns the sale summary of a month
// @Summary Monthly statistics
// @Tags Analytics
// @Produce json
// @Param month query string true "Two-digit month token"
// @Success 200 {object} dto.StatisticsResponse
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /api/statistics [get]
func (h *TransactionHandler) Statistics(c echo.Context) error {
	stats, err := h.analytics.Statistics(c.Request().Context(), getMonthParam(c))
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// BarChart returns the ten-bucket price histogram of a month
// @Summary Price range histogram
// @Tags Analytics
// @Produce json
// @Param month query string true "Two-digit month token"
// @Success 200 {array} models.PriceRangeCount
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /api/bar-chart [get]
func (h *TransactionHandler) BarChart(c echo.Context) error {
	counts, err := h.analytics.BarChart(c.Request().Context(), getMonthParam(c))
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, counts)
}

// PieChart returns the category histogram of a month
// @Summary Category histogram
// @Tags Analytics
// @Produce json
// @Param month query string true "Two-digit month token"
// @Success 200 {array} models.CategoryCount
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /api/pie-chart [get]
func (h *TransactionHandler) PieChart(c echo.Context) error {
	counts, err := h.analytics.PieChart(c.Request().Context(), getMonthParam(c))
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, counts)
}

// CombinedData returns the listing and all aggregates of a month in one payload
// @Summary Combined monthly data
// @Tags Analytics
// @Produce json
// @Param month query string true "Two-digit month token"
// @Success 200 {object} dto.CombinedResponse
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /api/combined-data [get]
func (h *TransactionHandler) CombinedData(c echo.Context) error {
	result, err := h.analytics.Combined(c.Request().Context(), getMonthParam(c))
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
