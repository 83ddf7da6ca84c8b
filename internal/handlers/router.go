package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler served by the API
type Handlers struct {
	Transactions *TransactionHandler
	Seed         *SeedHandler
	Health       *HealthCheckHandler
	Docs         *DocsHandler
	Metrics      http.Handler
}

// RegisterRoutes mounts all endpoints on e
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", h.Health.HealthCheck)
	if h.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.Metrics))
	}

	if h.Docs != nil {
		e.GET("/docs", h.Docs.ServeScalarUI)
		e.GET("/docs/openapi.json", h.Docs.ServeOpenAPI)
	}

	api := e.Group("/api")
	api.POST("/initialize", h.Seed.Initialize)
	api.GET("/transactions", h.Transactions.ListTransactions)
	api.GET("/statistics", h.Transactions.Statistics)
	api.GET("/bar-chart", h.Transactions.BarChart)
	api.GET("/pie-chart", h.Transactions.PieChart)
	api.GET("/combined-data", h.Transactions.CombinedData)
}
