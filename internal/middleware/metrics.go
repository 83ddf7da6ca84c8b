package middleware

import (
	"log/slog"
	"time"

	"transaction-analytics/internal/services"

	"github.com/labstack/echo/v4"
)

const slowRequestThreshold = time.Second

// HTTPMetrics records a request counter and duration histogram per route.
// Errors are rendered here so the recorded status matches the response.
func HTTPMetrics(metrics services.MetricsRecorderInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			duration := time.Since(start)

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := c.Response().Status

			metrics.RecordHTTPRequest(c.Request().Method, path, status, duration)

			if duration > slowRequestThreshold {
				slog.Warn("Slow HTTP request",
					"trace_id", GetTraceID(c),
					"method", c.Request().Method,
					"path", path,
					"status", status,
					"duration", duration,
				)
			}

			return nil
		}
	}
}
