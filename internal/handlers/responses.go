package handlers

import (
	"log/slog"
	"net/http"

	"transaction-analytics/internal/errors"

	"github.com/labstack/echo/v4"
)

// Error responses
//
// Handlers report failures through two helpers:
//
// 1. SendError - for errors with a specific code, e.g. SendError(c, errors.SystemServiceUnavailable)
// 2. SendSystemError - for store and service failures; the client sees a
//    generic SYSTEM_001 envelope and the internal error is only logged
//
// Query parameters are never rejected, so no handler answers 400.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internalErr := errors.WrapSystemError(err, traceID)

	slog.Error("request failed",
		"trace_id", traceID,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", internalErr)

	return c.JSON(http.StatusInternalServerError, errorResponse)
}
