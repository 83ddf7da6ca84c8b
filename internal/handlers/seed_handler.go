package handlers

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"transaction-analytics/internal/errors"
	"transaction-analytics/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	seedSuccessMessage = "Database initialized successfully."
	seedFailureMessage = "Error initializing database."

	// ErrorCodeHeader carries the error code of a failure whose body is plain text
	ErrorCodeHeader = "X-Error-Code"
)

// SeedHandler exposes the seeder over HTTP
type SeedHandler struct {
	seeder services.SeedServiceInterface
}

// NewSeedHandler creates a new seed handler
func NewSeedHandler(seeder services.SeedServiceInterface) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Initialize replaces the store contents with the configured snapshot
// @Summary Seed database
// @Description Clears every record and loads the snapshot. Plain-text response.
// @Tags Seed
// @Produce plain
// @Success 200 {string} string "Database initialized successfully."
// @Failure 500 {string} string "Error initializing database."
// @Router /api/initialize [post]
func (h *SeedHandler) Initialize(c echo.Context) error {
	inserted, err := h.seeder.Seed(c.Request().Context())
	if err != nil {
		code := seedErrorCode(err)
		slog.Error("seed request failed",
			"trace_id", getTraceID(c),
			"code", code,
			"error", err)
		c.Response().Header().Set(ErrorCodeHeader, string(code))
		return c.String(http.StatusInternalServerError, seedFailureMessage)
	}

	slog.Info("seed request completed",
		"trace_id", getTraceID(c),
		"records", inserted)
	return c.String(http.StatusOK, seedSuccessMessage)
}

func seedErrorCode(err error) errors.ErrorCode {
	switch {
	case stderrors.Is(err, services.ErrSourceUnavailable):
		return errors.SeedSourceUnavailable
	case stderrors.Is(err, services.ErrInvalidSnapshot):
		return errors.SeedInvalidSnapshot
	default:
		return errors.SeedStoreFailed
	}
}
