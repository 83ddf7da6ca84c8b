package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Request error codes (REQUEST_*)
const (
	RequestInvalid          ErrorCode = "REQUEST_001"
	RequestRouteNotFound    ErrorCode = "REQUEST_002"
	RequestMethodNotAllowed ErrorCode = "REQUEST_003"
)

// Seed error codes (SEED_*)
const (
	SeedSourceUnavailable ErrorCode = "SEED_001"
	SeedInvalidSnapshot   ErrorCode = "SEED_002"
	SeedStoreFailed       ErrorCode = "SEED_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
)

var errorMessages = map[ErrorCode]string{
	RequestInvalid:          "Invalid request",
	RequestRouteNotFound:    "Route not found",
	RequestMethodNotAllowed: "Method not allowed",

	SeedSourceUnavailable: "Seed source could not be reached",
	SeedInvalidSnapshot:   "Seed snapshot is malformed",
	SeedStoreFailed:       "Seed records could not be stored",

	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
