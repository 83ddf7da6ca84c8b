package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// ErrorHandlerTestSuite defines the test suite for error handler middleware
type ErrorHandlerTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

// SetupTest runs before each test
func (s *ErrorHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.HTTPErrorHandler = CustomHTTPErrorHandler
}

// TestErrorHandlerTestSuite runs the test suite
func TestErrorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

func (s *ErrorHandlerTestSuite) context(method string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(httptest.NewRequest(method, "/", nil), rec)
	c.Set(TraceIDContextKey, "test-trace-id")
	return c, rec
}

func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_EchoHTTPError() {
	c, rec := s.context(http.MethodGet)

	CustomHTTPErrorHandler(echo.NewHTTPError(http.StatusNotFound, "Not Found"), c)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "REQUEST_002")
	s.Contains(rec.Body.String(), "test-trace-id")
	s.Contains(rec.Header().Get("Content-Type"), "application/json")
}

func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_WrappedEchoError() {
	c, rec := s.context(http.MethodGet)

	CustomHTTPErrorHandler(fmt.Errorf("route: %w", echo.ErrMethodNotAllowed), c)

	s.Equal(http.StatusMethodNotAllowed, rec.Code)
	s.Contains(rec.Body.String(), "REQUEST_003")
}

func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_GenericErrorHidesDetails() {
	c, rec := s.context(http.MethodGet)

	CustomHTTPErrorHandler(errors.New("sql: database is closed"), c)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "SYSTEM_001")
	s.NotContains(rec.Body.String(), "database is closed")
}

func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_NoTraceID() {
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	CustomHTTPErrorHandler(errors.New("test error"), c)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "unknown")
}

func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_CommittedResponse() {
	c, rec := s.context(http.MethodGet)
	_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})

	CustomHTTPErrorHandler(errors.New("test error"), c)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "ok")
}

func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_HeadHasNoBody() {
	c, rec := s.context(http.MethodHead)

	CustomHTTPErrorHandler(echo.ErrNotFound, c)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Empty(rec.Body.String())
}

func (s *ErrorHandlerTestSuite) TestUnknownRouteThroughEcho() {
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "REQUEST_002")
}

func (s *ErrorHandlerTestSuite) TestMapHTTPStatusToErrorCode_AllStatuses() {
	testCases := []struct {
		status       int
		expectedCode string
	}{
		{http.StatusBadRequest, "REQUEST_001"},
		{http.StatusNotFound, "REQUEST_002"},
		{http.StatusMethodNotAllowed, "REQUEST_003"},
		{http.StatusTooManyRequests, "SYSTEM_006"},
		{http.StatusInternalServerError, "SYSTEM_001"},
		{http.StatusServiceUnavailable, "SYSTEM_003"},
		{http.StatusTeapot, "SYSTEM_005"},
	}

	for _, tc := range testCases {
		s.Run(http.StatusText(tc.status), func() {
			s.Equal(tc.expectedCode, string(mapHTTPStatusToErrorCode(tc.status)))
		})
	}
}
