package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// DocsHandlerSuite is the test suite for documentation endpoints
type DocsHandlerSuite struct {
	suite.Suite
	handler *DocsHandler
	e       *echo.Echo
}

func (s *DocsHandlerSuite) SetupTest() {
	s.handler = NewDocsHandler()
	s.e = echo.New()
}

func TestDocsHandler(t *testing.T) {
	suite.Run(t, new(DocsHandlerSuite))
}

func (s *DocsHandlerSuite) get(path string, handler echo.HandlerFunc, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Require().NoError(handler(s.e.NewContext(req, rec)))
	return rec
}

func (s *DocsHandlerSuite) TestServeScalarUI() {
	s.Run("serves the reference page", func() {
		rec := s.get("/docs", s.handler.ServeScalarUI, nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Header().Get("Content-Type"), "text/html")
		s.Contains(rec.Body.String(), "/docs/openapi.json")
		s.NotEmpty(rec.Header().Get("ETag"))
		s.Contains(rec.Header().Get("Content-Security-Policy"), "cdn.jsdelivr.net")
	})

	s.Run("returns 304 for a matching ETag", func() {
		first := s.get("/docs", s.handler.ServeScalarUI, nil)

		rec := s.get("/docs", s.handler.ServeScalarUI, map[string]string{
			"If-None-Match": first.Header().Get("ETag"),
		})

		s.Equal(http.StatusNotModified, rec.Code)
		s.Empty(rec.Body.String())
	})
}

func (s *DocsHandlerSuite) TestServeOpenAPI() {
	s.Run("serves a document describing every API route", func() {
		rec := s.get("/docs/openapi.json", s.handler.ServeOpenAPI, nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Header().Get("Content-Type"), "application/json")
		s.Equal("public, max-age=300", rec.Header().Get("Cache-Control"))

		var doc struct {
			OpenAPI string                     `json:"openapi"`
			Paths   map[string]json.RawMessage `json:"paths"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &doc))
		s.Equal("3.0.3", doc.OpenAPI)
		for _, path := range []string{
			"/api/initialize", "/api/transactions", "/api/statistics",
			"/api/bar-chart", "/api/pie-chart", "/api/combined-data", "/health",
		} {
			s.Contains(doc.Paths, path)
		}
	})

	s.Run("returns 304 for a matching ETag", func() {
		first := s.get("/docs/openapi.json", s.handler.ServeOpenAPI, nil)

		rec := s.get("/docs/openapi.json", s.handler.ServeOpenAPI, map[string]string{
			"If-None-Match": first.Header().Get("ETag"),
		})

		s.Equal(http.StatusNotModified, rec.Code)
	})
}

func TestGenerateETag(t *testing.T) {
	assert.Empty(t, generateETag(nil))
	assert.Equal(t, generateETag([]byte("a")), generateETag([]byte("a")))
	assert.NotEqual(t, generateETag([]byte("a")), generateETag([]byte("b")))
}
