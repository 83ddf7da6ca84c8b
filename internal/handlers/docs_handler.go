package handlers

import (
	"crypto/md5"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	//go:embed scalar.html
	scalarHTML []byte

	//go:embed openapi.json
	openAPIDocument []byte
)

// DocsHandler serves the API reference page and its OpenAPI document
type DocsHandler struct {
	scalarHTML  []byte
	scalarETag  string
	openAPI     []byte
	openAPIETag string
}

func NewDocsHandler() *DocsHandler {
	return &DocsHandler{
		scalarHTML:  scalarHTML,
		scalarETag:  generateETag(scalarHTML),
		openAPI:     openAPIDocument,
		openAPIETag: generateETag(openAPIDocument),
	}
}

// ServeScalarUI serves the Scalar HTML page
// @Summary API Documentation UI
// @Tags Documentation
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /docs [get]
func (h *DocsHandler) ServeScalarUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	// The page loads its renderer from a CDN, which the API-wide policy forbids
	c.Response().Header().Set("Content-Security-Policy",
		"default-src 'self'; script-src 'self' https://cdn.jsdelivr.net; style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; font-src https://cdn.jsdelivr.net; img-src 'self' data:")

	if notModified(c, h.scalarETag) {
		return c.NoContent(http.StatusNotModified)
	}
	return c.HTMLBlob(http.StatusOK, h.scalarHTML)
}

// ServeOpenAPI serves the OpenAPI document
// @Summary OpenAPI document
// @Tags Documentation
// @Produce json
// @Router /docs/openapi.json [get]
func (h *DocsHandler) ServeOpenAPI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "public, max-age=300")

	if notModified(c, h.openAPIETag) {
		return c.NoContent(http.StatusNotModified)
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, h.openAPI)
}

func notModified(c echo.Context, etag string) bool {
	if etag == "" {
		return false
	}
	c.Response().Header().Set("ETag", etag)
	return c.Request().Header.Get("If-None-Match") == etag
}

func generateETag(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	hash := md5.Sum(data)
	return fmt.Sprintf("\"%x\"", hash)
}
