package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SecurityHeaders()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	header := rec.Header()
	assert.Equal(t, "nosniff", header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", header.Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", header.Get("X-XSS-Protection"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", header.Get("Strict-Transport-Security"))
	assert.Equal(t, "default-src 'self'", header.Get("Content-Security-Policy"))
	assert.Contains(t, header.Get("Cache-Control"), "no-store")
}
