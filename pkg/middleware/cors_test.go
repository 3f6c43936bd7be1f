package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
)

var testOrigins = []string{
	"http://localhost:3000",
	"https://dashboard.leadpilot.io",
}

// newCORSEcho creates an Echo instance with the app CORS config and a test route.
func newCORSEcho() *echo.Echo {
	e := echo.New()
	e.Use(middleware.CORSWithConfig(CORSConfig(testOrigins)))
	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.POST("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func TestCORS_AllowedOrigins(t *testing.T) {
	for _, origin := range testOrigins {
		t.Run(origin, func(t *testing.T) {
			e := newCORSEcho()

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Origin", origin)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORS_BlockedOrigins(t *testing.T) {
	tests := []struct {
		name   string
		origin string
	}{
		{"unknown external site", "https://evil.com"},
		{"similar domain attack", "https://dashboard.leadpilot.io.evil.com"},
		{"subdomain not in list", "https://app.leadpilot.io"},
		{"different port on localhost", "http://localhost:8080"},
		{"null origin", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newCORSEcho()

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			// The request itself succeeds (CORS doesn't block the request server-side),
			// but the Access-Control-Allow-Origin header should NOT match the origin.
			acao := rec.Header().Get("Access-Control-Allow-Origin")
			assert.NotEqual(t, tt.origin, acao,
				"Origin %q should not be reflected in Access-Control-Allow-Origin", tt.origin)
		})
	}
}

func TestCORS_PreflightAllowedOrigin(t *testing.T) {
	e := newCORSEcho()

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "https://dashboard.leadpilot.io")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization,Content-Type")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://dashboard.leadpilot.io", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	allowedMethods := rec.Header().Get("Access-Control-Allow-Methods")
	for _, m := range AllowedMethods {
		assert.Contains(t, allowedMethods, m, "Preflight should include method %s", m)
	}
}

func TestCORS_NoWildcardWithCredentials(t *testing.T) {
	// When AllowCredentials is true, Access-Control-Allow-Origin must NOT be "*".
	e := newCORSEcho()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	acao := rec.Header().Get("Access-Control-Allow-Origin")
	assert.NotEqual(t, "*", acao,
		"Access-Control-Allow-Origin must not be wildcard when credentials are enabled")
	assert.Equal(t, "http://localhost:3000", acao)
}

func TestCORS_ActualPOSTWithBlockedOrigin(t *testing.T) {
	e := newCORSEcho()

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"key":"value"}`))
	req.Header.Set("Origin", "https://attacker.com")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	// Server still processes the request (CORS is enforced by the browser),
	// but the response should NOT include the attacker's origin.
	acao := rec.Header().Get("Access-Control-Allow-Origin")
	assert.NotEqual(t, "https://attacker.com", acao)
}

func TestCORS_RequestWithoutOrigin(t *testing.T) {
	// Server-to-server requests (no Origin header) should work normally.
	e := newCORSEcho()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSConfig_MethodsDoNotIncludeOPTIONS(t *testing.T) {
	// OPTIONS is handled automatically by the CORS middleware for preflight.
	cfg := CORSConfig(testOrigins)

	for _, m := range cfg.AllowMethods {
		assert.NotEqual(t, http.MethodOptions, m,
			"OPTIONS should not be in AllowMethods (handled automatically)")
	}
}
