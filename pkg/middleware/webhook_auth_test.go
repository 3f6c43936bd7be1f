package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newWebhookEcho(verify func(string) bool) *echo.Echo {
	e := echo.New()
	e.POST("/webhook", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"received": true})
	}, WebhookAuth(verify))
	return e
}

func TestWebhookAuth_ValidSecret(t *testing.T) {
	e := newWebhookEcho(func(s string) bool { return s == "topsecret" })

	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	req.Header.Set(WebhookSecretHeader, "topsecret")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookAuth_InvalidSecret(t *testing.T) {
	e := newWebhookEcho(func(s string) bool { return s == "topsecret" })

	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	req.Header.Set(WebhookSecretHeader, "wrong")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookAuth_MissingSecret(t *testing.T) {
	e := newWebhookEcho(func(s string) bool { return s == "topsecret" })

	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
