package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// WebhookSecretHeader carries the shared secret on inbound automation
// webhooks.
const WebhookSecretHeader = "X-Webhook-Secret"

// WebhookAuth returns an Echo middleware that rejects inbound webhooks whose
// shared secret does not verify.
func WebhookAuth(verify func(secret string) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !verify(c.Request().Header.Get(WebhookSecretHeader)) {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error":   "unauthorized",
					"message": "Invalid webhook secret",
				})
			}
			return next(c)
		}
	}
}
