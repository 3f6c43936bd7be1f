package errors

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadpilot/leadpilot/pkg/domain"
	"github.com/leadpilot/leadpilot/pkg/models"
)

// ValidationError returns a generic validation error without exposing internal details
func ValidationError(c echo.Context, err error) error {
	// Log the actual error for debugging
	log.Printf("[VALIDATION ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: "Invalid request data. Please check your input and try again.",
	})
}

// InternalError returns a generic internal server error
func InternalError(c echo.Context, err error) error {
	// Log the actual error for debugging
	log.Printf("[INTERNAL ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred. Please try again later.",
	})
}

// UnauthorizedError returns a generic unauthorized error
func UnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: "You are not authorized to access this resource.",
	})
}

// NotFoundError returns a generic not found error
func NotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "not_found",
		Message: "The requested " + resource + " was not found.",
	})
}

// BadRequestError returns a bad request error with a safe message
func BadRequestError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// UpstreamError returns a bad gateway error for vendor failures
func UpstreamError(c echo.Context, err error) error {
	log.Printf("[UPSTREAM ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusBadGateway, models.ErrorResponse{
		Error:   "upstream_error",
		Message: "An upstream service failed. Please try again later.",
	})
}

// NotConfiguredError reports a vendor integration without credentials
func NotConfiguredError(c echo.Context, err error) error {
	var domainErr *domain.DomainError
	message := "Service not configured."
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "not_configured",
		Message: message,
	})
}

// Domain translates a domain error into the matching HTTP response. Unknown
// errors become generic internal errors.
func Domain(c echo.Context, err error) error {
	switch {
	case domain.IsNotFound(err):
		var domainErr *domain.DomainError
		message := "The requested resource was not found."
		if errors.As(err, &domainErr) && domainErr.Message != "" {
			message = domainErr.Message
		}
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: message,
		})
	case domain.IsValidation(err):
		return ValidationError(c, err)
	case domain.IsBadRequest(err):
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return BadRequestError(c, domainErr.Message)
		}
		return BadRequestError(c, "Invalid request.")
	case domain.IsNotConfigured(err):
		return NotConfiguredError(c, err)
	case domain.IsUpstream(err):
		return UpstreamError(c, err)
	case domain.IsUnauthorized(err):
		return UnauthorizedError(c)
	default:
		return InternalError(c, err)
	}
}
