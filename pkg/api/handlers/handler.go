package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apierrors "github.com/leadpilot/leadpilot/pkg/api/errors"
)

var validate = validator.New()

// bindAndValidate decodes the request body (or query) into req and runs the
// struct validations. When it reports !ok the error response has already been
// written and the handler should return the accompanying error.
func bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, apierrors.BadRequestError(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return false, apierrors.ValidationError(c, err)
	}
	return true, nil
}
