// Package serviceutils writes the JSON error envelopes returned by the API.
package serviceutils

import (
	"github.com/labstack/echo/v4"
	"github.com/locvowork/employee_management_backend/internal/logger"
)

// ValidationMessage is the top-level message of every 400 carrying field errors.
const ValidationMessage = "One or more validation errors occurred."

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// ResponseError writes {"message": message}. err, when present, is logged
// and never sent to the client.
func ResponseError(c echo.Context, status int, message string, err error) error {
	if err != nil {
		ctx := c.Request().Context()
		if status >= 500 {
			logger.ErrorLog(ctx, err, "%s", message)
		} else {
			logger.WarnLog(ctx, "%s: %v", message, err)
		}
	}
	return c.JSON(status, ErrorResponse{Message: message})
}

// ResponseValidation writes a 400 listing every failing field.
func ResponseValidation(c echo.Context, status int, fields map[string]string) error {
	return c.JSON(status, ErrorResponse{Message: ValidationMessage, Errors: fields})
}
