package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/employee_management_backend/internal/domain"
	"github.com/locvowork/employee_management_backend/internal/service/serviceutils"
)

const invalidBodyMessage = "Invalid request body"

// respondServiceError maps a service error to its status: NotFound to 404,
// ValidationError to 400 keyed by field, anything else to 500 with
// fallback as the message.
func respondServiceError(c echo.Context, err error, fallback string) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return serviceutils.ResponseValidation(c, http.StatusBadRequest, map[string]string{ve.Field: ve.Message})
	}

	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return serviceutils.ResponseError(c, http.StatusNotFound, nf.Error(), nil)
	}

	return serviceutils.ResponseError(c, http.StatusInternalServerError, fallback, err)
}

// bindAndValidate decodes the JSON body into req and checks its shape. It
// writes the 400 itself and reports false when the request must stop.
func bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, serviceutils.ResponseError(c, http.StatusBadRequest, invalidBodyMessage, err)
	}
	if err := c.Validate(req); err != nil {
		if fields, ok := FieldErrors(err); ok {
			return false, serviceutils.ResponseValidation(c, http.StatusBadRequest, fields)
		}
		return false, serviceutils.ResponseError(c, http.StatusBadRequest, invalidBodyMessage, err)
	}
	return true, nil
}

// parseID reads a route id. Ids are PostgreSQL INTEGER columns, so anything
// outside the int32 range is rejected here instead of failing in the store.
func parseID(raw string) (int, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(id), nil
}
