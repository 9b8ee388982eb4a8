package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/employee_management_backend/internal/domain"
	"github.com/locvowork/employee_management_backend/internal/service"
	"github.com/locvowork/employee_management_backend/internal/service/serviceutils"
	"github.com/locvowork/employee_management_backend/pkg/simpleexcel"
)

type EmployeeHandler struct {
	svc            service.EmployeeService
	exportTemplate *simpleexcel.ReportTemplate
}

// NewEmployeeHandler creates the employee endpoints. exportTemplate is the
// parsed layout used by ExportHandler.
func NewEmployeeHandler(svc service.EmployeeService, exportTemplate *simpleexcel.ReportTemplate) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, exportTemplate: exportTemplate}
}

func (h *EmployeeHandler) ListHandler(c echo.Context) error {
	employees, err := h.svc.List(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error retrieving employees.", err)
	}
	return c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) PagedHandler(c echo.Context) error {
	page, pageSize := pagingParams(c)

	result, err := h.svc.ListPaged(c.Request().Context(), page, pageSize)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error retrieving employees.", err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *EmployeeHandler) GetHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	emp, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err, "Error retrieving employee.")
	}
	return c.JSON(http.StatusOK, emp)
}

func (h *EmployeeHandler) CreateHandler(c echo.Context) error {
	var req domain.EmployeeInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.svc.Add(c.Request().Context(), &req); err != nil {
		return respondServiceError(c, err, "Error adding employee.")
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/employees/%d", req.EmployeeID))
	return c.JSON(http.StatusCreated, req)
}

func (h *EmployeeHandler) UpdateHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	var req domain.EmployeeInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.svc.Update(c.Request().Context(), id, req); err != nil {
		return respondServiceError(c, err, "Error updating employee.")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EmployeeHandler) DeleteHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err, "Error deleting employee.")
	}
	return c.NoContent(http.StatusNoContent)
}
