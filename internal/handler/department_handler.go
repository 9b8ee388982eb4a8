package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/employee_management_backend/internal/domain"
	"github.com/locvowork/employee_management_backend/internal/service"
	"github.com/locvowork/employee_management_backend/internal/service/serviceutils"
)

type DepartmentHandler struct {
	svc service.DepartmentService
}

func NewDepartmentHandler(svc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{svc: svc}
}

func (h *DepartmentHandler) ListHandler(c echo.Context) error {
	departments, err := h.svc.List(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error retrieving departments.", err)
	}
	return c.JSON(http.StatusOK, departments)
}

func (h *DepartmentHandler) PagedHandler(c echo.Context) error {
	page, pageSize := pagingParams(c)

	result, err := h.svc.ListPaged(c.Request().Context(), page, pageSize)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error retrieving departments.", err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *DepartmentHandler) GetHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid department ID", err)
	}

	dept, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err, "Error retrieving department.")
	}
	return c.JSON(http.StatusOK, dept)
}

func (h *DepartmentHandler) CreateHandler(c echo.Context) error {
	var req domain.DepartmentInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.svc.Add(c.Request().Context(), &req); err != nil {
		return respondServiceError(c, err, "Error adding department.")
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/departments/%d", req.DepartmentID))
	return c.JSON(http.StatusCreated, req)
}

func (h *DepartmentHandler) UpdateHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid department ID", err)
	}

	var req domain.DepartmentInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.svc.Update(c.Request().Context(), id, req); err != nil {
		return respondServiceError(c, err, "Error updating department.")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DepartmentHandler) DeleteHandler(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid department ID", err)
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err, "Error deleting department.")
	}
	return c.NoContent(http.StatusNoContent)
}

// pagingParams reads page and pageSize, defaulting to 1 and 10. The service
// clamps whatever comes through.
func pagingParams(c echo.Context) (int, int) {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.QueryParam("pageSize"))
	if err != nil {
		pageSize = 10
	}
	return page, pageSize
}
