package handler

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/employee_management_backend/internal/domain"
	"github.com/locvowork/employee_management_backend/internal/service/serviceutils"
	"github.com/locvowork/employee_management_backend/pkg/simpleexcel"
	"github.com/shopspring/decimal"
)

// DefaultExportTemplate is used when EXPORT_TEMPLATE_PATH is not set.
//
//go:embed templates/employee_export.yaml
var DefaultExportTemplate string

const exportSectionID = "employees"

// ExportHandler streams every employee as an xlsx workbook.
func (h *EmployeeHandler) ExportHandler(c echo.Context) error {
	employees, err := h.svc.List(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error retrieving employees.", err)
	}

	data, err := simpleexcel.NewDataExporter(h.exportTemplate).
		RegisterFormatter("currency", formatCurrency).
		RegisterFormatter("date", formatDate).
		BindSectionData(exportSectionID, employees).
		ToBytes()
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error exporting employees.", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="employees.xlsx"`)
	return c.Blob(http.StatusOK, simpleexcel.ContentType, data)
}

func formatCurrency(v interface{}) interface{} {
	if d, ok := v.(decimal.Decimal); ok {
		return d.StringFixed(2)
	}
	return v
}

func formatDate(v interface{}) interface{} {
	if d, ok := v.(domain.Date); ok {
		return d.String()
	}
	return v
}
