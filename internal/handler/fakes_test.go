package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/employee_management_backend/internal/domain"
	"github.com/locvowork/employee_management_backend/internal/handler"
	"github.com/locvowork/employee_management_backend/pkg/simpleexcel"
)

type fakeDepartmentService struct {
	ListFn      func(ctx context.Context) ([]domain.Department, error)
	ListPagedFn func(ctx context.Context, page, pageSize int) (domain.PagedResult[domain.Department], error)
	GetByIDFn   func(ctx context.Context, id int) (*domain.Department, error)
	AddFn       func(ctx context.Context, in *domain.DepartmentInput) error
	UpdateFn    func(ctx context.Context, id int, in domain.DepartmentInput) error
	DeleteFn    func(ctx context.Context, id int) error
}

func (f *fakeDepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	return f.ListFn(ctx)
}
func (f *fakeDepartmentService) ListPaged(ctx context.Context, page, pageSize int) (domain.PagedResult[domain.Department], error) {
	return f.ListPagedFn(ctx, page, pageSize)
}
func (f *fakeDepartmentService) GetByID(ctx context.Context, id int) (*domain.Department, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeDepartmentService) Add(ctx context.Context, in *domain.DepartmentInput) error {
	return f.AddFn(ctx, in)
}
func (f *fakeDepartmentService) Update(ctx context.Context, id int, in domain.DepartmentInput) error {
	return f.UpdateFn(ctx, id, in)
}
func (f *fakeDepartmentService) Delete(ctx context.Context, id int) error {
	return f.DeleteFn(ctx, id)
}

type fakeEmployeeService struct {
	ListFn      func(ctx context.Context) ([]domain.Employee, error)
	ListPagedFn func(ctx context.Context, page, pageSize int) (domain.PagedResult[domain.Employee], error)
	GetByIDFn   func(ctx context.Context, id int) (*domain.Employee, error)
	AddFn       func(ctx context.Context, in *domain.EmployeeInput) error
	UpdateFn    func(ctx context.Context, id int, in domain.EmployeeInput) error
	DeleteFn    func(ctx context.Context, id int) error
}

func (f *fakeEmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return f.ListFn(ctx)
}
func (f *fakeEmployeeService) ListPaged(ctx context.Context, page, pageSize int) (domain.PagedResult[domain.Employee], error) {
	return f.ListPagedFn(ctx, page, pageSize)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id int) (*domain.Employee, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Add(ctx context.Context, in *domain.EmployeeInput) error {
	return f.AddFn(ctx, in)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id int, in domain.EmployeeInput) error {
	return f.UpdateFn(ctx, id, in)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id int) error {
	return f.DeleteFn(ctx, id)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	return e
}

func departmentRouter(svc *fakeDepartmentService) *echo.Echo {
	e := newEcho()
	h := handler.NewDepartmentHandler(svc)
	g := e.Group("/api/departments")
	g.GET("", h.ListHandler)
	g.GET("/paged", h.PagedHandler)
	g.GET("/:id", h.GetHandler)
	g.POST("", h.CreateHandler)
	g.PUT("/:id", h.UpdateHandler)
	g.DELETE("/:id", h.DeleteHandler)
	return e
}

// exportLayout is the built-in export template, parsed once.
var exportLayout = func() *simpleexcel.ReportTemplate {
	tmpl, err := simpleexcel.ParseTemplate([]byte(handler.DefaultExportTemplate))
	if err != nil {
		panic(err)
	}
	return tmpl
}()

func employeeRouter(svc *fakeEmployeeService) *echo.Echo {
	e := newEcho()
	h := handler.NewEmployeeHandler(svc, exportLayout)
	g := e.Group("/api/employees")
	g.GET("", h.ListHandler)
	g.GET("/paged", h.PagedHandler)
	g.GET("/export", h.ExportHandler)
	g.GET("/:id", h.GetHandler)
	g.POST("", h.CreateHandler)
	g.PUT("/:id", h.UpdateHandler)
	g.DELETE("/:id", h.DeleteHandler)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
