package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/locvowork/employee_management_backend/internal/config"
	"github.com/locvowork/employee_management_backend/internal/database"
	"github.com/locvowork/employee_management_backend/internal/handler"
	"github.com/locvowork/employee_management_backend/internal/logger"
	"github.com/locvowork/employee_management_backend/internal/metrics"
	"github.com/locvowork/employee_management_backend/internal/repository"
	"github.com/locvowork/employee_management_backend/internal/service"
	"github.com/locvowork/employee_management_backend/pkg/simpleexcel"
)

type App struct {
	Echo    *echo.Echo
	DB      *sql.DB
	Metrics *metrics.Metrics

	Departments service.DepartmentService
	Employees   service.EmployeeService
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	return &App{
		Echo:    e,
		Metrics: metrics.New(),
	}
}

// Initialize loads configuration, opens the database and wires the services.
// Routes are registered separately so the seeder can reuse the services
// without an HTTP server.
func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	// Initialize database connection
	dbConfig := database.Config{
		ConnectionString: config.DefaultEnvConfig.DB_CONNECTION_STRING,
		MaxOpenConns:     config.DefaultEnvConfig.DB_MAX_OPEN_CONNS,
		MaxIdleConns:     config.DefaultEnvConfig.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime:  config.DefaultEnvConfig.DB_CONN_MAX_LIFETIME,
	}

	db, err := database.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db
	logger.InfoLog(ctx, "Database connection established successfully")

	a.Wire(db)
	return nil
}

// Wire builds repositories and services on top of db.
func (a *App) Wire(db *sql.DB) {
	deptRepo := repository.NewDepartmentRepository(db)
	empRepo := repository.NewEmployeeRepository(db)

	a.Departments = service.NewDepartmentService(deptRepo, service.WithRecorder(a.Metrics))
	a.Employees = service.NewEmployeeService(empRepo, deptRepo, service.WithRecorder(a.Metrics))
}

// SetupHTTP registers middlewares and routes. exportTemplate is the layout
// of the employee export.
func (a *App) SetupHTTP(exportTemplate *simpleexcel.ReportTemplate) {
	a.RegisterMiddlewares()
	a.RegisterRoutes(
		handler.NewDepartmentHandler(a.Departments),
		handler.NewEmployeeHandler(a.Employees, exportTemplate),
		handler.NewHealthHandler(a.DB),
	)
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	a.Echo.Use(logger.RequestLogger())
	a.Echo.Use(a.Metrics.Middleware())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(deptHandler *handler.DepartmentHandler, empHandler *handler.EmployeeHandler, healthHandler *handler.HealthHandler) {
	departments := a.Echo.Group("/api/departments")
	departments.GET("", deptHandler.ListHandler)
	departments.GET("/paged", deptHandler.PagedHandler)
	departments.GET("/:id", deptHandler.GetHandler)
	departments.POST("", deptHandler.CreateHandler)
	departments.PUT("/:id", deptHandler.UpdateHandler)
	departments.DELETE("/:id", deptHandler.DeleteHandler)

	employees := a.Echo.Group("/api/employees")
	employees.GET("", empHandler.ListHandler)
	employees.GET("/paged", empHandler.PagedHandler)
	employees.GET("/export", empHandler.ExportHandler)
	employees.GET("/:id", empHandler.GetHandler)
	employees.POST("", empHandler.CreateHandler)
	employees.PUT("/:id", empHandler.UpdateHandler)
	employees.DELETE("/:id", empHandler.DeleteHandler)

	a.Echo.GET("/healthz", healthHandler.CheckHandler)
	a.Echo.GET("/metrics", echo.WrapHandler(a.Metrics.Handler()))
}

// LoadExportTemplate parses the template file at path, or the built-in
// template when path is empty. Parsing here makes a broken file fail startup
// instead of the first export.
func LoadExportTemplate(path string) (*simpleexcel.ReportTemplate, error) {
	if path == "" {
		return simpleexcel.ParseTemplate([]byte(handler.DefaultExportTemplate))
	}
	tmpl, err := simpleexcel.LoadTemplateFile(path)
	if err != nil {
		return nil, fmt.Errorf("invalid export template: %w", err)
	}
	return tmpl, nil
}

func (a *App) Run() error {
	defer a.DB.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}
