package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/employee_management_backend/internal/service/serviceutils"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// CheckHandler reports 200 when the database answers a ping, 503 otherwise.
func (h *HealthHandler) CheckHandler(c echo.Context) error {
	if err := h.db.PingContext(c.Request().Context()); err != nil {
		return serviceutils.ResponseError(c, http.StatusServiceUnavailable, "database unavailable", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
