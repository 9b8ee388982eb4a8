package logger

import (
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger tags every request context with the request id, method and
// path so handler and service logs carry them, and logs one line per request.
// It must run after echo's RequestID middleware.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			ctx := WithLogger(req.Context(), map[string]interface{}{
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"method":     req.Method,
				"path":       req.URL.Path,
			})
			c.SetRequest(req.WithContext(ctx))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			event := getLogger(ctx).Info()
			if status >= 500 {
				event = getLogger(ctx).Error()
			}
			event.
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("route", c.Path()).
				Msg("request completed")
			return nil
		}
	}
}
