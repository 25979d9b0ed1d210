package api

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// HeaderRequestDuration carries the handling time in milliseconds.
const HeaderRequestDuration = "X-Request-Duration-ms"

// RequestDuration stamps HeaderRequestDuration on every response. The header is
// set from a Before hook because headers are frozen once the handler writes.
func RequestDuration(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			res := c.Response()
			res.Before(func() {
				res.Header().Set(HeaderRequestDuration, strconv.FormatInt(time.Since(start).Milliseconds(), 10))
			})
			err := next(c)
			if logger != nil {
				logger.Debug("request finished", "path", c.Path(), "status", res.Status,
					"duration_ms", time.Since(start).Milliseconds())
			}
			return err
		}
	}
}
