package middleware

import (
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
)

// HTTPRecorder receives one observation per served request.
type HTTPRecorder interface {
    RecordHTTP(method, route string, status int, d time.Duration)
}

// Metrics records method, route template, status and latency of every
// request.  Unmatched routes are reported as "unmatched" to bound cardinality.
func Metrics(rec HTTPRecorder) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)

            status := c.Response().Status
            if err != nil {
                var he *echo.HTTPError
                if errors.As(err, &he) {
                    status = he.Code
                } else {
                    status = http.StatusInternalServerError
                }
            }
            route := c.Path()
            if route == "" {
                route = "unmatched"
            }
            rec.RecordHTTP(c.Request().Method, route, status, time.Since(start))
            return err
        }
    }
}
