package middleware

import (
    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/iliyamo/wildlife-sightings/internal/logging"
)

// RequestID assigns a UUID to every request (or keeps the caller's
// X-Request-ID) and stores it on the request context for logging.Ctx.
func RequestID() echo.MiddlewareFunc {
    return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
        Generator: uuid.NewString,
        RequestIDHandler: func(c echo.Context, id string) {
            req := c.Request()
            c.SetRequest(req.WithContext(logging.WithRequestID(req.Context(), id)))
        },
    })
}

// RequestLogger writes one structured line per request.
func RequestLogger() echo.MiddlewareFunc {
    return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogMethod:    true,
        LogURI:       true,
        LogStatus:    true,
        LogLatency:   true,
        LogRemoteIP:  true,
        LogRequestID: true,
        LogError:     true,
        HandleError:  true,
        LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
            ev := logging.Info()
            if v.Status >= 500 {
                ev = logging.Error()
            }
            if v.Error != nil {
                ev = ev.Err(v.Error)
            }
            ev.Str("method", v.Method).
                Str("uri", v.URI).
                Int("status", v.Status).
                Dur("latency", v.Latency).
                Str("remote_ip", v.RemoteIP).
                Str("request_id", v.RequestID).
                Msg("request")
            return nil
        },
    })
}
