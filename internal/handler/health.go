package handler // declare the package name; contains HTTP handlers

import (
    "net/http" // net/http provides status codes and response helpers

    "github.com/labstack/echo/v4" // echo is the web framework used for this project
)

const banner = `<html><head><title>Inicio</title></head><body><h1>Proyecto backend</h1></body></html>`

// Root answers GET / with a static HTML page.
func Root(c echo.Context) error {
    return c.HTML(http.StatusOK, banner)
}

// Health answers liveness checks from load balancers and monitoring.  It
// returns a plain text "ok" with status 200.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}
