package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the health-check endpoint used by load balancers and
// monitoring systems to verify that the planner is running.  It returns a
// plain text "ok" with an HTTP 200 status code.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
