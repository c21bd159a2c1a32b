package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports service liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"ok":        "true",
		"service":   "mingle-api",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
