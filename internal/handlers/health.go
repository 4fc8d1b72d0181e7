package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports process liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "lookshare-api",
	})
}

// Root is the liveness check kept for the frontend's startup probe.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "API is running successfully!"})
}
