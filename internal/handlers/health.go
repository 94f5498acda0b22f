package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const Version = "1.0.0"

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "OK",
		"message":   "SmartExpiry server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}
