package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIVersion is reported by the API index.
const APIVersion = "1.0.0"

// Health is a liveness probe for load balancers and monitoring. It
// answers a plain "ok".
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// APIIndex describes the endpoint groups under /api.
func APIIndex(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Bookshop Backend API",
		"version": APIVersion,
		"endpoints": echo.Map{
			"books":   "/api/books",
			"users":   "/api/users",
			"reviews": "/api/reviews",
		},
	})
}

// APINotFound answers unknown /api paths with JSON instead of the
// frontend shell.
func APINotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": "Route not found"})
}
