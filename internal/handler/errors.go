package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bookshop/internal/service"
)

// statusFor maps a service error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error": message}. Errors that are not
// *service.Error are logged and replaced by fallback with a 500.
func respondError(c echo.Context, err error, fallback string) error {
	var se *service.Error
	if errors.As(err, &se) {
		return c.JSON(statusFor(se), echo.Map{"error": se.Message})
	}
	slog.Error("request failed", "method", c.Request().Method, "path", c.Request().URL.Path, "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
}

// ErrorHandler renders framework errors (unknown route, bad method,
// panics caught by Recover) in the same {"error": message} shape as the
// handlers.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
		}
		if code >= http.StatusInternalServerError {
			logger.Error("unhandled error", "path", c.Request().URL.Path, "err", err)
			msg = "Internal server error"
		}
		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, echo.Map{"error": msg})
		}
		if werr != nil {
			logger.Error("write error response", "err", werr)
		}
	}
}
