package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/bookshop/internal/service"
)

func newCtx(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(method, target, nil), rec), rec
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		service.ErrValidation:   http.StatusBadRequest,
		service.ErrConflict:     http.StatusBadRequest,
		service.ErrAuth:         http.StatusUnauthorized,
		service.ErrNotFound:     http.StatusNotFound,
		errors.New("disk full"): http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	c, rec := newCtx(http.MethodGet, "/api/books")
	_ = respondError(c, errors.New("boom"), "Failed to retrieve books")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to retrieve books"}`, rec.Body.String())

	c, rec = newCtx(http.MethodGet, "/api/books/isbn/x")
	_ = respondError(c, &service.Error{Kind: service.ErrNotFound, Message: "Book not found"}, "unused")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Book not found"}`, rec.Body.String())
}

func TestErrorHandlerRendersJSON(t *testing.T) {
	h := ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	c, rec := newCtx(http.MethodGet, "/nope")
	h(echo.ErrNotFound, c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())

	c, rec = newCtx(http.MethodGet, "/panic")
	h(errors.New("nil map write"), c)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())

	c, rec = newCtx(http.MethodHead, "/nope")
	h(echo.ErrNotFound, c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
