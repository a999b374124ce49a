package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/bookshop/internal/model"
	"github.com/iliyamo/bookshop/internal/repository"
	"github.com/iliyamo/bookshop/internal/service"
)

func newBookHandler() *BookHandler {
	repo := repository.NewBookRepo([]model.Book{
		{ISBN: "A", Title: "100% Cotton", Author: "Ann %41", Year: 2000, Genre: "Test"},
	})
	return NewBookHandler(service.NewBookService(repo))
}

func paramCtx(name, value string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newCtx(http.MethodGet, "/")
	c.SetParamNames(name)
	c.SetParamValues(value)
	return c, rec
}

func TestGetByISBNUsesRoutedValue(t *testing.T) {
	h := newBookHandler()

	c, rec := paramCtx("isbn", "%41")
	require.NoError(t, h.GetByISBN(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Book not found"}`, rec.Body.String())

	c, rec = paramCtx("isbn", "A")
	require.NoError(t, h.GetByISBN(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSearchParamsAreDecoded(t *testing.T) {
	h := newBookHandler()

	c, rec := paramCtx("title", "100%25")
	require.NoError(t, h.GetByTitle(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = paramCtx("author", "ann%20")
	require.NoError(t, h.GetByAuthor(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// invalid escape is searched verbatim
	c, rec = paramCtx("author", "%4")
	require.NoError(t, h.GetByAuthor(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
