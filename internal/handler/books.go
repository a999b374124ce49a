package handler

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bookshop/internal/service"
)

// BookHandler exposes the read-only catalog.
type BookHandler struct {
	Books *service.BookService
}

func NewBookHandler(books *service.BookService) *BookHandler {
	if books == nil {
		panic("nil book service passed to NewBookHandler")
	}
	return &BookHandler{Books: books}
}

// ListBooks handles GET /api/books.
func (h *BookHandler) ListBooks(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	books, err := h.Books.ListAll(ctx)
	if err != nil {
		return respondError(c, err, "Failed to retrieve books")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(books), "books": books})
}

// GetByISBN handles GET /api/books/isbn/:isbn. The match is exact.
func (h *BookHandler) GetByISBN(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	book, err := h.Books.FindByISBN(ctx, c.Param("isbn"))
	if err != nil {
		return respondError(c, err, "Failed to retrieve book")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "book": book})
}

// GetByAuthor handles GET /api/books/author/:author (case-insensitive substring).
func (h *BookHandler) GetByAuthor(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	books, err := h.Books.FindByAuthor(ctx, pathParam(c, "author"))
	if err != nil {
		return respondError(c, err, "Failed to retrieve books by author")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(books), "books": books})
}

// GetByTitle handles GET /api/books/title/:title (case-insensitive substring).
func (h *BookHandler) GetByTitle(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	books, err := h.Books.FindByTitle(ctx, pathParam(c, "title"))
	if err != nil {
		return respondError(c, err, "Failed to retrieve books by title")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(books), "books": books})
}

// pathParam returns a free-text path parameter (author, title) decoded
// once more, so double-encoded searches still match. A value that fails
// to decode is returned as-is. ISBNs are used as routed.
func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
