package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/bookshop/internal/model"
)

// BookRepo is the read-only catalog. The slice is copied at construction
// and never modified, so concurrent readers need no locking.
type BookRepo struct {
	books []model.Book
}

// NewBookRepo constructs a BookRepo holding a private copy of books in
// their original order.
func NewBookRepo(books []model.Book) *BookRepo {
	cp := make([]model.Book, len(books))
	copy(cp, books)
	return &BookRepo{books: cp}
}

// ListAll returns every book in catalog order. The returned slice is a
// copy and may be modified by the caller.
func (r *BookRepo) ListAll(ctx context.Context) ([]model.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.Book, len(r.books))
	copy(out, r.books)
	return out, nil
}

// GetByISBN returns the book whose ISBN equals isbn exactly.
func (r *BookRepo) GetByISBN(ctx context.Context, isbn string) (model.Book, error) {
	if err := ctx.Err(); err != nil {
		return model.Book{}, err
	}
	for _, b := range r.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return model.Book{}, ErrBookNotFound
}

// SearchAuthor returns books whose author contains substr, ignoring case.
func (r *BookRepo) SearchAuthor(ctx context.Context, substr string) ([]model.Book, error) {
	return r.filter(ctx, substr, func(b model.Book) string { return b.Author })
}

// SearchTitle returns books whose title contains substr, ignoring case.
func (r *BookRepo) SearchTitle(ctx context.Context, substr string) ([]model.Book, error) {
	return r.filter(ctx, substr, func(b model.Book) string { return b.Title })
}

func (r *BookRepo) filter(ctx context.Context, substr string, field func(model.Book) string) ([]model.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(substr)
	var out []model.Book
	for _, b := range r.books {
		if strings.Contains(strings.ToLower(field(b)), needle) {
			out = append(out, b)
		}
	}
	return out, nil
}
