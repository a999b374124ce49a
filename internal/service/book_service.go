package service

import (
	"context"
	"errors"

	"github.com/iliyamo/bookshop/internal/model"
	"github.com/iliyamo/bookshop/internal/repository"
)

// Messages returned to clients by BookService and ReviewService.
const (
	MsgBookNotFound     = "Book not found"
	MsgNoBooksByAuthor  = "No books found for this author"
	MsgNoBooksWithTitle = "No books found with this title"
)

// Catalog is the read-only book source. *repository.BookRepo implements it.
type Catalog interface {
	ListAll(ctx context.Context) ([]model.Book, error)
	GetByISBN(ctx context.Context, isbn string) (model.Book, error)
	SearchAuthor(ctx context.Context, substr string) ([]model.Book, error)
	SearchTitle(ctx context.Context, substr string) ([]model.Book, error)
}

// BookService answers catalog queries.
type BookService struct {
	catalog Catalog
}

func NewBookService(c Catalog) *BookService { return &BookService{catalog: c} }

// ListAll returns the whole catalog in its original order.
func (s *BookService) ListAll(ctx context.Context) ([]model.Book, error) {
	return s.catalog.ListAll(ctx)
}

// FindByISBN returns the book with exactly this ISBN.
func (s *BookService) FindByISBN(ctx context.Context, isbn string) (model.Book, error) {
	b, err := s.catalog.GetByISBN(ctx, isbn)
	if errors.Is(err, repository.ErrBookNotFound) {
		return model.Book{}, newError(ErrNotFound, MsgBookNotFound)
	}
	return b, err
}

// FindByAuthor returns books whose author contains substr, ignoring case.
// Zero matches is reported as ErrNotFound.
func (s *BookService) FindByAuthor(ctx context.Context, substr string) ([]model.Book, error) {
	books, err := s.catalog.SearchAuthor(ctx, substr)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, newError(ErrNotFound, MsgNoBooksByAuthor)
	}
	return books, nil
}

// FindByTitle returns books whose title contains substr, ignoring case.
// Zero matches is reported as ErrNotFound.
func (s *BookService) FindByTitle(ctx context.Context, substr string) ([]model.Book, error) {
	books, err := s.catalog.SearchTitle(ctx, substr)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, newError(ErrNotFound, MsgNoBooksWithTitle)
	}
	return books, nil
}
