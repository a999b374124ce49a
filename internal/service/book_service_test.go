package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/bookshop/internal/catalog"
	"github.com/iliyamo/bookshop/internal/repository"
)

func newCatalog(t *testing.T) *repository.BookRepo {
	t.Helper()
	books, err := catalog.Default()
	require.NoError(t, err)
	return repository.NewBookRepo(books)
}

func TestBookServiceQueries(t *testing.T) {
	svc := NewBookService(newCatalog(t))
	ctx := context.Background()

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	b, err := svc.FindByISBN(ctx, "978-0-14-303490-2")
	require.NoError(t, err)
	assert.Equal(t, "The Shadow of the Wind", b.Title)

	byAuthor, err := svc.FindByAuthor(ctx, "margaret")
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "978-0-385-49081-8", byAuthor[0].ISBN)

	byTitle, err := svc.FindByTitle(ctx, "THE")
	require.NoError(t, err)
	assert.Len(t, byTitle, 5)
}

func TestBookServiceNotFound(t *testing.T) {
	svc := NewBookService(newCatalog(t))
	ctx := context.Background()

	_, err := svc.FindByISBN(ctx, "978-0-123456-78-9")
	assertKind(t, err, ErrNotFound, MsgBookNotFound)

	_, err = svc.FindByAuthor(ctx, "orwell")
	assertKind(t, err, ErrNotFound, MsgNoBooksByAuthor)

	_, err = svc.FindByTitle(ctx, "nineteen eighty-four")
	assertKind(t, err, ErrNotFound, MsgNoBooksWithTitle)
}
