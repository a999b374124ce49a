package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/bookshop/internal/model"
)

func sampleBooks() []model.Book {
	return []model.Book{
		{ISBN: "978-0-14-303490-2", Title: "The Shadow of the Wind", Author: "Carlos Ruiz Zafon", Year: 2001},
		{ISBN: "978-0-385-49081-8", Title: "The Handmaid's Tale", Author: "Margaret Atwood", Year: 1985},
		{ISBN: "978-1-4088-6312-1", Title: "I Am Not A Number", Author: "Lisa Heathfield", Year: 2016},
	}
}

func TestBookRepoListAllKeepsOrder(t *testing.T) {
	repo := NewBookRepo(sampleBooks())
	books, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "978-0-14-303490-2", books[0].ISBN)
	assert.Equal(t, "978-1-4088-6312-1", books[2].ISBN)

	// callers cannot mutate the catalog through the returned slice
	books[0].Title = "changed"
	again, _ := repo.ListAll(context.Background())
	assert.Equal(t, "The Shadow of the Wind", again[0].Title)
}

func TestBookRepoGetByISBN(t *testing.T) {
	repo := NewBookRepo(sampleBooks())
	b, err := repo.GetByISBN(context.Background(), "978-0-385-49081-8")
	require.NoError(t, err)
	assert.Equal(t, "Margaret Atwood", b.Author)

	_, err = repo.GetByISBN(context.Background(), "978-0-385-49081")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestBookRepoSearchIgnoresCase(t *testing.T) {
	repo := NewBookRepo(sampleBooks())
	ctx := context.Background()

	got, err := repo.SearchAuthor(ctx, "ATWOOD")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "The Handmaid's Tale", got[0].Title)

	got, err = repo.SearchTitle(ctx, "the")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.SearchAuthor(ctx, "orwell")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBookRepoHonoursCancelledContext(t *testing.T) {
	repo := NewBookRepo(sampleBooks())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
