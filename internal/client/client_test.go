package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/bookshop/internal/catalog"
	"github.com/iliyamo/bookshop/internal/client"
	"github.com/iliyamo/bookshop/internal/handler"
	"github.com/iliyamo/bookshop/internal/repository"
	"github.com/iliyamo/bookshop/internal/router"
	"github.com/iliyamo/bookshop/internal/service"
)

const shadowISBN = "978-0-14-303490-2"

func newServer(t *testing.T) *client.Client {
	t.Helper()
	books, err := catalog.Default()
	require.NoError(t, err)
	bookRepo := repository.NewBookRepo(books)
	auth := service.NewAuthService(repository.NewMemoryUserRepo(), service.AuthConfig{
		Secret: "test-secret", TokenTTL: time.Hour, BcryptCost: bcrypt.MinCost,
	})
	e := router.New(router.Deps{
		Books:    handler.NewBookHandler(service.NewBookService(bookRepo)),
		Reviews:  handler.NewReviewHandler(service.NewReviewService(repository.NewMemoryReviewRepo(), bookRepo, nil, nil)),
		Users:    handler.NewUserHandler(auth),
		Verifier: auth,
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

func TestBooks(t *testing.T) {
	c := newServer(t)
	ctx := context.Background()

	all, err := c.ListBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, all.Count)
	assert.Len(t, all.Books, 6)

	b, err := c.BookByISBN(ctx, shadowISBN)
	require.NoError(t, err)
	assert.Equal(t, "The Shadow of the Wind", b.Title)

	byAuthor, err := c.BooksByAuthor(ctx, "Margaret Atwood")
	require.NoError(t, err)
	require.Equal(t, 1, byAuthor.Count)
	assert.Equal(t, "The Handmaid's Tale", byAuthor.Books[0].Title)

	byTitle, err := c.BooksByTitle(ctx, "The")
	require.NoError(t, err)
	assert.Equal(t, 5, byTitle.Count)

	_, err = c.BooksByAuthor(ctx, "George Orwell")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "No books found for this author", apiErr.Message)
}

func TestAccountAndReviews(t *testing.T) {
	c := newServer(t)
	ctx := context.Background()

	u, err := c.Register(ctx, "alice", "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = c.PutReview(ctx, shadowISBN, "Great", 5)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	res, err := c.Login(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, res.Token, c.Token)
	assert.True(t, res.ExpiresAt.After(time.Now()))

	put, err := c.PutReview(ctx, shadowISBN, "Great", 5)
	require.NoError(t, err)
	assert.True(t, put.Created)

	put, err = c.PutReview(ctx, shadowISBN, "Still great", 4)
	require.NoError(t, err)
	assert.False(t, put.Created)
	assert.Equal(t, 4, put.Review.Rating)

	list, err := c.Reviews(ctx, shadowISBN)
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Still great", list.Reviews[0].Text)

	del, err := c.DeleteReview(ctx, shadowISBN)
	require.NoError(t, err)
	assert.Equal(t, "alice", del.DeletedReview.Username)

	_, err = c.Reviews(ctx, shadowISBN)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}
