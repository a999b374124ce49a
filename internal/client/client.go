// Package client is a typed Go client for the bookshop HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/bookshop/internal/model"
)

// DefaultBaseURL points at a locally running server.
const DefaultBaseURL = "http://localhost:3000"

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Client calls the API rooted at BaseURL. Token, when set, is sent as a
// bearer token; Login sets it.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Token   string
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ----- response shapes -----

type BookList struct {
	Count int          `json:"count"`
	Books []model.Book `json:"books"`
}

type ReviewList struct {
	ISBN    string         `json:"isbn"`
	Count   int            `json:"count"`
	Reviews []model.Review `json:"reviews"`
}

type ReviewResult struct {
	Message string       `json:"message"`
	Created bool         `json:"created"`
	Review  model.Review `json:"review"`
}

type DeleteResult struct {
	Message       string                 `json:"message"`
	DeletedReview model.DeletedReviewRef `json:"deletedReview"`
}

type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      model.UserPublic `json:"user"`
}

// ----- books -----

func (c *Client) ListBooks(ctx context.Context) (BookList, error) {
	var out BookList
	err := c.do(ctx, http.MethodGet, "/api/books", nil, &out)
	return out, err
}

func (c *Client) BookByISBN(ctx context.Context, isbn string) (model.Book, error) {
	var out struct {
		Book model.Book `json:"book"`
	}
	err := c.do(ctx, http.MethodGet, "/api/books/isbn/"+url.PathEscape(isbn), nil, &out)
	return out.Book, err
}

func (c *Client) BooksByAuthor(ctx context.Context, author string) (BookList, error) {
	var out BookList
	err := c.do(ctx, http.MethodGet, "/api/books/author/"+url.PathEscape(author), nil, &out)
	return out, err
}

func (c *Client) BooksByTitle(ctx context.Context, title string) (BookList, error) {
	var out BookList
	err := c.do(ctx, http.MethodGet, "/api/books/title/"+url.PathEscape(title), nil, &out)
	return out, err
}

// ----- users -----

func (c *Client) Register(ctx context.Context, username, email, password string) (model.UserPublic, error) {
	var out struct {
		User model.UserPublic `json:"user"`
	}
	body := map[string]string{"username": username, "email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/users/register", body, &out)
	return out.User, err
}

// Login authenticates and stores the returned token on c.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var out LoginResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", body, &out); err != nil {
		return LoginResult{}, err
	}
	c.Token = out.Token
	return out, nil
}

// ----- reviews -----

func (c *Client) Reviews(ctx context.Context, isbn string) (ReviewList, error) {
	var out ReviewList
	err := c.do(ctx, http.MethodGet, "/api/reviews/"+url.PathEscape(isbn), nil, &out)
	return out, err
}

// PutReview creates or replaces the caller's review of isbn.
func (c *Client) PutReview(ctx context.Context, isbn, text string, rating int) (ReviewResult, error) {
	var out ReviewResult
	body := map[string]any{"review": text, "rating": rating}
	err := c.do(ctx, http.MethodPost, "/api/reviews/"+url.PathEscape(isbn), body, &out)
	return out, err
}

func (c *Client) DeleteReview(ctx context.Context, isbn string) (DeleteResult, error) {
	var out DeleteResult
	err := c.do(ctx, http.MethodDelete, "/api/reviews/"+url.PathEscape(isbn), nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(raw))
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
