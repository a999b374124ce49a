// Package service holds the bookshop business rules: registration and
// login, catalog queries, and the one-review-per-user-per-book policy.
// Services return *Error values whose Kind is one of the sentinels below
// so the HTTP layer can pick a status code without inspecting messages.
package service

import "errors"

var (
	// ErrValidation marks malformed or missing input (HTTP 400).
	ErrValidation = errors.New("validation failed")
	// ErrAuth marks bad credentials or a missing/invalid token (HTTP 401).
	ErrAuth = errors.New("authentication failed")
	// ErrNotFound marks a lookup with no matching entity (HTTP 404).
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a duplicate registration (HTTP 400).
	ErrConflict = errors.New("conflict")
)

// Error is a client-facing failure. Message is safe to show to callers;
// Kind is matched with errors.Is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}
