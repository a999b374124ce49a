// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services to distinguish between different failure scenarios without
// depending on a particular store implementation.
package repository

import "errors"

// ErrBookNotFound is returned when no catalog entry has the requested ISBN.
var ErrBookNotFound = errors.New("book not found")

// ErrUserNotFound is returned when a user lookup has no match.
var ErrUserNotFound = errors.New("user not found")

// ErrUserExists is returned by Insert when the username or the email is
// already taken. Comparison is exact and case-sensitive.
var ErrUserExists = errors.New("user already exists")

// ErrReviewNotFound is returned when no review matches the lookup.
var ErrReviewNotFound = errors.New("review not found")

// ErrConflict is returned when an insert would break a uniqueness rule,
// such as a second review for the same book by the same user.
var ErrConflict = errors.New("conflict")
