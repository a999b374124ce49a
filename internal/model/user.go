package model

import "time"

// User represents a registered account held by the user store.
// PasswordHash is never serialised; handlers respond with UserPublic.
//
// Fields:
//  ID           – store assigned identifier, monotonically increasing.
//  Username     – unique login name (case-sensitive).
//  Email        – unique email address (case-sensitive).
//  PasswordHash – bcrypt hash of the password.
//  RegisteredAt – UTC registration time.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// UserPublic is the subset of User fields safe to return to clients.
type UserPublic struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public strips the credential fields from u.
func (u User) Public() UserPublic {
	return UserPublic{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Identity is the authenticated caller decoded from an access token.
// It is trusted as-is and not re-checked against the user store.
type Identity struct {
	ID       uint64
	Username string
}
