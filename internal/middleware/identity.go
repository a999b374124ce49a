package middleware

// identity.go defines helpers shared across middleware and handlers for
// the authenticated caller stored by JWTAuth.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bookshop/internal/model"
)

const identityKey = "identity"

// IdentityFrom returns the identity JWTAuth stored in c. ok is false on
// routes that are not behind JWTAuth.
func IdentityFrom(c echo.Context) (model.Identity, bool) {
	id, ok := c.Get(identityKey).(model.Identity)
	if !ok || id.Username == "" {
		return model.Identity{}, false
	}
	return id, true
}

// username returns the caller's username for log lines, or "guest".
func username(c echo.Context) string {
	if id, ok := IdentityFrom(c); ok {
		return id.Username
	}
	return "guest"
}
