package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bookshop/internal/model"
	"github.com/iliyamo/bookshop/internal/service"
)

// TokenVerifier turns a raw bearer token into an identity.
// *service.AuthService implements it.
type TokenVerifier interface {
	Verify(token string) (model.Identity, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores the decoded identity in the request context. Handlers read
// it back with IdentityFrom. Any failure is answered with 401 and the
// verifier's message.
func JWTAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": service.MsgTokenRequired})
			}
			id, err := v.Verify(raw)
			if err != nil {
				msg := service.MsgInvalidToken
				var se *service.Error
				if errors.As(err, &se) {
					msg = se.Message
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// bearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
