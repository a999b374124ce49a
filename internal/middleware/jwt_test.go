package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/bookshop/internal/model"
	"github.com/iliyamo/bookshop/internal/service"
)

type fakeVerifier map[string]model.Identity

func (f fakeVerifier) Verify(token string) (model.Identity, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return model.Identity{}, &service.Error{Kind: service.ErrAuth, Message: service.MsgInvalidToken}
}

func runJWT(t *testing.T, header string) (*httptest.ResponseRecorder, model.Identity, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews/x", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var (
		got    model.Identity
		called bool
	)
	h := JWTAuth(fakeVerifier{"good": {ID: 3, Username: "alice"}})(func(c echo.Context) error {
		got, called = IdentityFrom(c)
		return c.NoContent(http.StatusNoContent)
	})
	require.NoError(t, h(c))
	return rec, got, called
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestJWTAuthAcceptsBearer(t *testing.T) {
	for _, h := range []string{"Bearer good", "bearer good", "  Bearer   good "} {
		rec, id, ok := runJWT(t, h)
		assert.Equal(t, http.StatusNoContent, rec.Code, h)
		assert.True(t, ok)
		assert.Equal(t, model.Identity{ID: 3, Username: "alice"}, id)
	}
}

func TestJWTAuthMissingToken(t *testing.T) {
	for _, h := range []string{"", "good", "Basic abc", "Bearer "} {
		rec, _, ok := runJWT(t, h)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, h)
		assert.False(t, ok)
		assert.Equal(t, service.MsgTokenRequired, errorBody(t, rec))
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	rec, _, ok := runJWT(t, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, ok)
	assert.Equal(t, service.MsgInvalidToken, errorBody(t, rec))
}

func TestIdentityFromWithoutAuth(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, ok := IdentityFrom(c)
	assert.False(t, ok)
	assert.Equal(t, "guest", username(c))

	c.Set(identityKey, model.Identity{ID: 1, Username: "bob"})
	assert.Equal(t, "bob", username(c))
}
