package authentication

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokens map[string]string

func (m memTokens) Register(_ context.Context, tokenUUID string, userID string, _ time.Duration) error {
	m[tokenUUID] = userID
	return nil
}

func (m memTokens) Lookup(_ context.Context, tokenUUID string) (string, error) {
	userID, ok := m[tokenUUID]
	if !ok {
		return "", ErrUnauthorized
	}
	return userID, nil
}

func newAuthenticator() *Authenticator {
	return &Authenticator{
		Secret:        []byte("test-secret"),
		CookieName:    "sf_tokens",
		CookieHashKey: []byte("0123456789abcdef0123456789abcdef"),
		Store:         memTokens{},
	}
}

func issue(t *testing.T, a *Authenticator, userID string) *TokenDetails {
	t.Helper()
	td, err := a.CreateToken(userID)
	require.NoError(t, err)
	require.NoError(t, a.CreateAuth(context.Background(), userID, td))
	return td
}

func TestAuthenticateBearer(t *testing.T) {
	a := newAuthenticator()
	td := issue(t, a, "5f8f8c44b54764421b7156c3")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+td.AccessToken)

	userID, err := a.Authenticate(r)
	require.NoError(t, err)
	assert.Equal(t, "5f8f8c44b54764421b7156c3", userID)
}

func TestAuthenticateCookie(t *testing.T) {
	a := newAuthenticator()
	td := issue(t, a, "5f8f8c44b54764421b7156c3")

	w := httptest.NewRecorder()
	require.NoError(t, a.SetTokenCookie(w, td))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range w.Result().Cookies() {
		r.AddCookie(ck)
	}

	userID, err := a.Authenticate(r)
	require.NoError(t, err)
	assert.Equal(t, "5f8f8c44b54764421b7156c3", userID)
}

func TestAuthenticateRejects(t *testing.T) {
	a := newAuthenticator()

	// no token at all
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := a.Authenticate(r)
	assert.Equal(t, ErrNotLoggedIn, err)

	// malformed header
	r.Header.Set("Authorization", "Token abc")
	_, err = a.Authenticate(r)
	assert.Equal(t, ErrUnauthorized, err)

	// signed with another secret
	other := newAuthenticator()
	other.Secret = []byte("other")
	td, err := other.CreateToken("u1")
	require.NoError(t, err)
	r.Header.Set("Authorization", "Bearer "+td.AccessToken)
	_, err = a.Authenticate(r)
	assert.Equal(t, ErrUnauthorized, err)

	// valid signature but not registered (revoked/expired in the registry)
	td, err = a.CreateToken("u1")
	require.NoError(t, err)
	r.Header.Set("Authorization", "Bearer "+td.AccessToken)
	_, err = a.Authenticate(r)
	assert.Equal(t, ErrUnauthorized, err)
}

func TestIsAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := newAuthenticator()
	td := issue(t, a, "u42")

	router := gin.New()
	router.GET("/me", a.IsAuthenticatedUser(), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.Header.Set("Authorization", "Bearer "+td.AccessToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u42", w.Body.String())
}
