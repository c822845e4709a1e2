package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokenVerifier struct {
	identity *Identity
	err      error
	token    string
}

func (v *stubTokenVerifier) VerifyToken(_ context.Context, token string) (*Identity, error) {
	v.token = token
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

func newAuthRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware(verifier))
	router.GET("/protected", func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "identity missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": identity.Username})
	})
	return router
}

func TestMiddleware_NoToken(t *testing.T) {
	verifier := &stubTokenVerifier{}
	router := newAuthRouter(verifier)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, verifier.token, "verifier must not be called without a token")
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	router := newAuthRouter(&stubTokenVerifier{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_InvalidToken(t *testing.T) {
	router := newAuthRouter(&stubTokenVerifier{err: ErrInvalidToken})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestMiddleware_VerifierFailureFailsClosed(t *testing.T) {
	router := newAuthRouter(&stubTokenVerifier{err: errors.New("user service unreachable")})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_ValidToken(t *testing.T) {
	verifier := &stubTokenVerifier{identity: &Identity{ID: "user-1", Username: "alice"}}
	router := newAuthRouter(verifier)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc123", verifier.token)
	assert.Contains(t, rec.Body.String(), "alice")
}
