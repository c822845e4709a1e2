package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/foodorder/go-gin-services/internal/shared/errors"
)

const identityKey = "auth.identity"

// Middleware rejects requests without a valid bearer token. The verified
// identity is stored on the gin context for handlers that need the caller.
func Middleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("no token provided"))
			c.Abort()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("no token provided"))
			c.Abort()
			return
		}
		identity, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("invalid token"))
			c.Abort()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFromContext returns the identity attached by Middleware, if any.
func IdentityFromContext(c *gin.Context) (*Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok
}
