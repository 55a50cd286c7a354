package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sweetshop/api/internal/adapters/http/handlers"
	"github.com/sweetshop/api/internal/core/domain"
	"github.com/sweetshop/api/internal/core/port"
	"github.com/sweetshop/api/internal/core/serviceerrors"
)

const identityContextKey = "identity"

// Authenticate verifies the bearer token and attaches the caller identity to
// the request context.
func Authenticate(tokens port.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			handlers.HandleError(c, serviceerrors.NewUnauthorizedError("missing bearer token"))
			c.Abort()
			return
		}

		identity, err := tokens.Verify(token)
		if err != nil {
			handlers.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(identityContextKey, *identity)
		c.Next()
	}
}

// AdminOnly rejects callers without the ADMIN role. It must run after
// Authenticate.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			handlers.HandleError(c, serviceerrors.NewUnauthorizedError("missing bearer token"))
			c.Abort()
			return
		}
		if !identity.IsAdmin() {
			handlers.HandleError(c, serviceerrors.NewForbiddenError("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := value.(domain.Identity)
	return identity, ok
}
