package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mineral-licensing-api/internal/auth"
	appErrors "github.com/noah-isme/mineral-licensing-api/pkg/errors"
	"github.com/noah-isme/mineral-licensing-api/pkg/logger"
	"github.com/noah-isme/mineral-licensing-api/pkg/response"
)

// ContextIdentityKey is the gin context key storing the resolved *auth.AuthContext.
const ContextIdentityKey = "identity"

// RequireIdentity protects a route group. Requests without an identity are
// rejected with 401 and message before any handler runs.
func RequireIdentity(authn auth.Authenticator, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := authn.Authenticate(c.Request)
		if err != nil || identity == nil || identity.MinerID == "" {
			response.Abort(c, appErrors.Clone(appErrors.ErrUnauthorized, message))
			return
		}

		c.Set(ContextIdentityKey, identity)
		c.Set(logger.MinerIDKey, identity.MinerID)
		c.Next()
	}
}

// Identity returns the AuthContext stored by RequireIdentity.
func Identity(c *gin.Context) (*auth.AuthContext, bool) {
	value, exists := c.Get(ContextIdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*auth.AuthContext)
	return identity, ok && identity != nil
}
