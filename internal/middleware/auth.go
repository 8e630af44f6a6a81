package middleware

import (
	"net/http"
	"strings"

	"cleanic/internal/models"
	"cleanic/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// Identity is the decoded principal attached to authenticated requests.
type Identity struct {
	ID    int64
	Login string
	Role  models.Role
}

// AuthMiddleware validates the bearer token on protected routes and
// stores the decoded identity in the request context. Every
// verification failure answers with the same 401 body; callers cannot
// distinguish expired from malformed from wrong-signature tokens.
func AuthMiddleware(tokens *service.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			logger.Warn("Token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "access denied: invalid or expired token"})
			return
		}

		id, err := service.SubjectID(claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "access denied: invalid or expired token"})
			return
		}

		c.Set(identityKey, Identity{ID: id, Login: claims.Login, Role: claims.Role})
		c.Next()
	}
}

// IdentityFrom extracts the authenticated identity set by AuthMiddleware.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	ident, ok := v.(Identity)
	return ident, ok
}
