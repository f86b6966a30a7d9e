package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hospital-management-api/internal/auth"
	"hospital-management-api/internal/model"
)

const identityKey = "identity"

// Identity is what a verified token attaches to the request context.
type Identity struct {
	ID   string
	Role string
}

func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// Authenticate verifies the bearer token and attaches the caller's
// identity. Missing token and invalid token are distinct failures:
// 401 for the former, 403 for the latter.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ""
		if h := c.GetHeader("Authorization"); h != "" {
			raw = strings.TrimPrefix(h, "Bearer ")
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication token required"})
			return
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(identityKey, Identity{ID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// RequireRole gates a route on the authenticated identity's role.
// Composes after Authenticate.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok || id.Role != role {
			msg := "Insufficient permissions"
			if role == model.RoleAdmin {
				msg = "Admin access required"
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": msg})
			return
		}
		c.Next()
	}
}
