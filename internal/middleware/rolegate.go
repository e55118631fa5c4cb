package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propfinder/listing-api/internal/models"
)

// LoginPath is where anonymous callers of gated views are sent.
const LoginPath = "/login"

// RoleGate restricts a view to the given roles. An unauthenticated caller is
// redirected to the login view; a caller holding a different role is bounced
// to their role's default view instead of receiving an error.
func RoleGate(allowed ...models.UserRole) gin.HandlerFunc {
	allowedRoles := make(map[models.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedRoles[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}

		if _, ok := allowedRoles[claims.Role]; ok {
			c.Next()
			return
		}

		c.Redirect(http.StatusSeeOther, claims.Role.HomePath())
		c.Abort()
	}
}
