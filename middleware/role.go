package middleware

import (
	"net/http"

	"github.com/FeyzullahTeklik/esantiyem-backend/models"

	"github.com/gin-gonic/gin"
)

// RequireRole allows only authenticated users with one of the given roles.
// It must run after JWTAuthMiddleware.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		for _, allowed := range roles {
			if role == string(allowed) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

// AdminOnly restricts a route to admin accounts.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}
