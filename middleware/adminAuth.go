package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates admin-only routes. It must run after JWTAuthMiddleware,
// which resolves the caller's role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isAdmin") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
