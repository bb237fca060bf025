package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crimewatch/api/internal/admin"
)

// AdminTokenHeader carries the bearer token issued by the admin login
// endpoint.
const AdminTokenHeader = "X-Admin-Token"

// RequireAdmin rejects requests whose X-Admin-Token header is not an active
// admin session. It does not distinguish never-issued from logged-out or
// expired tokens.
func RequireAdmin(sessions *admin.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AdminTokenHeader)
		if !sessions.IsValid(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin token"})
			return
		}
		c.Next()
	}
}
