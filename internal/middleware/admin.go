package middleware

import (
	"context"  // Request context
	"net/http" // HTTP status codes

	"flight_favorites/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserLookup loads a user by id
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*domain.User, error)
}

// AdminOnlyMiddleware checks the user's role from the database on each request
func AdminOnlyMiddleware(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, exists := IdentityFrom(c) // Get identity from context
		// Check if identity exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := users.GetByID(c.Request.Context(), identity.UserID) // Fetch user from database
		if err != nil {
			// If user not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// Check if user role is admin; the token's role claim is not trusted here
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
