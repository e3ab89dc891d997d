package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"flight_favorites/internal/service" // Caller identity
	"flight_favorites/internal/utils"   // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUserID = "userID" // uint
	ContextEmail  = "email"  // string
	ContextRole   = "role"   // string
)

// TokenParser verifies bearer tokens
type TokenParser interface {
	Parse(token string) (*utils.Claims, error)
}

// JWTAuthMiddleware validates JWT tokens and extracts user information
func JWTAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")) // Extract the token string
		claims, err := tokens.Parse(tokenStr)                                    // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(ContextUserID, claims.UserID) // Store userID in context
		c.Set(ContextEmail, claims.Email)   // Store email in context
		c.Set(ContextRole, claims.Role)     // Store role in context
		c.Next()                            // Proceed to the next handler
	}
}

// IdentityFrom returns the identity stored by JWTAuthMiddleware
func IdentityFrom(c *gin.Context) (service.Identity, bool) {
	userID, ok := c.Get(ContextUserID)
	if !ok {
		return service.Identity{}, false
	}
	id, ok := userID.(uint)
	if !ok {
		return service.Identity{}, false
	}
	return service.Identity{UserID: id, Email: c.GetString(ContextEmail), Role: c.GetString(ContextRole)}, true
}
