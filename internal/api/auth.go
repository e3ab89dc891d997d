package api

import (
	"context"  // Context for cache invalidation
	"net/http" // HTTP status codes

	"flight_favorites/internal/apperror"   // Error kinds
	"flight_favorites/internal/middleware" // Identity from the JWT middleware
	"flight_favorites/internal/service"    // Authentication flows
	"flight_favorites/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Request struct for registration and login.
// Presence is checked by the service so both flows report the same message.
type CredentialsRequest struct {
	Email    string `json:"email"`    // User email
	Password string `json:"password"` // Plain password
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// RegisterHandler creates a user and returns a token for it
func RegisterHandler(auth *service.AuthService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, invalidRequest) // If binding fails, return bad request
			return
		}
		token, err := auth.Register(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err) // BadRequest, Conflict or Internal
			return
		}
		// The admin user listing is cached per page
		if err := utils.DeletePrefix(context.WithoutCancel(c.Request.Context()), rdb, utils.UserPagePrefix); err != nil {
			middleware.Logger(c).WithError(err).Warn("Failed to invalidate user cache")
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token}) // Return the token in the response
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, invalidRequest)
			return
		}
		token, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err) // NotFound, Unauthorized or Internal
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// CheckHandler re-issues a token for the caller authenticated by the JWT middleware
func CheckHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, apperror.New(apperror.Unauthorized, "Unauthorized"))
			return
		}
		token, err := auth.Refresh(identity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}
