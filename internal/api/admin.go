package api

import (
	"context"  // Context for store and Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"flight_favorites/internal/domain" // Importing domain models
	"flight_favorites/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// UserPager returns a page of users and the total count
type UserPager interface {
	Page(ctx context.Context, page, size int) ([]domain.User, int64, error)
}

// UserPage is the admin user listing response
type UserPage struct {
	Users      []domain.User `json:"users"`       // List of users
	Page       int           `json:"page"`        // Current page
	PageSize   int           `json:"page_size"`   // Page size
	Total      int64         `json:"total"`       // Total number of users
	TotalPages int           `json:"total_pages"` // Total pages
	Cached     bool          `json:"cached"`      // Served from cache
}

// ListUsersHandler returns all users, paginated. Password hashes are never serialized.
func ListUsersHandler(users UserPager, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		// Create a cache key based on pagination parameters
		cacheKey := utils.UserPagePrefix + ":" + strconv.Itoa(page) + ":" + strconv.Itoa(pageSize)
		var cached UserPage
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached.Cached = true // Indicate response is from cache
			c.JSON(http.StatusOK, cached)
			return
		}
		list, total, err := users.Page(ctx, page, pageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.User{}
		}
		resp := UserPage{
			Users:      list,                                   // List of users
			Page:       page,                                   // Current page
			PageSize:   pageSize,                               // Page size
			Total:      total,                                  // Total number of users
			TotalPages: (int(total) + pageSize - 1) / pageSize, // Calculate total pages
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, ttl) // Cache the response for future requests
		c.JSON(http.StatusOK, resp)                       // Return the response
	}
}
