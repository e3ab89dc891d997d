package api

import (
	"net/http" // HTTP status codes

	"flight_favorites/internal/middleware" // Request scoped logger

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// HealthHandler pings the database and, when configured, Redis.
// Failures are logged; the client only sees the status.
func HealthHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sqlDB, err := db.DB() // Underlying connection pool
		if err == nil {
			err = sqlDB.PingContext(ctx) // Check database connectivity
		}
		if err != nil {
			middleware.Logger(c).WithError(err).Error("Database health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil { // Check Redis connectivity
				middleware.Logger(c).WithError(err).Error("Redis health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
