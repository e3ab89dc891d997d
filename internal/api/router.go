package api

import (
	"slices" // Origin list inspection

	"flight_favorites/internal/config"     // Application configuration
	"flight_favorites/internal/middleware" // Custom middleware
	"flight_favorites/internal/repository" // Entity and credential stores
	"flight_favorites/internal/service"    // Authentication flows
	"flight_favorites/internal/utils"      // Hashing and tokens

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires stores, services and handlers onto a gin engine.
// rdb may be nil, which disables caching.
func NewRouter(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, error) {
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL) // Token issuer/verifier
	users := repository.NewUserRepository(db)                  // Credential store
	flights := repository.NewFlightRepository(db)              // Flight store
	numbers := repository.NewFlightNumberRepository(db)        // Flight number store
	favorites := repository.NewFavoriteRepository(db)          // Favorite store
	auth := service.NewAuthService(users, utils.NewHasher(cfg.BcryptCost), tokens)

	r := gin.New() // Gin router instance
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, err
	}
	r.Use(middleware.RequestIDMiddleware(), middleware.RequestLogger(), middleware.Recovery(), corsMiddleware(cfg.CORSOrigins))

	r.GET("/health", HealthHandler(db, rdb)) // Liveness and store connectivity

	api := r.Group("/api")

	// User routes
	user := api.Group("/user")
	user.POST("/registration", RegisterHandler(auth, rdb))                      // Registration endpoint
	user.POST("/login", LoginHandler(auth))                                     // Login endpoint
	user.GET("/auth", middleware.JWTAuthMiddleware(tokens), CheckHandler(auth)) // Token refresh endpoint
	user.GET("", middleware.JWTAuthMiddleware(tokens), middleware.AdminOnlyMiddleware(users),
		ListUsersHandler(users, rdb, cfg.CacheTTL)) // Admin user listing

	// Flight routes
	flight := api.Group("/flight")
	flight.GET("", ListFlightsHandler(flights, rdb, cfg.CacheTTL))   // List flights
	flight.POST("", CreateFlightHandler(flights, rdb))               // Create flight
	flight.GET("/:id", GetFlightHandler(flights, rdb, cfg.CacheTTL)) // Get flight
	flight.PUT("/:id", UpdateFlightHandler(flights, rdb))            // Update flight
	flight.DELETE("/:id", DeleteFlightHandler(flights, rdb))         // Delete flight

	// Flight number routes
	flightNumber := api.Group("/flightnumber")
	flightNumber.GET("", ListFlightNumbersHandler(numbers))
	flightNumber.POST("", CreateFlightNumberHandler(numbers))
	flightNumber.PUT("/:id", UpdateFlightNumberHandler(numbers))

	// Favorite routes
	favorite := api.Group("/favorite")
	favorite.GET("", ListFavoritesHandler(favorites))
	favorite.POST("", CreateFavoriteHandler(favorites))
	favorite.PUT("/:id", UpdateFavoriteHandler(favorites))

	return r, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middleware.HeaderXRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderXRequestID},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
