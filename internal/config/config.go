package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort       string        // Application port
	DBDriver      string        // Database driver: mysql, postgres or sqlite
	DBUser        string        // Database user
	DBPassword    string        // Database password
	DBHost        string        // Database host
	DBPort        string        // Database port
	DBName        string        // Database name
	DBPath        string        // SQLite database file
	JWTSecret     string        // JWT secret key
	JWTTTL        time.Duration // Token lifetime
	BcryptCost    int           // Password hashing work factor
	RedisAddr     string        // Redis server address, empty disables the cache
	RedisPass     string        // Redis password
	RedisDB       int           // Redis database number
	CacheTTL      time.Duration // Lifetime of cached reads
	CORSOrigins   []string      // Allowed CORS origins
	IsProd        bool          // Is production environment
	LogLevel      string        // Logrus level name
	AdminEmail    string        // Seeded admin email
	AdminPassword string        // Seeded admin password
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	bcryptCost, _ := strconv.Atoi(os.Getenv("BCRYPT_COST")) // Zero falls back to the default cost
	return &Config{
		AppPort:       getEnv("APP_PORT", "8080"),                    // Application port
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "mysql")), // Database driver
		DBUser:        os.Getenv("DB_USER"),                          // Database user
		DBPassword:    os.Getenv("DB_PASSWORD"),                      // Database password
		DBHost:        getEnv("DB_HOST", "localhost"),                // Database host
		DBPort:        os.Getenv("DB_PORT"),                          // Database port
		DBName:        os.Getenv("DB_NAME"),                          // Database name
		DBPath:        getEnv("DB_PATH", "flights.db"),               // SQLite file
		JWTSecret:     os.Getenv("JWT_SECRET"),                       // JWT secret key
		JWTTTL:        getDuration("JWT_TTL", 24*time.Hour),          // Token lifetime
		BcryptCost:    bcryptCost,                                    // Hashing cost
		RedisAddr:     os.Getenv("REDIS_ADDR"),                       // Redis server address
		RedisPass:     os.Getenv("REDIS_PASS"),                       // Redis password
		RedisDB:       redisDB,                                       // Redis database number
		CacheTTL:      getDuration("CACHE_TTL", 60*time.Second),      // Cache lifetime
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),        // Allowed origins
		IsProd:        os.Getenv("IS_PROD") == "true",                // Is production environment
		LogLevel:      getEnv("LOG_LEVEL", "info"),                   // Log level
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),                      // Seeded admin email
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),                   // Seeded admin password
	}
}

// getEnv returns the variable or fallback when unset
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getDuration parses a Go duration string, falling back on empty or invalid input
func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
