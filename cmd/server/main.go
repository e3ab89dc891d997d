package main

import (
	"context"   // Shutdown deadline
	"errors"    // Server close detection
	"fmt"       // Error context
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"flight_favorites/internal/api"    // API handlers and routes
	"flight_favorites/internal/config" // Configuration
	"flight_favorites/internal/db"     // Database lifecycle

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	setupLogger(cfg)
	if err := run(cfg); err != nil {
		logrus.Fatal(err) // Deferred cleanup in run has already happened
	}
}

// run opens the stores, serves until a signal arrives and releases everything on return
func run(cfg *config.Config) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	// Connect to the database and sync the schema
	dialector, err := db.Dialector(cfg)
	if err != nil {
		return fmt.Errorf("invalid database config: %w", err)
	}
	gdb, err := db.Open(dialector, !cfg.IsProd)
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logrus.WithError(err).Error("failed to close DB")
		}
	}()
	if err := db.Migrate(gdb); err != nil {
		return err
	}

	// Setup Redis client; caching is off without REDIS_ADDR
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				logrus.WithError(err).Error("failed to close Redis client")
			}
		}()
		// Test Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, caching disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := api.NewRouter(cfg, gdb, redisClient)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, srv, 10*time.Second)
}

// serve runs srv until ctx is cancelled or the listener fails, then shuts it down
func serve(ctx context.Context, srv *http.Server, grace time.Duration) error {
	errCh := make(chan error, 1) // Listener failure
	go func() {
		logrus.Info("Server running on " + srv.Addr) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// setupLogger configures the standard logrus logger
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
