package main

import (
	"context" // Context for seeding
	"fmt"     // Error context

	"flight_favorites/internal/config" // Custom import path (Config)
	"flight_favorites/internal/db"     // Custom import path (Database)
	"flight_favorites/internal/utils"  // Password hashing

	"github.com/sirupsen/logrus" // Logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := run(cfg); err != nil {
		logrus.Fatal(err) // The connection is already closed here
	}
}

// run migrates the schema and seeds an admin account when credentials are configured
func run(cfg *config.Config) error {
	dialector, err := db.Dialector(cfg)
	if err != nil {
		return fmt.Errorf("invalid database config: %w", err)
	}
	gdb, err := db.Open(dialector, false)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logrus.WithError(err).Error("failed to close DB")
		}
	}()

	if err := db.Migrate(gdb); err != nil {
		return err
	}

	// Seed an admin account when credentials are configured
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	created, err := db.SeedAdmin(context.Background(), gdb, utils.NewHasher(cfg.BcryptCost), cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("admin seeding failed: %w", err)
	}
	if !created {
		logrus.Info("Admin user already present")
	}
	return nil
}
