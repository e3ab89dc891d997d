package db

import (
	"context" // Context for seeding queries

	"flight_favorites/internal/domain" // Importing domain models
	"flight_favorites/internal/utils"  // Password hashing

	"github.com/pkg/errors"      // Error wrapping
	"github.com/sirupsen/logrus" // Logging
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes.
	// Parents first so the foreign keys of FlightNumber and Favorite resolve.
	if err := db.AutoMigrate(&domain.User{}, &domain.Flight{}, &domain.FlightNumber{}, &domain.Favorite{}); err != nil {
		return errors.Wrap(err, "migration failed")
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

// SeedAdmin creates an admin account when none exists yet.
// It returns false when an admin was already present.
func SeedAdmin(ctx context.Context, db *gorm.DB, hasher *utils.Hasher, email, password string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count admins")
	}
	if count > 0 {
		return false, nil // Admin already present
	}
	if len(password) > domain.MaxPasswordBytes {
		return false, errors.Errorf("admin password must not exceed %d bytes", domain.MaxPasswordBytes)
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return false, errors.Wrap(err, "hash admin password")
	}
	admin := domain.User{Email: email, Password: hash, Role: domain.RoleAdmin}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, errors.Wrap(err, "create admin")
	}
	logrus.WithFields(logrus.Fields{"user_id": admin.ID, "email": admin.Email}).Info("Admin user created")
	return true, nil
}
