package repository

import (
	"context"

	"flight_favorites/internal/domain"

	"gorm.io/gorm"
)

// FlightRepository stores flights. Deleting a flight removes its flight numbers and favorites.
type FlightRepository struct {
	*gormRepository[domain.Flight]
}

// NewFlightRepository returns a flight store over db
func NewFlightRepository(db *gorm.DB) *FlightRepository {
	return &FlightRepository{newGormRepository[domain.Flight](db, "Flight", "flight already exists", nil)}
}

// Delete removes the flight and its dependents in one transaction.
// The OnDelete:CASCADE constraints cover the same rows; deleting explicitly
// keeps the behaviour when constraints are not enforced (SQLite without foreign_keys).
func (r *FlightRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var flight domain.Flight
		if err := tx.First(&flight, id).Error; err != nil { // Flight must exist
			return err
		}
		if err := tx.Where("flight_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil { // Drop favorites
			return err
		}
		if err := tx.Where("flight_id = ?", id).Delete(&domain.FlightNumber{}).Error; err != nil { // Drop flight numbers
			return err
		}
		return tx.Delete(&flight).Error // Drop the flight itself
	})
	if err != nil {
		return r.classify(err, "delete")
	}
	return nil
}

var _ Repository[domain.Flight] = (*FlightRepository)(nil)

// FlightNumberRepository stores flight numbers; the referenced flight must exist.
type FlightNumberRepository struct {
	*gormRepository[domain.FlightNumber]
}

// NewFlightNumberRepository returns a flight number store over db
func NewFlightNumberRepository(db *gorm.DB) *FlightNumberRepository {
	return &FlightNumberRepository{newGormRepository[domain.FlightNumber](db,
		"Flight number", "flight number with this aviaCompany already exists",
		func(tx *gorm.DB, fn *domain.FlightNumber) error {
			return exists(tx, &domain.Flight{}, fn.FlightID, "flight does not exist")
		})}
}

// FavoriteRepository stores favorites; the referenced user and flight must exist.
type FavoriteRepository struct {
	*gormRepository[domain.Favorite]
}

// NewFavoriteRepository returns a favorite store over db
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{newGormRepository[domain.Favorite](db,
		"Favorite", "favorite already exists",
		func(tx *gorm.DB, fav *domain.Favorite) error {
			if err := exists(tx, &domain.User{}, fav.UserID, "user does not exist"); err != nil { // Owner must exist
				return err
			}
			return exists(tx, &domain.Flight{}, fav.FlightID, "flight does not exist")
		})}
}

var (
	_ Repository[domain.FlightNumber] = (*FlightNumberRepository)(nil)
	_ Repository[domain.Favorite]     = (*FavoriteRepository)(nil)
)
