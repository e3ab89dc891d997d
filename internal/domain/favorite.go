package domain

import (
	"time"

	"flight_favorites/internal/apperror"
)

// Favorite links a user to a flight, together with the country it was saved for
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`             // Primary key
	Country   string    `gorm:"size:255;not null" json:"country"` // Country label
	UserID    uint      `gorm:"index;not null" json:"userId"`     // Foreign key to User
	FlightID  uint      `gorm:"index;not null" json:"flightId"`   // Foreign key to Flight
	CreatedAt time.Time `json:"createdAt"`                        // Creation time
	UpdatedAt time.Time `json:"updatedAt"`                        // Last update time
}

// Validate checks the required fields
func (f *Favorite) Validate() error {
	if err := requireFields(map[string]string{"country": f.Country}); err != nil {
		return err
	}
	switch {
	case f.UserID == 0:
		return apperror.New(apperror.Validation, "userId is required")
	case f.FlightID == 0:
		return apperror.New(apperror.Validation, "flightId is required")
	}
	return nil
}
