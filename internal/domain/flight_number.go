package domain

import (
	"time"

	"flight_favorites/internal/apperror"
)

// FlightNumber Model
type FlightNumber struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                             // Primary key
	AviaCompany string    `gorm:"size:255;uniqueIndex;not null" json:"aviaCompany"` // Globally unique value
	FlightID    uint      `gorm:"index;not null" json:"flightId"`                   // Foreign key to Flight
	CreatedAt   time.Time `json:"createdAt"`                                        // Creation time
	UpdatedAt   time.Time `json:"updatedAt"`                                        // Last update time
}

// Validate checks the required fields
func (n *FlightNumber) Validate() error {
	if err := requireFields(map[string]string{"aviaCompany": n.AviaCompany}); err != nil {
		return err
	}
	if n.FlightID == 0 {
		return apperror.New(apperror.Validation, "flightId is required")
	}
	return nil
}
