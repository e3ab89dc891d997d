package domain

import "time"

// Flight Model
type Flight struct {
	ID               uint           `gorm:"primaryKey" json:"id"`                                   // Primary key
	AirportArrival   string         `gorm:"size:255;not null" json:"airportArrival"`                // Arrival airport
	AirportDeparture string         `gorm:"size:255;not null" json:"airportDeparture"`              // Departure airport
	AviaCompany      string         `gorm:"size:255;not null" json:"aviaCompany"`                   // Operating airline
	FlightNumbers    []FlightNumber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // One-to-many relationship with FlightNumber
	Favorites        []Favorite     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // One-to-many relationship with Favorite
	CreatedAt        time.Time      `json:"createdAt"`                                              // Creation time
	UpdatedAt        time.Time      `json:"updatedAt"`                                              // Last update time
}

// Validate checks the required fields
func (f *Flight) Validate() error {
	return requireFields(map[string]string{
		"airportArrival":   f.AirportArrival,
		"airportDeparture": f.AirportDeparture,
		"aviaCompany":      f.AviaCompany,
	})
}
