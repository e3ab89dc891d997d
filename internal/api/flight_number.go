package api

import (
	"net/http" // HTTP status codes

	"flight_favorites/internal/domain"     // Importing domain models
	"flight_favorites/internal/repository" // Entity store

	"github.com/gin-gonic/gin" // Gin web framework
)

// FlightNumberRequest carries flight number fields; absent fields are left unchanged on update
type FlightNumberRequest struct {
	AviaCompany *string `json:"aviaCompany"` // Unique airline code
	FlightID    *uint   `json:"flightId"`    // Owning flight
}

func (r FlightNumberRequest) apply(n *domain.FlightNumber) {
	if r.AviaCompany != nil {
		n.AviaCompany = *r.AviaCompany
	}
	if r.FlightID != nil {
		n.FlightID = *r.FlightID
	}
}

// ListFlightNumbersHandler returns all flight numbers
func ListFlightNumbersHandler(numbers repository.Repository[domain.FlightNumber]) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := numbers.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil { // Render an empty array, not null
			list = []domain.FlightNumber{}
		}
		c.JSON(http.StatusOK, list)
	}
}

// CreateFlightNumberHandler creates a flight number; aviaCompany must be unused
func CreateFlightNumberHandler(numbers repository.Repository[domain.FlightNumber]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FlightNumberRequest
		if err := c.ShouldBindJSON(&req); err != nil { // Bind JSON request to struct
			respondError(c, invalidRequest)
			return
		}
		var number domain.FlightNumber
		req.apply(&number)
		if err := numbers.Create(c.Request.Context(), &number); err != nil {
			respondError(c, err) // Validation, Conflict or missing reference
			return
		}
		c.JSON(http.StatusCreated, number)
	}
}

// UpdateFlightNumberHandler applies the supplied fields to a flight number
func UpdateFlightNumberHandler(numbers repository.Repository[domain.FlightNumber]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c) // Path id
		if err != nil {
			respondError(c, err)
			return
		}
		var req FlightNumberRequest
		if err := c.ShouldBindJSON(&req); err != nil { // Bind JSON request to struct
			respondError(c, invalidRequest)
			return
		}
		number, err := numbers.Update(c.Request.Context(), id, req.apply) // Partial update
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, number)
	}
}
