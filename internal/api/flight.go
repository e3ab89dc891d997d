package api

import (
	"context"  // Context for cache operations
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"flight_favorites/internal/domain"     // Importing domain models
	"flight_favorites/internal/middleware" // Request scoped logger
	"flight_favorites/internal/repository" // Entity store
	"flight_favorites/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// FlightRequest carries flight fields; absent fields are left unchanged on update
type FlightRequest struct {
	AirportArrival   *string `json:"airportArrival"`   // Arrival airport
	AirportDeparture *string `json:"airportDeparture"` // Departure airport
	AviaCompany      *string `json:"aviaCompany"`      // Airline
}

func (r FlightRequest) apply(f *domain.Flight) {
	if r.AirportArrival != nil {
		f.AirportArrival = *r.AirportArrival
	}
	if r.AirportDeparture != nil {
		f.AirportDeparture = *r.AirportDeparture
	}
	if r.AviaCompany != nil {
		f.AviaCompany = *r.AviaCompany
	}
}

// ListFlightsHandler returns all flights, served from Redis when cached
func ListFlightsHandler(flights repository.Repository[domain.Flight], rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached []domain.Flight // Try to get cached response
		if found, err := utils.GetCache(ctx, rdb, utils.FlightListKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		list, err := flights.List(ctx) // Fetch from the store
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.Flight{} // Render an empty array, not null
		}
		_ = utils.SetCache(ctx, rdb, utils.FlightListKey, list, ttl) // Cache the response for future requests
		c.JSON(http.StatusOK, list)
	}
}

// CreateFlightHandler creates a flight
func CreateFlightHandler(flights repository.Repository[domain.Flight], rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FlightRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, invalidRequest)
			return
		}
		var flight domain.Flight
		req.apply(&flight)
		if err := flights.Create(c.Request.Context(), &flight); err != nil {
			respondError(c, err) // Validation or Internal
			return
		}
		invalidateFlights(c, rdb) // Invalidate the cached list
		c.JSON(http.StatusCreated, flight)
	}
}

// GetFlightHandler returns one flight by id
func GetFlightHandler(flights repository.Repository[domain.Flight], rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		ctx := c.Request.Context()
		cacheKey := utils.FlightKey(id) // Cache key for the flight
		var flight domain.Flight
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &flight); err == nil && found {
			c.JSON(http.StatusOK, flight) // Return cached flight
			return
		}
		stored, err := flights.GetByID(ctx, id)
		if err != nil {
			respondError(c, err) // Flight not found
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, stored, ttl)
		c.JSON(http.StatusOK, stored)
	}
}

// UpdateFlightHandler applies the supplied fields to a flight
func UpdateFlightHandler(flights repository.Repository[domain.Flight], rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var req FlightRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, invalidRequest)
			return
		}
		flight, err := flights.Update(c.Request.Context(), id, req.apply)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateFlights(c, rdb, id)
		c.JSON(http.StatusOK, flight)
	}
}

// DeleteFlightHandler deletes a flight together with its flight numbers and favorites
func DeleteFlightHandler(flights repository.Repository[domain.Flight], rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := flights.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		invalidateFlights(c, rdb, id)
		// Log the deletion with context
		middleware.Logger(c).WithFields(logrus.Fields{
			"flight_id": id,                              // Flight ID
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Flight deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Flight deleted successfully"})
	}
}

// invalidateFlights drops the cached list and the given flights
func invalidateFlights(c *gin.Context, rdb *redis.Client, ids ...uint) {
	keys := []string{utils.FlightListKey}
	for _, id := range ids {
		keys = append(keys, utils.FlightKey(id))
	}
	if err := utils.DeleteCache(context.WithoutCancel(c.Request.Context()), rdb, keys...); err != nil {
		middleware.Logger(c).WithError(err).Warn("Failed to invalidate flight cache")
	}
}
