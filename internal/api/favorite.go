package api

import (
	"net/http" // HTTP status codes

	"flight_favorites/internal/domain"     // Importing domain models
	"flight_favorites/internal/repository" // Entity store

	"github.com/gin-gonic/gin" // Gin web framework
)

// FavoriteRequest carries favorite fields; absent fields are left unchanged on update
type FavoriteRequest struct {
	Country  *string `json:"country"`  // Country of the favorite
	UserID   *uint   `json:"userId"`   // Owning user
	FlightID *uint   `json:"flightId"` // Favorited flight
}

func (r FavoriteRequest) apply(f *domain.Favorite) {
	if r.Country != nil {
		f.Country = *r.Country
	}
	if r.UserID != nil {
		f.UserID = *r.UserID
	}
	if r.FlightID != nil {
		f.FlightID = *r.FlightID
	}
}

// ListFavoritesHandler returns all favorites
func ListFavoritesHandler(favorites repository.Repository[domain.Favorite]) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := favorites.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil { // Render an empty array, not null
			list = []domain.Favorite{}
		}
		c.JSON(http.StatusOK, list)
	}
}

// CreateFavoriteHandler stores a favorite for an existing user and flight
func CreateFavoriteHandler(favorites repository.Repository[domain.Favorite]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FavoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil { // Bind JSON request to struct
			respondError(c, invalidRequest)
			return
		}
		var favorite domain.Favorite
		req.apply(&favorite)
		if err := favorites.Create(c.Request.Context(), &favorite); err != nil {
			respondError(c, err) // Validation, Conflict or missing reference
			return
		}
		c.JSON(http.StatusCreated, favorite)
	}
}

// UpdateFavoriteHandler applies the supplied fields to a favorite
func UpdateFavoriteHandler(favorites repository.Repository[domain.Favorite]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c) // Path id
		if err != nil {
			respondError(c, err)
			return
		}
		var req FavoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil { // Bind JSON request to struct
			respondError(c, invalidRequest)
			return
		}
		favorite, err := favorites.Update(c.Request.Context(), id, req.apply) // Partial update
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, favorite)
	}
}
