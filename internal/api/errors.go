package api

import (
	"fmt"      // Stack formatting
	"net/http" // HTTP status codes
	"strconv"  // Path id parsing

	"flight_favorites/internal/apperror"   // Error kinds
	"flight_favorites/internal/middleware" // Request scoped logger

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// statusFor maps an error kind to its HTTP status
func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.BadRequest, apperror.Validation:
		return http.StatusBadRequest
	case apperror.Conflict:
		return http.StatusConflict
	case apperror.NotFound:
		return http.StatusNotFound
	case apperror.Unauthorized:
		return http.StatusUnauthorized
	case apperror.Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": message}. Internal errors are logged
// with their cause and the client only sees a generic message.
func respondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.Internal {
		middleware.Logger(c).WithFields(logrus.Fields{
			"error": err.Error(),
			"stack": fmt.Sprintf("%+v", err),
		}).Error("Internal error")
	}
	c.AbortWithStatusJSON(statusFor(kind), gin.H{"error": apperror.MessageOf(err)})
}

// parseID reads the :id path parameter
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.New(apperror.BadRequest, "Invalid id")
	}
	return uint(id), nil
}

// invalidRequest is returned when the body is not valid JSON for the endpoint
var invalidRequest = apperror.New(apperror.BadRequest, "Invalid request")
