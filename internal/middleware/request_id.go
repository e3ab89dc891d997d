package middleware

import (
	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request id generation
	"github.com/sirupsen/logrus" // Logging
)

// HeaderXRequestID carries the request id in both directions
const HeaderXRequestID = "X-Request-ID"

const (
	contextRequestID = "requestID"
	contextLogger    = "logger"
)

// RequestIDMiddleware reuses the client's X-Request-ID or generates one,
// echoes it in the response and stores a request scoped logger.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(contextRequestID, requestID)
		c.Set(contextLogger, logrus.WithField("request_id", requestID))
		c.Header(HeaderXRequestID, requestID)
		c.Next()
	}
}

// Logger returns the request scoped logger, or the standard logger outside a request
func Logger(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(contextLogger); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
