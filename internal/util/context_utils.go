package util

import (
	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/logger"
	"go.uber.org/zap"
)

// GetRequestIDFromContext gets the request ID set by logger.RequestIDMiddleware.
// It returns an empty string when the middleware did not run.
func GetRequestIDFromContext(c *gin.Context) string {
	val, ok := c.Get(logger.RequestIDKey)
	if !ok {
		return ""
	}

	requestID, ok := val.(string)
	if !ok {
		return ""
	}

	return requestID
}

// LoggerFromContext returns the global logger tagged with the request ID.
func LoggerFromContext(c *gin.Context) *zap.Logger {
	if requestID := GetRequestIDFromContext(c); requestID != "" {
		return logger.WithRequestID(requestID)
	}
	return logger.Get()
}
