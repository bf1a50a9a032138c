// util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/fabdash/logging"
)

const (
	ContextKeySessionID = "sessionID"
	ContextKeyLastUser  = "lastUser"
	ContextKeySubject   = "requestingUser"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("sessionID", c.GetString(ContextKeySessionID)))
	c.JSON(code, gin.H{"error": message})
}

// GetSessionIDFromContext returns the session id set by the session middleware.
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	sessionID := c.GetString(ContextKeySessionID)
	return sessionID, sessionID != ""
}
