package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/fabdash/access"
	logger "github.com/dev-mohitbeniwal/fabdash/logging"
	"github.com/dev-mohitbeniwal/fabdash/util"
)

// CredentialsFromContext builds the access credentials of the request.
func CredentialsFromContext(c *gin.Context) access.Credentials {
	return access.Credentials{
		LastUser: c.GetString(util.ContextKeyLastUser),
	}
}

// RequireAccess rejects restricted users on protected data routes.
func RequireAccess(checker access.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checker.IsProtected(c.Request.URL.Path) {
			c.Next()
			return
		}

		decision := checker.HasAccess(c.Request.Context(), CredentialsFromContext(c))
		if !decision.Granted {
			logger.Warn("Access denied",
				zap.String("subject", decision.Subject),
				zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Access denied",
				"message": "You do not have permission to access this resource",
			})
			c.Abort()
			return
		}

		c.Set(util.ContextKeySubject, decision.Subject)
		c.Next()
	}
}
