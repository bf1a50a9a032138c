package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/fabdash/access"
	logger "github.com/dev-mohitbeniwal/fabdash/logging"
	"github.com/dev-mohitbeniwal/fabdash/util"
)

const sessionCookieMaxAge = 30 * 24 * time.Hour

// Session assigns every browser a session id cookie and exposes it, along
// with the LASTUSER cookie, on the gin context.
func Session(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, sessionID, int(sessionCookieMaxAge.Seconds()), "/", "", false, true)
			logger.Debug("New session", zap.String("sessionID", sessionID))
		}
		c.Set(util.ContextKeySessionID, sessionID)

		if lastUser, err := c.Cookie(access.CookieName); err == nil {
			c.Set(util.ContextKeyLastUser, lastUser)
		}
		c.Next()
	}
}
