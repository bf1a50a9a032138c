// controller/navigation_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	fab_errors "github.com/dev-mohitbeniwal/fabdash/errors"
	"github.com/dev-mohitbeniwal/fabdash/guard"
	"github.com/dev-mohitbeniwal/fabdash/middleware"
	"github.com/dev-mohitbeniwal/fabdash/util"
)

type NavigationController struct {
	navigator Navigator
	sessions  SessionRegistry
}

func NewNavigationController(navigator Navigator, sessions SessionRegistry) *NavigationController {
	return &NavigationController{
		navigator: navigator,
		sessions:  sessions,
	}
}

// RegisterRoutes registers the API routes
func (nc *NavigationController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/navigate", nc.Navigate)
	r.GET("/routes", nc.ListRoutes)
}

// Navigate runs the route guard for the path the browser is about to open.
func (nc *NavigationController) Navigate(c *gin.Context) {
	path := c.Query("path")
	if path == "" || path[0] != '/' {
		util.RespondWithError(c, http.StatusBadRequest, "path must be an absolute path", fab_errors.ErrInvalidParameters)
		return
	}

	state, ok := sessionState(c, nc.sessions)
	if !ok {
		return
	}

	outcome := nc.navigator.Resolve(c.Request.Context(), guard.Navigation{
		Path:        path,
		SessionID:   state.SessionID(),
		Credentials: middleware.CredentialsFromContext(c),
	}, state)

	c.JSON(http.StatusOK, outcome)
}

func (nc *NavigationController) ListRoutes(c *gin.Context) {
	c.JSON(http.StatusOK, guard.Routes())
}
