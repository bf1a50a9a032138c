package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	fab_errors "github.com/dev-mohitbeniwal/fabdash/errors"
	"github.com/dev-mohitbeniwal/fabdash/selection"
	"github.com/dev-mohitbeniwal/fabdash/util"
)

const dataUnavailable = "data unavailable, retrying"

func sessionState(c *gin.Context, sessions SessionRegistry) (*selection.State, bool) {
	sessionID, ok := util.GetSessionIDFromContext(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Missing session", fab_errors.ErrUnauthorized)
		return nil, false
	}
	return sessions.Get(c.Request.Context(), sessionID), true
}

func respondFetchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, fab_errors.ErrNoFacilitySelected):
		util.RespondWithError(c, http.StatusBadRequest, "No facility selected", err)
	case errors.Is(err, fab_errors.ErrNoToolSelected):
		util.RespondWithError(c, http.StatusBadRequest, "No tool selected", err)
	case errors.Is(err, fab_errors.ErrFetchFailed),
		errors.Is(err, fab_errors.ErrUpstream),
		errors.Is(err, fab_errors.ErrCacheClosed),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		util.RespondWithError(c, http.StatusServiceUnavailable, dataUnavailable, err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
