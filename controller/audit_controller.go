package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/fabdash/audit"
	fab_errors "github.com/dev-mohitbeniwal/fabdash/errors"
	"github.com/dev-mohitbeniwal/fabdash/util"
	helper_util "github.com/dev-mohitbeniwal/fabdash/util/helper"
)

type AuditController struct {
	auditService audit.Service
	now          func() time.Time
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
		now:          time.Now,
	}
}

// RegisterRoutes registers the API routes
func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit/navigation", ac.GetNavigationLogs)
}

// GetNavigationLogs lists guard decisions in a time window, optionally
// narrowed to one session or facility.
func (ac *AuditController) GetNavigationLogs(c *gin.Context) {
	from, to, err := helper_util.GetTimeRangeParams(c, ac.now())
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid time range", fab_errors.ErrInvalidParameters)
		return
	}

	logs, err := ac.auditService.QueryLogs(c.Request.Context(), from, to, c.Query("session_id"), c.Query("facility"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query navigation logs", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from": from,
		"to":   to,
		"logs": logs,
	})
}
