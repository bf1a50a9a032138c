// controller/selection_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	fab_errors "github.com/dev-mohitbeniwal/fabdash/errors"
	"github.com/dev-mohitbeniwal/fabdash/util"
)

type SelectionController struct {
	sessions       SessionRegistry
	validationUtil *util.ValidationUtil
}

type setFacilityRequest struct {
	Facility string `json:"facility" binding:"required"`
}

type setToolRequest struct {
	Tool string `json:"tool" binding:"required"`
}

func NewSelectionController(sessions SessionRegistry, validationUtil *util.ValidationUtil) *SelectionController {
	return &SelectionController{
		sessions:       sessions,
		validationUtil: validationUtil,
	}
}

// RegisterRoutes registers the API routes
func (sc *SelectionController) RegisterRoutes(r *gin.RouterGroup) {
	sel := r.Group("/selection")
	{
		sel.GET("", sc.GetSelection)
		sel.PUT("/facility", sc.SetFacility)
		sel.PUT("/tool", sc.SetTool)
		sel.DELETE("", sc.ClearSelection)
		sel.GET("/tools", sc.GetAvailableTools)
	}
}

func (sc *SelectionController) GetSelection(c *gin.Context) {
	state, ok := sessionState(c, sc.sessions)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, state.View())
}

func (sc *SelectionController) SetFacility(c *gin.Context) {
	var req setFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid selection data", fab_errors.ErrInvalidSelection)
		return
	}
	if err := sc.validationUtil.ValidateIdentifier("facility", req.Facility); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid selection data", err)
		return
	}

	state, ok := sessionState(c, sc.sessions)
	if !ok {
		return
	}
	if _, err := state.SetFacility(c.Request.Context(), req.Facility); err != nil {
		if errors.Is(err, fab_errors.ErrFacilityNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Facility not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to set facility", err)
		}
		return
	}

	c.JSON(http.StatusOK, state.View())
}

func (sc *SelectionController) SetTool(c *gin.Context) {
	var req setToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid selection data", fab_errors.ErrInvalidSelection)
		return
	}
	if err := sc.validationUtil.ValidateIdentifier("tool", req.Tool); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid selection data", err)
		return
	}

	state, ok := sessionState(c, sc.sessions)
	if !ok {
		return
	}
	if _, err := state.SetTool(c.Request.Context(), req.Tool); err != nil {
		switch {
		case errors.Is(err, fab_errors.ErrNoFacilitySelected):
			util.RespondWithError(c, http.StatusConflict, "Select a facility first", err)
		case errors.Is(err, fab_errors.ErrToolNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Tool not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to set tool", err)
		}
		return
	}

	c.JSON(http.StatusOK, state.View())
}

func (sc *SelectionController) ClearSelection(c *gin.Context) {
	state, ok := sessionState(c, sc.sessions)
	if !ok {
		return
	}
	state.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (sc *SelectionController) GetAvailableTools(c *gin.Context) {
	state, ok := sessionState(c, sc.sessions)
	if !ok {
		return
	}
	view := state.View()
	c.JSON(http.StatusOK, gin.H{
		"facility": view.Selection.Facility,
		"tools":    view.AvailableTools,
	})
}
