package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/fabdash/model"
)

type DirectoryController struct {
	directory DirectoryService
	fallback  model.Fallback
}

type directoryResponse struct {
	Facilities   []string                `json:"facilities"`
	Directory    model.FacilityDirectory `json:"directory"`
	Loading      bool                    `json:"loading"`
	Loaded       bool                    `json:"loaded"`
	UsedFallback bool                    `json:"used_fallback"`
}

func NewDirectoryController(directory DirectoryService, fallback model.Fallback) *DirectoryController {
	return &DirectoryController{
		directory: directory,
		fallback:  fallback,
	}
}

// RegisterRoutes registers the API routes
func (dc *DirectoryController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/facilities", dc.ListFacilities)
	r.POST("/facilities/refresh", dc.RefreshFacilities)
}

// ListFacilities returns the directory selections are validated against.
func (dc *DirectoryController) ListFacilities(c *gin.Context) {
	c.JSON(http.StatusOK, dc.response(dc.directory.Snapshot()))
}

func (dc *DirectoryController) RefreshFacilities(c *gin.Context) {
	if _, err := dc.directory.Refresh(c.Request.Context()); err != nil {
		respondFetchError(c, err)
		return
	}
	c.JSON(http.StatusOK, dc.response(dc.directory.Snapshot()))
}

func (dc *DirectoryController) response(snapshot model.DirectorySnapshot) directoryResponse {
	dir, usedFallback := model.Effective(snapshot, dc.fallback)
	return directoryResponse{
		Facilities:   dir.Facilities(),
		Directory:    dir,
		Loading:      snapshot.Loading,
		Loaded:       snapshot.Loaded,
		UsedFallback: usedFallback,
	}
}
