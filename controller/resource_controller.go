// controller/resource_controller.go
package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	fab_errors "github.com/dev-mohitbeniwal/fabdash/errors"
	logger "github.com/dev-mohitbeniwal/fabdash/logging"
	"github.com/dev-mohitbeniwal/fabdash/model"
	"github.com/dev-mohitbeniwal/fabdash/service"
	"github.com/dev-mohitbeniwal/fabdash/util"
)

// ResourceController serves the cached upstream resources of a facility.
type ResourceController struct {
	equipment   service.IEquipmentService
	recipes     service.IRecipeService
	devices     service.IDeviceStatisticsService
	health      service.IHealthService
	fabrication service.IFabricationService
	directory   DirectoryService
	fallback    model.Fallback
}

type facilityFetch func(ctx context.Context, facility string) (json.RawMessage, error)

func NewResourceController(
	equipment service.IEquipmentService,
	recipes service.IRecipeService,
	devices service.IDeviceStatisticsService,
	health service.IHealthService,
	fabrication service.IFabricationService,
	directory DirectoryService,
	fallback model.Fallback,
) *ResourceController {
	return &ResourceController{
		equipment:   equipment,
		recipes:     recipes,
		devices:     devices,
		health:      health,
		fabrication: fabrication,
		directory:   directory,
		fallback:    fallback,
	}
}

// RegisterRoutes registers the API routes
func (rc *ResourceController) RegisterRoutes(r *gin.RouterGroup) {
	fac := r.Group("/facilities/:fac_id")
	{
		fac.GET("/equipment-status/current-status", rc.facilityResource("current-status", rc.equipment.CurrentStatus))
		fac.GET("/equipment-status/not-available", rc.facilityResource("not-available", rc.equipment.NotAvailable))
		fac.GET("/equipment-status/storage", rc.facilityResource("storage", rc.equipment.Storage))
		fac.GET("/device-statistics/options", rc.facilityResource("device-options", rc.devices.Options))
		fac.GET("/device-statistics/data", rc.facilityResource("device-data", rc.devices.Data))
		fac.GET("/recipes/:tool", rc.GetRecipes)
	}
	r.GET("/tool-fab-mapping", rc.GetToolFabMapping)
	r.GET("/health", rc.GetHealth)
	r.GET("/jobs/status", rc.GetJobsStatus)
}

func (rc *ResourceController) facilityResource(resource string, fetch facilityFetch) gin.HandlerFunc {
	return func(c *gin.Context) {
		facility, ok := rc.resolveFacility(c)
		if !ok {
			return
		}

		payload, err := fetch(c.Request.Context(), facility)
		if err != nil {
			logger.Warn("Resource fetch failed",
				zap.String("resource", resource),
				zap.String("facility", facility),
				zap.Error(err))
			respondFetchError(c, err)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
	}
}

// GetRecipes returns the recipe list of a facility tool.
func (rc *ResourceController) GetRecipes(c *gin.Context) {
	facility, ok := rc.resolveFacility(c)
	if !ok {
		return
	}

	dir, _ := model.Effective(rc.directory.Snapshot(), rc.fallback)
	tools := model.ToolsFor(dir, facility, rc.fallback.Tools)
	tool, ok := model.MatchTool(tools, c.Param("tool"))
	if !ok {
		util.RespondWithError(c, http.StatusNotFound, "Tool not found", fab_errors.ErrToolNotFound)
		return
	}

	payload, err := rc.recipes.RecipeList(c.Request.Context(), facility, tool)
	if err != nil {
		respondFetchError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (rc *ResourceController) GetToolFabMapping(c *gin.Context) {
	mapping, err := rc.fabrication.ToolFabMapping(c.Request.Context())
	if err != nil {
		respondFetchError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapping)
}

func (rc *ResourceController) GetHealth(c *gin.Context) {
	payload, err := rc.health.Health(c.Request.Context())
	if err != nil {
		respondFetchError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (rc *ResourceController) GetJobsStatus(c *gin.Context) {
	payload, err := rc.health.JobsStatus(c.Request.Context())
	if err != nil {
		respondFetchError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// resolveFacility maps the fac_id path parameter to the canonical facility id.
func (rc *ResourceController) resolveFacility(c *gin.Context) (string, bool) {
	dir, _ := model.Effective(rc.directory.Snapshot(), rc.fallback)
	facility, ok := dir.Canonical(c.Param("fac_id"))
	if !ok {
		util.RespondWithError(c, http.StatusNotFound, "Facility not found", fab_errors.ErrFacilityNotFound)
		return "", false
	}
	return facility, true
}
