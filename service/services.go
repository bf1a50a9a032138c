// service/services.go
package service

import (
	"context"
	"encoding/json"

	"github.com/dev-mohitbeniwal/fabdash/model"
	"github.com/dev-mohitbeniwal/fabdash/query"
	"github.com/dev-mohitbeniwal/fabdash/util"
)

// DataSource is the upstream data API.
type DataSource interface {
	CurrentStatus(ctx context.Context, facility string) (json.RawMessage, error)
	NotAvailable(ctx context.Context, facility string) (json.RawMessage, error)
	Storage(ctx context.Context, facility string) (json.RawMessage, error)
	DeviceOptions(ctx context.Context, facility string) (json.RawMessage, error)
	DeviceData(ctx context.Context, facility string) (json.RawMessage, error)
	RecipeList(ctx context.Context, facility, tool string) (json.RawMessage, error)
	ToolFabMapping(ctx context.Context) (model.FacilityDirectory, error)
	Health(ctx context.Context) (json.RawMessage, error)
	JobsStatus(ctx context.Context) (json.RawMessage, error)
}

type Services struct {
	Equipment        IEquipmentService
	Recipe           IRecipeService
	DeviceStatistics IDeviceStatisticsService
	Health           IHealthService
	Fabrication      IFabricationService
	Prefetcher       *Prefetcher
}

func InitializeServices(
	cache *query.Client,
	source DataSource,
	eventBus *util.EventBus,
) (*Services, error) {
	equipment := NewEquipmentService(cache, source)

	services := &Services{
		Equipment:        equipment,
		Recipe:           NewRecipeService(cache, source),
		DeviceStatistics: NewDeviceStatisticsService(cache, source),
		Health:           NewHealthService(cache, source),
		Fabrication:      NewFabricationService(cache, source),
		Prefetcher:       NewPrefetcher(equipment, eventBus),
	}

	return services, nil
}
