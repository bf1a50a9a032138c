package service

import (
	"context"
	"encoding/json"

	"github.com/dev-mohitbeniwal/fabdash/query"
)

type IDeviceStatisticsService interface {
	Options(ctx context.Context, facility string) (json.RawMessage, error)
	Data(ctx context.Context, facility string) (json.RawMessage, error)
}

type DeviceStatisticsService struct {
	cache  *query.Client
	source DataSource
}

var _ IDeviceStatisticsService = &DeviceStatisticsService{}

func NewDeviceStatisticsService(cache *query.Client, source DataSource) *DeviceStatisticsService {
	return &DeviceStatisticsService{cache: cache, source: source}
}

func (s *DeviceStatisticsService) Options(ctx context.Context, facility string) (json.RawMessage, error) {
	return query.Fetch(ctx, s.cache, query.DeviceStatisticsOptionsKey(facility),
		query.PolicyFor(query.ResourceDeviceStatisticsOptions),
		func(ctx context.Context) (json.RawMessage, error) {
			return s.source.DeviceOptions(ctx, facility)
		})
}

func (s *DeviceStatisticsService) Data(ctx context.Context, facility string) (json.RawMessage, error) {
	return query.Fetch(ctx, s.cache, query.DeviceStatisticsDataKey(facility),
		query.PolicyFor(query.ResourceDeviceStatisticsData),
		func(ctx context.Context) (json.RawMessage, error) {
			return s.source.DeviceData(ctx, facility)
		})
}
