package service

import (
	"context"
	"encoding/json"

	"github.com/dev-mohitbeniwal/fabdash/query"
)

type IHealthService interface {
	Health(ctx context.Context) (json.RawMessage, error)
	JobsStatus(ctx context.Context) (json.RawMessage, error)
}

type HealthService struct {
	cache  *query.Client
	source DataSource
}

var _ IHealthService = &HealthService{}

func NewHealthService(cache *query.Client, source DataSource) *HealthService {
	return &HealthService{cache: cache, source: source}
}

func (s *HealthService) Health(ctx context.Context) (json.RawMessage, error) {
	return query.Fetch(ctx, s.cache, query.HealthKey(), query.PolicyFor(query.ResourceHealth), s.source.Health)
}

func (s *HealthService) JobsStatus(ctx context.Context) (json.RawMessage, error) {
	return query.Fetch(ctx, s.cache, query.JobsStatusKey(), query.PolicyFor(query.ResourceJobsStatus), s.source.JobsStatus)
}
