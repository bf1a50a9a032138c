package service

import (
	"context"

	"github.com/dev-mohitbeniwal/fabdash/model"
	"github.com/dev-mohitbeniwal/fabdash/query"
)

// IFabricationService serves the tool to facility mapping used by tool-first views
type IFabricationService interface {
	ToolFabMapping(ctx context.Context) (model.FacilityDirectory, error)
}

type FabricationService struct {
	cache  *query.Client
	source DataSource
}

var _ IFabricationService = &FabricationService{}

func NewFabricationService(cache *query.Client, source DataSource) *FabricationService {
	return &FabricationService{cache: cache, source: source}
}

func (s *FabricationService) ToolFabMapping(ctx context.Context) (model.FacilityDirectory, error) {
	return query.Fetch(ctx, s.cache, query.ToolFabMappingKey(), query.PolicyFor(query.ResourceToolFabMapping), s.source.ToolFabMapping)
}
