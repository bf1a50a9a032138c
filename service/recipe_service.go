package service

import (
	"context"
	"encoding/json"

	fab_errors "github.com/dev-mohitbeniwal/fabdash/errors"
	"github.com/dev-mohitbeniwal/fabdash/query"
)

type IRecipeService interface {
	RecipeList(ctx context.Context, facility, tool string) (json.RawMessage, error)
}

type RecipeService struct {
	cache  *query.Client
	source DataSource
}

var _ IRecipeService = &RecipeService{}

func NewRecipeService(cache *query.Client, source DataSource) *RecipeService {
	return &RecipeService{cache: cache, source: source}
}

// RecipeList needs both a facility and a tool; nothing is fetched otherwise.
func (s *RecipeService) RecipeList(ctx context.Context, facility, tool string) (json.RawMessage, error) {
	if facility == "" {
		return nil, fab_errors.ErrNoFacilitySelected
	}
	if tool == "" {
		return nil, fab_errors.ErrNoToolSelected
	}
	return query.Fetch(ctx, s.cache, query.RecipeListKey(facility, tool),
		query.PolicyFor(query.ResourceRecipeList),
		func(ctx context.Context) (json.RawMessage, error) {
			return s.source.RecipeList(ctx, facility, tool)
		})
}
