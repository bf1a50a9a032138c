// service/equipment_service.go
package service

import (
	"context"
	"encoding/json"

	"github.com/dev-mohitbeniwal/fabdash/query"
)

// IEquipmentService defines the interface for equipment status reads
type IEquipmentService interface {
	CurrentStatus(ctx context.Context, facility string) (json.RawMessage, error)
	NotAvailable(ctx context.Context, facility string) (json.RawMessage, error)
	Storage(ctx context.Context, facility string) (json.RawMessage, error)
}

// EquipmentService serves equipment status through the query cache
type EquipmentService struct {
	cache  *query.Client
	source DataSource
}

var _ IEquipmentService = &EquipmentService{}

func NewEquipmentService(cache *query.Client, source DataSource) *EquipmentService {
	return &EquipmentService{cache: cache, source: source}
}

func (s *EquipmentService) CurrentStatus(ctx context.Context, facility string) (json.RawMessage, error) {
	return query.Fetch(ctx, s.cache, query.EquipmentCurrentStatusKey(facility),
		query.PolicyFor(query.ResourceEquipmentCurrentStatus),
		func(ctx context.Context) (json.RawMessage, error) {
			return s.source.CurrentStatus(ctx, facility)
		})
}

func (s *EquipmentService) NotAvailable(ctx context.Context, facility string) (json.RawMessage, error) {
	return query.Fetch(ctx, s.cache, query.EquipmentNotAvailableKey(facility),
		query.PolicyFor(query.ResourceEquipmentNotAvailable),
		func(ctx context.Context) (json.RawMessage, error) {
			return s.source.NotAvailable(ctx, facility)
		})
}

func (s *EquipmentService) Storage(ctx context.Context, facility string) (json.RawMessage, error) {
	return query.Fetch(ctx, s.cache, query.EquipmentStorageKey(facility),
		query.PolicyFor(query.ResourceEquipmentStorage),
		func(ctx context.Context) (json.RawMessage, error) {
			return s.source.Storage(ctx, facility)
		})
}
