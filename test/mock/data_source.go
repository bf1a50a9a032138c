package mock

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/fabdash/model"
)

// MockDataSource is a mock implementation of service.DataSource
type MockDataSource struct {
	mock.Mock
}

func (m *MockDataSource) raw(args mock.Arguments) (json.RawMessage, error) {
	if payload, ok := args.Get(0).(json.RawMessage); ok {
		return payload, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) CurrentStatus(ctx context.Context, facility string) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, facility))
}

func (m *MockDataSource) NotAvailable(ctx context.Context, facility string) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, facility))
}

func (m *MockDataSource) Storage(ctx context.Context, facility string) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, facility))
}

func (m *MockDataSource) DeviceOptions(ctx context.Context, facility string) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, facility))
}

func (m *MockDataSource) DeviceData(ctx context.Context, facility string) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, facility))
}

func (m *MockDataSource) RecipeList(ctx context.Context, facility, tool string) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, facility, tool))
}

func (m *MockDataSource) ToolFabMapping(ctx context.Context) (model.FacilityDirectory, error) {
	args := m.Called(ctx)
	if dir, ok := args.Get(0).(model.FacilityDirectory); ok {
		return dir, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataSource) Health(ctx context.Context) (json.RawMessage, error) {
	return m.raw(m.Called(ctx))
}

func (m *MockDataSource) JobsStatus(ctx context.Context) (json.RawMessage, error) {
	return m.raw(m.Called(ctx))
}
