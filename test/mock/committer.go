package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/fabdash/model"
)

// MockCommitter records facility commits made by the route guard
type MockCommitter struct {
	mock.Mock
}

func (m *MockCommitter) SetFacility(ctx context.Context, id string) (model.Selection, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Selection), args.Error(1)
}
