package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/fabdash/access"
)

// MockChecker is a mock implementation of access.Checker
type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) HasAccess(ctx context.Context, creds access.Credentials) access.Decision {
	args := m.Called(ctx, creds)
	return args.Get(0).(access.Decision)
}

func (m *MockChecker) IsProtected(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}
