// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/fabdash/audit"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogNavigation(ctx context.Context, log audit.NavigationLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditService) QueryLogs(ctx context.Context, from, to time.Time, sessionID, facility string) ([]audit.NavigationLog, error) {
	args := m.Called(ctx, from, to, sessionID, facility)
	if logs, ok := args.Get(0).([]audit.NavigationLog); ok {
		return logs, args.Error(1)
	}
	return nil, args.Error(1)
}
