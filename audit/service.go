// audit/service.go
package audit

import (
	"context"
	"time"
)

type Service interface {
	LogNavigation(ctx context.Context, log NavigationLog) error
	QueryLogs(ctx context.Context, from, to time.Time, sessionID, facility string) ([]NavigationLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogNavigation(ctx context.Context, log NavigationLog) error {
	return s.repo.LogNavigation(ctx, log)
}

func (s *service) QueryLogs(ctx context.Context, from, to time.Time, sessionID, facility string) ([]NavigationLog, error) {
	return s.repo.QueryLogs(ctx, from, to, sessionID, facility)
}
