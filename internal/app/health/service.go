package health

import (
	"context"

	"trello/internal/utils"
)

type Service interface {
	Check(ctx context.Context) utils.HealthStatus
}

type service struct {
	checker *utils.HealthChecker
}

func NewService(checker *utils.HealthChecker) Service {
	return &service{checker: checker}
}

func (s *service) Check(ctx context.Context) utils.HealthStatus {
	return s.checker.Check(ctx)
}
