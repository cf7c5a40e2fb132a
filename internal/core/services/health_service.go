package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/transactions_app/internal/apperrors"
	portsrepo "github.com/SscSPs/transactions_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
)

type healthService struct {
	BaseService
	checker portsrepo.HealthChecker
}

// NewHealthService reports the backing store as healthy when it answers a ping.
func NewHealthService(checker portsrepo.HealthChecker) portssvc.HealthSvc {
	return &healthService{BaseService: newBaseService("health"), checker: checker}
}

func (s *healthService) CheckHealth(ctx context.Context) error {
	if err := s.checker.Ping(ctx); err != nil {
		s.LogWarn(ctx, "Health check failed", "error", err.Error())
		return fmt.Errorf("%w: %w", apperrors.ErrUnavailable, err)
	}
	return nil
}
