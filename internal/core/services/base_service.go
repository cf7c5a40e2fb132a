package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/transactions_app/internal/middleware"
)

// BaseService provides common functionality for all services.
// Every record a service logs carries its component name.
type BaseService struct {
	component string
}

func newBaseService(component string) BaseService {
	return BaseService{component: component}
}

// GetLogger returns the request-scoped logger from ctx, tagged with the component.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if s.component == "" {
		return logger
	}
	return logger.With(slog.String("component", s.component))
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning.
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message when debug logging is enabled.
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	logger.Debug(msg, keyvals...)
}
