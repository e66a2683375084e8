package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Location is the business time zone used for calendar days and months.
	Location *time.Location
	Now      func() time.Time
	NewID    func() string
}

// BaseServiceOption is a functional option shared by every service constructor.
type BaseServiceOption func(*BaseService)

// WithLocation sets the business time zone.
func WithLocation(loc *time.Location) BaseServiceOption {
	return func(s *BaseService) {
		if loc != nil {
			s.Location = loc
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) BaseServiceOption {
	return func(s *BaseService) {
		s.Now = now
	}
}

// WithIDGenerator replaces the uuid generator used for new records.
func WithIDGenerator(newID func() string) BaseServiceOption {
	return func(s *BaseService) {
		s.NewID = newID
	}
}

func newBaseService(options ...BaseServiceOption) BaseService {
	base := BaseService{
		Location: time.UTC,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
	for _, option := range options {
		option(&base)
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}
