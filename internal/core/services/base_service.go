package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	AccountAuthorizer portssvc.AccountAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
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
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeAccount returns the account when userID owns it. Without an authorizer every
// request is denied.
func (s *BaseService) AuthorizeAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	if s.AccountAuthorizer == nil {
		s.LogError(ctx, apperrors.ErrForbidden, "No account authorizer configured, denying access",
			slog.String("user_id", userID),
			slog.String("account_id", accountID))
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrForbidden, accountID)
	}
	return s.AccountAuthorizer.AuthorizeAccount(ctx, userID, accountID)
}
