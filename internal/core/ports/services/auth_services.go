package services

import (
	"context"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
)

// TokenSvcFacade defines the interface for access token management.
type TokenSvcFacade interface {
	// GenerateAccessToken signs a JWT for the user and returns it with its expiry.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAccessToken returns the user id a valid token was issued to.
	ValidateAccessToken(ctx context.Context, token string) (string, error)
}
