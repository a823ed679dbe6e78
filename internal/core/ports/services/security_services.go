package services

import (
	"context"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
)

// SecuritySvcFacade defines operations on the security master
type SecuritySvcFacade interface {
	// CreateSecurity registers a security and gives it a default price source.
	CreateSecurity(ctx context.Context, req dto.CreateSecurityRequest, userID string) (*domain.Security, error)

	// GetSecurity retrieves a security by symbol.
	GetSecurity(ctx context.Context, symbol string) (*domain.Security, error)

	// ListSecurities retrieves every known security.
	ListSecurities(ctx context.Context) ([]domain.Security, error)
}
