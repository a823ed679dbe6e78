package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/portfolio_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
)

type securityService struct {
	BaseService
	securityRepo portsrepo.SecurityRepositoryFacade
	prices       portssvc.PriceSourceSvc
}

// NewSecurityService creates a new security service. prices gives new securities their
// default price source.
func NewSecurityService(securityRepo portsrepo.SecurityRepositoryFacade, prices portssvc.PriceSourceSvc) portssvc.SecuritySvcFacade {
	return &securityService{securityRepo: securityRepo, prices: prices}
}

var _ portssvc.SecuritySvcFacade = (*securityService)(nil)

func (s *securityService) CreateSecurity(ctx context.Context, req dto.CreateSecurityRequest, userID string) (*domain.Security, error) {
	security := domain.Security{
		Symbol:      strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Currency:    req.Currency,
		Type:        domain.SecurityType(req.Type),
		Description: req.Description,
	}
	if !security.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown security type %q", apperrors.ErrValidation, req.Type)
	}
	if security.IsCash() && security.Symbol != security.Currency {
		return nil, fmt.Errorf("%w: cash security %s must use its currency code as symbol", apperrors.ErrValidation, security.Symbol)
	}

	now := time.Now().UTC()
	security.AuditFields = domain.NewAuditFields(userID, now)

	if err := s.securityRepo.SaveSecurity(ctx, security); err != nil {
		return nil, fmt.Errorf("failed to create security in service: %w", err)
	}

	if err := s.prices.EnsureDefaultSources(ctx, []domain.Security{security}); err != nil {
		// the security is usable without prices until a source is added
		s.LogError(ctx, err, "Failed to create default price source", slog.String("symbol", security.Symbol))
	}
	return &security, nil
}

func (s *securityService) GetSecurity(ctx context.Context, symbol string) (*domain.Security, error) {
	security, err := s.securityRepo.FindSecurityBySymbol(ctx, strings.ToUpper(symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to get security in service: %w", err)
	}
	return security, nil
}

func (s *securityService) ListSecurities(ctx context.Context) ([]domain.Security, error) {
	securities, err := s.securityRepo.ListSecurities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list securities in service: %w", err)
	}
	return securities, nil
}
