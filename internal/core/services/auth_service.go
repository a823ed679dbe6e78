package services

import (
	"context"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/platform/config"
	"github.com/SscSPs/portfolio_tracker/internal/utils"
)

// tokenService implements the TokenSvcFacade for handling JWT access tokens.
type tokenService struct {
	cfg *config.Config
	now func() time.Time
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, now: time.Now}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	return utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, s.now())
}

// ValidateAccessToken checks signature, issuer and expiry and returns the subject.
func (s *tokenService) ValidateAccessToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret, s.cfg.JWTIssuer)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
