package repositories

import (
	"context"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SecurityReader defines read operations for securities
type SecurityReader interface {
	// FindSecurityBySymbol retrieves a security by symbol.
	FindSecurityBySymbol(ctx context.Context, symbol string) (*domain.Security, error)

	// ListSecurities retrieves every known security ordered by symbol.
	ListSecurities(ctx context.Context) ([]domain.Security, error)
}

// SecurityWriter defines write operations for securities
type SecurityWriter interface {
	// SaveSecurity persists a new security. An existing symbol yields apperrors.ErrDuplicate.
	SaveSecurity(ctx context.Context, security domain.Security) error
}

// SecurityTransactionSupport defines security writes made during regeneration
type SecurityTransactionSupport interface {
	// EnsureSecuritiesTx inserts the securities that do not exist yet and returns the ones it created.
	EnsureSecuritiesTx(ctx context.Context, tx pgx.Tx, securities []domain.Security) ([]domain.Security, error)
}

// SecurityRepositoryFacade combines all security-related repository interfaces
type SecurityRepositoryFacade interface {
	SecurityReader
	SecurityWriter
	SecurityTransactionSupport
}
