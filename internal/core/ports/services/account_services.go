package services

import (
	"context"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account owned by userID.
	GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error)

	// ListAccounts retrieves the accounts owned by userID.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)

	// LastActivityDate returns the latest trade date of the account, nil when it has none.
	LastActivityDate(ctx context.Context, accountID string) (*time.Time, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account for userID. The broker must be enabled.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
}

// AccountAuthorizerSvc checks account ownership.
type AccountAuthorizerSvc interface {
	// AuthorizeAccount returns the account when userID owns it and apperrors.ErrForbidden otherwise.
	AuthorizeAccount(ctx context.Context, userID, accountID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountAuthorizerSvc
}
