package repositories

import (
	"context"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByUser retrieves the accounts owned by a user.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)

	// ListAllAccounts retrieves every account, for batch jobs.
	ListAllAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations that support account transactions
type AccountTransactionSupport interface {
	// LockAccountTx selects the account and locks its row until tx ends.
	LockAccountTx(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
