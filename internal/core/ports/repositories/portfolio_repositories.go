package repositories

import (
	"context"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// HoldingReader defines read operations for derived holdings
type HoldingReader interface {
	// ListHoldings retrieves the holding intervals of the given accounts.
	ListHoldings(ctx context.Context, accountIDs []string) ([]domain.HoldingInterval, error)
}

// CostBasisReader defines read operations for derived cost basis records
type CostBasisReader interface {
	// ListCostBasis retrieves the cost basis records of the given accounts in trade order.
	// An empty symbol selects every security.
	ListCostBasis(ctx context.Context, accountIDs []string, symbol string) ([]domain.CostBasisRecord, error)
}

// IssueReader defines read operations for regeneration issues
type IssueReader interface {
	// ListIssues retrieves the open issues of an account.
	ListIssues(ctx context.Context, accountID string) ([]domain.RegenerationIssue, error)
}

// PortfolioTransactionSupport replaces everything derived from an account's activities
type PortfolioTransactionSupport interface {
	ReplaceHoldingsTx(ctx context.Context, tx pgx.Tx, accountID string, intervals []domain.HoldingInterval) error
	ReplaceCostBasisTx(ctx context.Context, tx pgx.Tx, accountID string, records []domain.CostBasisRecord) error
	ReplaceIssuesTx(ctx context.Context, tx pgx.Tx, accountID string, issues []domain.RegenerationIssue) error
}

// PortfolioRepositoryFacade combines all derived-data repository interfaces
type PortfolioRepositoryFacade interface {
	HoldingReader
	CostBasisReader
	IssueReader
	PortfolioTransactionSupport
}
