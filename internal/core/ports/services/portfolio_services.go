package services

import (
	"context"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
)

// RegenerationSvc rebuilds everything derived from raw activities.
type RegenerationSvc interface {
	// RegenerateAccount replaces the activities, holdings, cost basis and issues of an account
	// in one transaction. Per-security failures are returned as issues, not errors.
	RegenerateAccount(ctx context.Context, accountID string) (*domain.RegenerationResult, error)

	// RegenerateAll regenerates every account, continuing past failing ones.
	RegenerateAll(ctx context.Context) ([]domain.RegenerationResult, error)
}

// PortfolioReaderSvc defines read operations over derived data
type PortfolioReaderSvc interface {
	// ListHoldings retrieves the holding intervals of an account. A non-nil asOf keeps
	// only the intervals covering that day.
	ListHoldings(ctx context.Context, accountID string, userID string, asOf *time.Time) ([]domain.HoldingInterval, error)

	// ListCostBasis retrieves the cost basis records of an account, optionally for one symbol.
	ListCostBasis(ctx context.Context, accountID string, userID string, symbol string) ([]domain.CostBasisRecord, error)

	// ListIssues retrieves the issues left by the last regeneration of an account.
	ListIssues(ctx context.Context, accountID string, userID string) ([]domain.RegenerationIssue, error)
}

// PortfolioSvcFacade combines regeneration and derived-data reads
type PortfolioSvcFacade interface {
	RegenerationSvc
	PortfolioReaderSvc
}
