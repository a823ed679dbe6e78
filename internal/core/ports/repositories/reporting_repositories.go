package repositories

import (
	"context"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
)

// ReportingRepository defines aggregate queries over derived portfolio data
type ReportingRepository interface {
	// GetRealizedGainsByYear sums capital gains of the given accounts by year and symbol.
	GetRealizedGainsByYear(ctx context.Context, accountIDs []string) ([]domain.RealizedGain, error)

	// GetCommissionsByYear sums the commissions paid on trades of the given accounts by year,
	// as a positive cost in the reporting currency.
	GetCommissionsByYear(ctx context.Context, accountIDs []string) ([]domain.YearAmount, error)
}
