package services

import (
	"context"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
)

// ReportingService defines the reports over a user's portfolio, all in the reporting currency
type ReportingService interface {
	// CapitalGainSummary lists the unrealized gain of every security held in taxable accounts.
	CapitalGainSummary(ctx context.Context, userID string) ([]domain.CapitalGainSummaryRow, error)

	// RealizedGainsByYear sums realized capital gains of taxable accounts by year and symbol.
	RealizedGainsByYear(ctx context.Context, userID string) ([]domain.RealizedGain, error)

	// CommissionsByYear sums commissions paid by year.
	CommissionsByYear(ctx context.Context, userID string) ([]domain.YearAmount, error)

	// Valuation values every position held on day.
	Valuation(ctx context.Context, userID string, day time.Time) (*domain.Valuation, error)
}
