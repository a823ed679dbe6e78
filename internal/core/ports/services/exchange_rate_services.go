package services

import (
	"context"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRate retrieves the rate between two currencies effective on day,
	// searching the given direction only.
	GetExchangeRate(ctx context.Context, fromCode, toCode string, day time.Time) (*domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new exchange rate.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}

// ReportingRateSvc converts into the reporting currency
type ReportingRateSvc interface {
	// ReportingCurrency is the currency every report and cost basis is expressed in.
	ReportingCurrency() string

	// CurrencyRate converts one unit of currency into the reporting currency on day.
	CurrencyRate(ctx context.Context, currency string, day time.Time) (decimal.Decimal, error)

	// ExchangeRate converts one unit of the currency symbol is traded in.
	ExchangeRate(ctx context.Context, symbol string, day time.Time) (decimal.Decimal, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
	ReportingRateSvc
}
