package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRateAsOf retrieves the most recent rate from one currency to another
	// effective on or before day. Only the given direction is searched.
	FindExchangeRateAsOf(ctx context.Context, fromCurrencyCode, toCurrencyCode string, day time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves the history of a currency pair, newest first.
	ListExchangeRates(ctx context.Context, fromCurrencyCode, toCurrencyCode string) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new exchange rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
