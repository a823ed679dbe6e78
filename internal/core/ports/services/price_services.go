package services

import (
	"context"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

// PriceSourceSvc manages the price sources of securities
type PriceSourceSvc interface {
	CreatePriceSource(ctx context.Context, symbol string, req dto.CreatePriceSourceRequest, userID string) (*domain.PriceSource, error)
	ListPriceSources(ctx context.Context, symbol string) ([]domain.PriceSource, error)

	// EnsureDefaultSources gives each security without a source its default one.
	EnsureDefaultSources(ctx context.Context, securities []domain.Security) error

	// AddManualPrice records an observation in the symbol's Stored source.
	AddManualPrice(ctx context.Context, symbol string, req dto.ManualPriceRequest, userID string) (*domain.PriceObservation, error)
}

// PriceSyncSvc merges sources into daily prices
type PriceSyncSvc interface {
	// SyncPrices merges every source of symbol over [start, end] and stores the series.
	// It returns the number of days written.
	SyncPrices(ctx context.Context, symbol string, start, end time.Time) (int, error)

	// SyncAll syncs every security from just before its last stored day up to today.
	SyncAll(ctx context.Context) error
}

// PriceReaderSvc reads merged daily prices
type PriceReaderSvc interface {
	// PriceOn returns the daily price of symbol on day, or apperrors.ErrMissingPrice.
	PriceOn(ctx context.Context, symbol string, day time.Time) (decimal.Decimal, error)

	ListPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.DailyPrice, error)
}

// PriceSvcFacade combines all price-related service interfaces
type PriceSvcFacade interface {
	PriceSourceSvc
	PriceSyncSvc
	PriceReaderSvc
}
