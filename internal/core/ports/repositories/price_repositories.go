package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
)

// PriceSourceReader defines read operations for price source definitions
type PriceSourceReader interface {
	// ListPriceSources retrieves the sources of a symbol.
	ListPriceSources(ctx context.Context, symbol string) ([]domain.PriceSource, error)

	// FindPriceSourceByType retrieves the first source of the given type for a symbol.
	FindPriceSourceByType(ctx context.Context, symbol string, sourceType domain.PriceSourceType) (*domain.PriceSource, error)
}

// PriceSourceWriter defines write operations for price source definitions
type PriceSourceWriter interface {
	SavePriceSource(ctx context.Context, source domain.PriceSource) error
}

// PriceObservationReader defines read operations for stored observations
type PriceObservationReader interface {
	// ListObservations retrieves the observations of a source within [start, end].
	ListObservations(ctx context.Context, sourceID string, start, end time.Time) ([]domain.PriceObservation, error)
}

// PriceObservationWriter defines write operations for stored observations
type PriceObservationWriter interface {
	// SaveObservations upserts observations by (source, day).
	SaveObservations(ctx context.Context, observations []domain.PriceObservation) error
}

// DailyPriceReader defines read operations for merged daily prices
type DailyPriceReader interface {
	// FindDailyPrice retrieves the price of symbol on day.
	FindDailyPrice(ctx context.Context, symbol string, day time.Time) (*domain.DailyPrice, error)

	// ListDailyPrices retrieves the prices of symbol within [start, end].
	ListDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.DailyPrice, error)

	// LastDailyPriceDates returns, per symbol, the last day with a merged price.
	LastDailyPriceDates(ctx context.Context) (map[string]time.Time, error)
}

// DailyPriceWriter defines write operations for merged daily prices
type DailyPriceWriter interface {
	// ReplaceDailyPrices swaps the stored series of symbol within [start, end] for prices.
	ReplaceDailyPrices(ctx context.Context, symbol string, start, end time.Time, prices []domain.DailyPrice) error
}

// PriceRepositoryFacade combines all price-related repository interfaces
type PriceRepositoryFacade interface {
	PriceSourceReader
	PriceSourceWriter
	PriceObservationReader
	PriceObservationWriter
	DailyPriceReader
	DailyPriceWriter
}
