package portfolio

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// MergeBufferDays widens every merge window backwards so the first requested day can be
// forward-filled from an earlier observation.
const MergeBufferDays = 7

// PriceFeed is one ranked source of sparse daily prices for a security.
type PriceFeed interface {
	// Priority ranks the feed; higher values overwrite lower ones on shared days.
	Priority() int
	// Observations returns the prices the feed knows for symbol within [start, end].
	Observations(ctx context.Context, symbol string, start, end time.Time) ([]domain.PriceObservation, error)
}

// BufferedStart returns the first day a merge over [start, end] covers.
func BufferedStart(start time.Time) time.Time {
	return dates.AddDays(dates.Truncate(start), -MergeBufferDays)
}

// MergePriceSeries combines feeds into one dense daily series over [start-7d, end].
// Feeds are applied in ascending priority, each overwriting what came before; equal
// priorities keep their given order. Gaps are forward-filled, then a leading gap is back-filled.
func MergePriceSeries(ctx context.Context, symbol string, feeds []PriceFeed, start, end time.Time) ([]domain.DailyPrice, error) {
	from, to := BufferedStart(start), dates.Truncate(end)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: price range ends %s before it starts %s", apperrors.ErrValidation, to.Format(dates.Format), from.Format(dates.Format))
	}

	ordered := slices.Clone(feeds)
	slices.SortStableFunc(ordered, func(a, b PriceFeed) int { return cmp.Compare(a.Priority(), b.Priority()) })

	known := make(map[time.Time]decimal.Decimal)
	for _, feed := range ordered {
		observations, err := feed.Observations(ctx, symbol, from, to)
		if err != nil {
			return nil, fmt.Errorf("price feed for %s (priority %d): %w", symbol, feed.Priority(), err)
		}
		for _, o := range observations {
			d := dates.Truncate(o.Day)
			if d.Before(from) || d.After(to) {
				continue
			}
			known[d] = o.Price
		}
	}
	if len(known) == 0 {
		return nil, fmt.Errorf("%w: no source has prices for %s between %s and %s",
			apperrors.ErrMissingPrice, symbol, from.Format(dates.Format), to.Format(dates.Format))
	}

	series := make([]domain.DailyPrice, 0, dates.DaysBetween(from, to))
	var (
		last    decimal.Decimal
		haveAny bool
		leading int
	)
	for d := range dates.Between(from, to) {
		if p, ok := known[d]; ok {
			last, haveAny = p, true
		} else if !haveAny {
			leading++
		}
		series = append(series, domain.DailyPrice{Symbol: symbol, Day: d, Price: last})
	}
	for i := 0; i < leading; i++ {
		series[i].Price = series[leading].Price
	}
	return series, nil
}
