package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seriesFeed serves a fixed in-memory series.
type seriesFeed struct {
	rank   int
	prices []domain.PriceObservation
}

func (f seriesFeed) Priority() int { return f.rank }

// Observations returns the whole series; range filtering is left to the merge.
func (f seriesFeed) Observations(context.Context, string, time.Time, time.Time) ([]domain.PriceObservation, error) {
	return f.prices, nil
}

func constantFeed(rank int, price string, from, to int) seriesFeed {
	feed := seriesFeed{rank: rank}
	for d := from; d <= to; d++ {
		feed.prices = append(feed.prices, domain.PriceObservation{Day: day(d), Price: dec(price)})
	}
	return feed
}

type failingFeed struct{}

func (failingFeed) Priority() int { return domain.PriorityHigh }

func (failingFeed) Observations(context.Context, string, time.Time, time.Time) ([]domain.PriceObservation, error) {
	return nil, errors.New("feed unavailable")
}

func pricesByDay(series []domain.DailyPrice) map[time.Time]decimal.Decimal {
	out := make(map[time.Time]decimal.Decimal, len(series))
	for _, p := range series {
		out[p.Day] = p.Price
	}
	return out
}

func TestMergePriceSeries_HigherPriorityWins(t *testing.T) {
	a := constantFeed(1, "10", 1, 5)
	b := constantFeed(2, "20", 3, 10)

	for name, feeds := range map[string][]PriceFeed{
		"ascending input":  {a, b},
		"descending input": {b, a},
	} {
		t.Run(name, func(t *testing.T) {
			series, err := MergePriceSeries(context.Background(), "XIU.TO", feeds, day(8), day(10))
			require.NoError(t, err)
			got := pricesByDay(series)

			for d := 1; d <= 2; d++ {
				assertDecimal(t, "10", got[day(d)], day(d).Format(dates.Format))
			}
			for d := 3; d <= 10; d++ {
				assertDecimal(t, "20", got[day(d)], day(d).Format(dates.Format))
			}
		})
	}
}

func TestMergePriceSeries_BufferedRangeIsDenseAndSorted(t *testing.T) {
	feed := seriesFeed{rank: domain.PriorityMedium, prices: []domain.PriceObservation{
		{Day: day(12), Price: dec("5")},
		{Day: day(15), Price: dec("6")},
	}}
	series, err := MergePriceSeries(context.Background(), "VFV.TO", []PriceFeed{feed}, day(15), day(20))
	require.NoError(t, err)

	require.Len(t, series, 13)
	assert.Equal(t, day(8), series[0].Day)
	assert.Equal(t, day(20), series[len(series)-1].Day)
	for i := 1; i < len(series); i++ {
		assert.Equal(t, dates.AddDays(series[i-1].Day, 1), series[i].Day)
		assert.Equal(t, "VFV.TO", series[i].Symbol)
	}

	got := pricesByDay(series)
	for d := 8; d <= 11; d++ {
		assertDecimal(t, "5", got[day(d)], "back-filled")
	}
	for d := 12; d <= 14; d++ {
		assertDecimal(t, "5", got[day(d)], "forward-filled")
	}
	for d := 15; d <= 20; d++ {
		assertDecimal(t, "6", got[day(d)], "forward-filled")
	}
}

func TestMergePriceSeries_IgnoresOutOfRangeObservations(t *testing.T) {
	feed := seriesFeed{rank: 1, prices: []domain.PriceObservation{{Day: day(30), Price: dec("99")}}}
	_, err := MergePriceSeries(context.Background(), "XIU.TO", []PriceFeed{feed}, day(10), day(12))
	assert.ErrorIs(t, err, apperrors.ErrMissingPrice)
}

func TestMergePriceSeries_NoFeeds(t *testing.T) {
	_, err := MergePriceSeries(context.Background(), "XIU.TO", nil, day(10), day(12))
	assert.ErrorIs(t, err, apperrors.ErrMissingPrice)
}

func TestMergePriceSeries_FeedError(t *testing.T) {
	_, err := MergePriceSeries(context.Background(), "XIU.TO", []PriceFeed{constantFeed(1, "10", 1, 5), failingFeed{}}, day(3), day(5))
	assert.ErrorContains(t, err, "feed unavailable")
}

func TestMergePriceSeries_InvalidRange(t *testing.T) {
	_, err := MergePriceSeries(context.Background(), "XIU.TO", []PriceFeed{constantFeed(1, "10", 1, 5)}, day(20), day(5))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
