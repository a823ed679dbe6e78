// Package pricefeeds builds the price feeds behind each configured price source.
package pricefeeds

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/core/portfolio"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// ObservationReader loads the observations stored for a source.
type ObservationReader interface {
	ListObservations(ctx context.Context, sourceID string, start, end time.Time) ([]domain.PriceObservation, error)
}

// Factory turns price source definitions into feeds.
type Factory struct {
	observations ObservationReader
	client       *http.Client
}

// NewFactory creates a Factory. client is used by JSON feeds and should carry a timeout.
func NewFactory(observations ObservationReader, client *http.Client) *Factory {
	if client == nil {
		client = http.DefaultClient
	}
	return &Factory{observations: observations, client: client}
}

// Feed returns the feed for a source, rejecting definitions missing what their type needs.
func (f *Factory) Feed(source domain.PriceSource) (portfolio.PriceFeed, error) {
	if err := Validate(source); err != nil {
		return nil, err
	}
	switch source.Type {
	case domain.PriceSourceConstant:
		return &Constant{source: source}, nil
	case domain.PriceSourceInterpolated:
		return &Interpolated{source: source}, nil
	case domain.PriceSourceStored:
		return &Stored{source: source, reader: f.observations}, nil
	case domain.PriceSourceJSONFeed:
		return &JSONFeed{source: source, client: f.client}, nil
	}
	return nil, fmt.Errorf("%w: unknown price source type %q", apperrors.ErrValidation, source.Type)
}

// Validate checks a source definition against its type.
func Validate(source domain.PriceSource) error {
	if source.Symbol == "" {
		return fmt.Errorf("%w: price source has no symbol", apperrors.ErrValidation)
	}
	if !source.Type.IsValid() {
		return fmt.Errorf("%w: unknown price source type %q", apperrors.ErrValidation, source.Type)
	}
	if source.StartDate != nil && source.EndDate != nil && source.EndDate.Before(*source.StartDate) {
		return fmt.Errorf("%w: price source ends before it starts", apperrors.ErrValidation)
	}
	switch source.Type {
	case domain.PriceSourceInterpolated:
		if source.StartDate == nil || source.EndDate == nil || source.EndValue == nil {
			return fmt.Errorf("%w: interpolated source needs start date, end date and end value", apperrors.ErrValidation)
		}
	case domain.PriceSourceJSONFeed:
		if source.URL == "" || source.DatesPath == "" || source.PricesPath == "" {
			return fmt.Errorf("%w: json feed needs url, dates path and prices path", apperrors.ErrValidation)
		}
	}
	return nil
}

// window clips [start, end] to the days the source is active.
func window(source domain.PriceSource, start, end time.Time) (time.Time, time.Time, bool) {
	start, end = dates.Truncate(start), dates.Truncate(end)
	if source.StartDate != nil && start.Before(dates.Truncate(*source.StartDate)) {
		start = dates.Truncate(*source.StartDate)
	}
	if source.EndDate != nil && end.After(dates.Truncate(*source.EndDate)) {
		end = dates.Truncate(*source.EndDate)
	}
	return start, end, !end.Before(start)
}

func observation(source domain.PriceSource, day time.Time, price decimal.Decimal) domain.PriceObservation {
	return domain.PriceObservation{SourceID: source.SourceID, Symbol: source.Symbol, Day: day, Price: price}
}

func symbolMismatch(source domain.PriceSource, symbol string) bool {
	return symbol != "" && symbol != source.Symbol
}

// Constant reports the same price on every active day.
type Constant struct{ source domain.PriceSource }

func (c *Constant) Priority() int { return c.source.Priority }

func (c *Constant) Observations(_ context.Context, symbol string, start, end time.Time) ([]domain.PriceObservation, error) {
	if symbolMismatch(c.source, symbol) {
		return nil, nil
	}
	from, to, ok := window(c.source, start, end)
	if !ok {
		return nil, nil
	}
	var out []domain.PriceObservation
	for d := range dates.Between(from, to) {
		out = append(out, observation(c.source, d, c.source.Value))
	}
	return out, nil
}

// Interpolated moves linearly from Value on StartDate to EndValue on EndDate.
type Interpolated struct{ source domain.PriceSource }

func (i *Interpolated) Priority() int { return i.source.Priority }

func (i *Interpolated) Observations(_ context.Context, symbol string, start, end time.Time) ([]domain.PriceObservation, error) {
	if symbolMismatch(i.source, symbol) {
		return nil, nil
	}
	from, to, ok := window(i.source, start, end)
	if !ok {
		return nil, nil
	}
	first := dates.Truncate(*i.source.StartDate)
	span := decimal.NewFromInt(int64(dates.DaysBetween(first, dates.Truncate(*i.source.EndDate)) - 1))
	step := decimal.Zero
	if span.IsPositive() {
		step = i.source.EndValue.Sub(i.source.Value).Div(span)
	}

	var out []domain.PriceObservation
	for d := range dates.Between(from, to) {
		elapsed := decimal.NewFromInt(int64(dates.DaysBetween(first, d) - 1))
		out = append(out, observation(i.source, d, i.source.Value.Add(step.Mul(elapsed))))
	}
	return out, nil
}

// Stored replays observations saved for the source, such as manually entered prices.
type Stored struct {
	source domain.PriceSource
	reader ObservationReader
}

func (s *Stored) Priority() int { return s.source.Priority }

func (s *Stored) Observations(ctx context.Context, symbol string, start, end time.Time) ([]domain.PriceObservation, error) {
	if symbolMismatch(s.source, symbol) {
		return nil, nil
	}
	from, to, ok := window(s.source, start, end)
	if !ok {
		return nil, nil
	}
	return s.reader.ListObservations(ctx, s.source.SourceID, from, to)
}
