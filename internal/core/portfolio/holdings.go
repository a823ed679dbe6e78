// Package portfolio holds the pure derivations over an activity stream:
// holding intervals, average-cost basis and merged daily price series.
package portfolio

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// HoldingKey identifies the (account, security) pair a holding timeline belongs to.
type HoldingKey struct {
	AccountID string
	Symbol    string
}

func (k HoldingKey) String() string { return k.AccountID + "/" + k.Symbol }

// IntegrityError reports a holding timeline that cannot be folded any further.
// Only the pair in Key is affected.
type IntegrityError struct {
	Key    HoldingKey
	Day    time.Time
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: account %s security %s on %s: %s",
		apperrors.ErrDataIntegrity, e.Key.AccountID, e.Key.Symbol, e.Day.Format(dates.Format), e.Reason)
}

func (e *IntegrityError) Unwrap() error { return apperrors.ErrDataIntegrity }

// ReconstructHoldings folds activities into holding intervals from scratch.
// Intervals of pairs that fail are omitted and the failures are joined into the error.
func ReconstructHoldings(activities []domain.Activity) ([]domain.HoldingInterval, error) {
	return ExtendHoldings(nil, activities)
}

// ExtendHoldings applies activities on top of existing intervals, as stored for the same accounts.
// Effects on the same day are summed first, so no two intervals of a pair share a start date.
func ExtendHoldings(existing []domain.HoldingInterval, activities []domain.Activity) ([]domain.HoldingInterval, error) {
	timelines := make(map[HoldingKey][]domain.HoldingInterval)
	for _, h := range existing {
		key := HoldingKey{AccountID: h.AccountID, Symbol: h.Symbol}
		timelines[key] = append(timelines[key], h)
	}

	deltas := make(map[HoldingKey]map[time.Time]decimal.Decimal)
	for _, a := range activities {
		effects, err := a.HoldingEffects()
		if err != nil {
			return nil, err
		}
		day := dates.Truncate(a.TradeDate)
		for symbol, amount := range effects {
			key := HoldingKey{AccountID: a.AccountID, Symbol: symbol}
			if deltas[key] == nil {
				deltas[key] = make(map[time.Time]decimal.Decimal)
			}
			deltas[key][day] = deltas[key][day].Add(amount)
			if _, ok := timelines[key]; !ok {
				timelines[key] = nil
			}
		}
	}

	keys := make([]HoldingKey, 0, len(timelines))
	for key := range timelines {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, compareKeys)

	var (
		result []domain.HoldingInterval
		errs   []error
	)
	for _, key := range keys {
		folded, err := foldTimeline(key, timelines[key], deltas[key])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		result = append(result, folded...)
	}
	return result, errors.Join(errs...)
}

func foldTimeline(key HoldingKey, intervals []domain.HoldingInterval, deltas map[time.Time]decimal.Decimal) ([]domain.HoldingInterval, error) {
	intervals = slices.Clone(intervals)
	var openStarts []time.Time
	for _, h := range intervals {
		if h.IsOpen() {
			openStarts = append(openStarts, h.StartDate)
		}
	}
	if len(openStarts) > 1 {
		return nil, &IntegrityError{Key: key, Day: slices.MaxFunc(openStarts, time.Time.Compare), Reason: "more than one open holding interval"}
	}

	days := make([]time.Time, 0, len(deltas))
	for day := range deltas {
		days = append(days, day)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	for _, day := range days {
		delta := deltas[day]
		if delta.IsZero() {
			continue
		}

		open := -1
		for i := range intervals {
			if !intervals[i].IsOpen() {
				continue
			}
			if open >= 0 {
				return nil, &IntegrityError{Key: key, Day: day, Reason: "more than one open holding interval"}
			}
			open = i
		}

		if open < 0 {
			intervals = append(intervals, domain.HoldingInterval{
				AccountID: key.AccountID, Symbol: key.Symbol, Quantity: delta, StartDate: day,
			})
			continue
		}

		current := intervals[open]
		switch {
		case day.Equal(current.StartDate):
			current.Quantity = current.Quantity.Add(delta)
			if current.Quantity.IsZero() {
				intervals = slices.Delete(intervals, open, open+1)
				continue
			}
			intervals[open] = current
		case day.After(current.StartDate):
			end := dates.AddDays(day, -1)
			current.EndDate = &end
			intervals[open] = current
			if next := current.Quantity.Add(delta); !next.IsZero() {
				intervals = append(intervals, domain.HoldingInterval{
					AccountID: key.AccountID, Symbol: key.Symbol, Quantity: next, StartDate: day,
				})
			}
		default:
			return nil, &IntegrityError{Key: key, Day: day, Reason: "activity predates the open holding interval"}
		}
	}

	slices.SortFunc(intervals, func(a, b domain.HoldingInterval) int { return a.StartDate.Compare(b.StartDate) })
	return intervals, nil
}

func compareKeys(a, b HoldingKey) int {
	return cmp.Or(cmp.Compare(a.AccountID, b.AccountID), cmp.Compare(a.Symbol, b.Symbol))
}

// HoldingsOn returns the intervals covering day, in their given order.
func HoldingsOn(intervals []domain.HoldingInterval, day time.Time) []domain.HoldingInterval {
	day = dates.Truncate(day)
	covering := make([]domain.HoldingInterval, 0, len(intervals))
	for _, h := range intervals {
		if h.Covers(day) {
			covering = append(covering, h)
		}
	}
	return covering
}
