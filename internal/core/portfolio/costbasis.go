package portfolio

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// PriceLookup returns the recorded market price of a security on a day, in the security's currency.
type PriceLookup interface {
	PriceOn(ctx context.Context, symbol string, day time.Time) (decimal.Decimal, error)
}

// FXLookup returns the rate converting one unit of a security's currency into the reporting currency on a day.
type FXLookup interface {
	ExchangeRate(ctx context.Context, symbol string, day time.Time) (decimal.Decimal, error)
}

// CostBasisOptions tunes the partitioning of the fold.
type CostBasisOptions struct {
	// PerAccount folds each (account, security) separately instead of pooling every account.
	PerAccount bool
}

// Position is the running average-cost state of one security. It is never mutated:
// Apply returns the next state.
type Position struct {
	QuantityTotal decimal.Decimal
	ACBTotal      decimal.Decimal
	ACBPerShare   decimal.Decimal
}

// Trade is the part of an activity the average-cost fold needs, in the reporting currency.
type Trade struct {
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Commission decimal.Decimal
}

// TradeOutcome is what applying a trade realized.
type TradeOutcome struct {
	TotalValue  decimal.Decimal
	CapitalGain decimal.Decimal
	ACBChange   decimal.Decimal
	IsDisposal  bool
	CrossesZero bool
}

// IsDisposal reports whether qty reduces the magnitude of the position: a sale out of a long
// position or a purchase against a short one.
func (p Position) IsDisposal(qty decimal.Decimal) bool {
	return !p.QuantityTotal.IsZero() && qty.Sign() != 0 && qty.Sign() != p.QuantityTotal.Sign()
}

// Apply folds one trade into the position.
// A trade that crosses zero is classified by the sign held before it.
func (p Position) Apply(t Trade) (Position, TradeOutcome) {
	out := TradeOutcome{
		TotalValue: t.Quantity.Mul(t.Price).Sub(t.Commission),
		IsDisposal: p.IsDisposal(t.Quantity),
	}

	if out.IsDisposal {
		out.ACBChange = t.Quantity.Mul(p.ACBPerShare)
		if p.QuantityTotal.Add(t.Quantity).IsZero() {
			// exact on a full exit even when ACBPerShare was rounded
			out.ACBChange = p.ACBTotal.Neg()
		}
		// qty*(acb_per_share - price) + commission
		out.CapitalGain = out.ACBChange.Sub(t.Quantity.Mul(t.Price)).Add(t.Commission)
	} else {
		out.CapitalGain = decimal.Zero
		out.ACBChange = out.TotalValue
	}

	next := Position{QuantityTotal: p.QuantityTotal.Add(t.Quantity)}
	out.CrossesZero = out.IsDisposal && !next.QuantityTotal.IsZero() && next.QuantityTotal.Sign() != p.QuantityTotal.Sign()

	next.ACBTotal = decimal.Max(decimal.Zero, p.ACBTotal.Add(out.ACBChange))
	if next.QuantityTotal.IsZero() {
		next.ACBPerShare = decimal.Zero
	} else {
		next.ACBPerShare = next.ACBTotal.Div(next.QuantityTotal)
	}
	return next, out
}

// CostBasisError reports the first activity of a partition whose cost basis cannot be computed.
type CostBasisError struct {
	AccountID  string
	Symbol     string
	ActivityID string
	Day        time.Time
	Err        error
}

func (e *CostBasisError) Error() string {
	return fmt.Sprintf("cost basis for account %s security %s activity %s on %s: %v",
		e.AccountID, e.Symbol, e.ActivityID, e.Day.Format(dates.Format), e.Err)
}

func (e *CostBasisError) Unwrap() error { return e.Err }

// CountsTowardCostBasis reports whether an activity takes part in the average-cost fold.
// Dividends, zero quantities and activities without a security are skipped.
func CountsTowardCostBasis(a domain.Activity) bool {
	return a.Type != domain.ActivityTypeDividend && !a.Quantity.IsZero() && a.SecuritySymbol() != ""
}

// ComputeCostBasis folds activities into one record per qualifying activity, ordered by
// partition then trade date. A partition that fails is omitted and its error joined into the result.
func ComputeCostBasis(ctx context.Context, activities []domain.Activity, prices PriceLookup, fx FXLookup, opts CostBasisOptions) ([]domain.CostBasisRecord, error) {
	partitions := make(map[HoldingKey][]domain.Activity)
	for _, a := range activities {
		if !CountsTowardCostBasis(a) {
			continue
		}
		key := HoldingKey{Symbol: a.SecuritySymbol()}
		if opts.PerAccount {
			key.AccountID = a.AccountID
		}
		partitions[key] = append(partitions[key], a)
	}

	keys := make([]HoldingKey, 0, len(partitions))
	for key := range partitions {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b HoldingKey) int {
		return cmp.Or(cmp.Compare(a.Symbol, b.Symbol), cmp.Compare(a.AccountID, b.AccountID))
	})

	var (
		records []domain.CostBasisRecord
		errs    []error
	)
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		folded, err := foldCostBasis(ctx, key, partitions[key], prices, fx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, folded...)
	}
	return records, errors.Join(errs...)
}

func foldCostBasis(ctx context.Context, key HoldingKey, activities []domain.Activity, prices PriceLookup, fx FXLookup) ([]domain.CostBasisRecord, error) {
	slices.SortStableFunc(activities, domain.CompareActivities)

	records := make([]domain.CostBasisRecord, 0, len(activities))
	var position Position
	for _, a := range activities {
		day := dates.Truncate(a.TradeDate)
		fail := func(err error) error {
			return &CostBasisError{AccountID: a.AccountID, Symbol: key.Symbol, ActivityID: a.ActivityID, Day: day, Err: err}
		}

		exch, err := fx.ExchangeRate(ctx, key.Symbol, day)
		if err != nil {
			return nil, fail(err)
		}
		price := a.Price
		if price.IsZero() {
			if price, err = prices.PriceOn(ctx, key.Symbol, day); err != nil {
				return nil, fail(err)
			}
		}

		trade := Trade{
			Quantity:   a.Quantity,
			Price:      price.Mul(exch),
			Commission: a.Commission.Mul(exch),
		}
		next, out := position.Apply(trade)
		records = append(records, domain.CostBasisRecord{
			ActivityID:    a.ActivityID,
			AccountID:     key.AccountID,
			Symbol:        key.Symbol,
			TradeDate:     day,
			Quantity:      a.Quantity,
			ExchangeRate:  exch,
			PricePerShare: trade.Price,
			Commission:    trade.Commission,
			TotalValue:    out.TotalValue,
			QuantityTotal: next.QuantityTotal,
			ACBTotal:      next.ACBTotal,
			ACBPerShare:   next.ACBPerShare,
			CapitalGain:   out.CapitalGain,
			IsDisposal:    out.IsDisposal,
			CrossesZero:   out.CrossesZero,
		})
		position = next
	}
	return records, nil
}

// LatestPositions returns the last record of every partition keyed by (account, symbol).
// Records must be ordered as ComputeCostBasis returns them.
func LatestPositions(records []domain.CostBasisRecord) map[HoldingKey]domain.CostBasisRecord {
	latest := make(map[HoldingKey]domain.CostBasisRecord)
	for _, r := range records {
		latest[HoldingKey{AccountID: r.AccountID, Symbol: r.Symbol}] = r
	}
	return latest
}
