// Package brokers turns broker-specific raw records into canonical activities.
// Each brokerage is one Adapter; which ones are available is decided by configuration.
package brokers

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/utils/accounting"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Batch is what one raw record normalizes to: the activities, plus the securities
// they reference as the broker describes them.
type Batch struct {
	Activities []domain.Activity
	Securities []domain.Security
}

func (b *Batch) add(a domain.Activity) {
	b.Activities = append(b.Activities, a)
}

func (b *Batch) addSecurity(s domain.Security) {
	for _, known := range b.Securities {
		if known.Symbol == s.Symbol {
			return
		}
	}
	b.Securities = append(b.Securities, s)
}

// Adapter produces canonical activities from one brokerage's raw records.
type Adapter interface {
	Name() string
	Normalize(raw domain.RawActivity) (Batch, error)
}

// CSVParser is implemented by adapters that can import a statement export.
type CSVParser interface {
	ParseCSV(r io.Reader, account domain.Account) ([]domain.RawActivity, error)
}

var constructors = map[string]func() Adapter{
	ManualName:    func() Adapter { return NewManualAdapter() },
	RBCName:       func() Adapter { return NewRBCAdapter() },
	IBName:        func() Adapter { return NewIBAdapter() },
	TangerineName: func() Adapter { return NewTangerineAdapter() },
	GRSName:       func() Adapter { return NewGRSAdapter() },
	QuestradeName: func() Adapter { return NewQuestradeAdapter() },
}

// KnownBrokers lists every adapter name that can be enabled.
func KnownBrokers() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Registry holds the enabled adapters.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry enables the named adapters. An unknown name is a configuration error.
func NewRegistry(enabled []string) (*Registry, error) {
	r := &Registry{adapters: make(map[string]Adapter, len(enabled))}
	for _, name := range enabled {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		build, ok := constructors[name]
		if !ok {
			return nil, fmt.Errorf("unknown broker adapter %q (known: %s)", name, strings.Join(KnownBrokers(), ", "))
		}
		r.adapters[name] = build()
	}
	return r, nil
}

// Get returns the adapter for a broker name.
func (r *Registry) Get(name string) (Adapter, error) {
	a, ok := r.adapters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: broker %q is not enabled", apperrors.ErrValidation, name)
	}
	return a, nil
}

// Parser returns the CSV parser of a broker, if it has one.
func (r *Registry) Parser(name string) (CSVParser, error) {
	a, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	p, ok := a.(CSVParser)
	if !ok {
		return nil, fmt.Errorf("%w: broker %q does not support CSV import", apperrors.ErrValidation, name)
	}
	return p, nil
}

// Names lists the enabled adapters.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var validate = validator.New()

// ValidateRaw checks the struct tags of a parsed raw record.
func ValidateRaw(raw domain.RawActivity) error {
	if err := validate.Struct(raw); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// activityFrom copies the fields every adapter carries over unchanged.
func activityFrom(raw domain.RawActivity, typ domain.ActivityType) domain.Activity {
	return domain.Activity{
		AccountID:     raw.AccountID,
		TradeDate:     dates.Truncate(raw.TradeDate),
		Description:   raw.Description,
		Type:          typ,
		RawActivityID: raw.RawActivityID,
	}
}

// canonical applies the rules shared by every broker: trades derive their commission from
// settlement unless one is given, dividends carry no quantity, expiries and journals move no cash.
func canonical(a domain.Activity, explicitCommission bool) domain.Activity {
	if a.Type.IsTrade() && !explicitCommission {
		a.Commission = accounting.ImpliedCommission(a.Quantity, a.Price, a.NetAmount)
	}
	if !a.Type.IsTrade() && !explicitCommission {
		a.Commission = decimal.Zero
	}
	switch a.Type {
	case domain.ActivityTypeDividend:
		a.Quantity = decimal.Zero
	case domain.ActivityTypeExpiry, domain.ActivityTypeJournal:
		a.Cash = nil
	}
	return a
}

// fxPair splits a currency conversion into its two cash legs.
// pair is written TO.FROM, e.g. USD.CAD buys USD with CAD.
func fxPair(raw domain.RawActivity, pair string, received, paid decimal.Decimal) (Batch, error) {
	to, from, ok := strings.Cut(pair, ".")
	if !ok || len(to) != 3 || len(from) != 3 {
		return Batch{}, fmt.Errorf("%w: invalid currency pair %q on raw activity %s", apperrors.ErrValidation, pair, raw.RawActivityID)
	}
	var b Batch
	for _, leg := range []struct {
		currency string
		amount   decimal.Decimal
	}{{from, paid.Abs().Neg()}, {to, received}} {
		a := activityFrom(raw, domain.ActivityTypeFX)
		a.Cash = optional(strings.ToUpper(leg.currency))
		a.NetAmount = leg.amount
		b.add(a)
		b.addSecurity(domain.NewCashSecurity(strings.ToUpper(leg.currency)))
	}
	return b, nil
}

// withCash generates the deposit or withdrawal that funds a trade from outside the account.
func withCash(trade domain.Activity, typ domain.ActivityType) domain.Activity {
	funding := trade
	funding.Type = typ
	funding.Security = nil
	funding.Description = "Generated " + string(typ)
	funding.Quantity = decimal.Zero
	funding.Price = decimal.Zero
	funding.Commission = decimal.Zero
	funding.NetAmount = trade.NetAmount.Neg()
	return funding
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "--" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
