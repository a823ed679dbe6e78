package brokers

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/shopspring/decimal"
)

const QuestradeName = "questrade"

// questradeTypes maps a Questrade transaction type to the canonical type.
// questradeActions refines it by action where one type covers several kinds.
var (
	questradeTypes = map[string]domain.ActivityType{
		"Deposits":              domain.ActivityTypeDeposit,
		"Withdrawals":           domain.ActivityTypeWithdrawal,
		"Dividends":             domain.ActivityTypeDividend,
		"Dividend reinvestment": domain.ActivityTypeBuy,
		"Interest":              domain.ActivityTypeInterest,
		"Fees and rebates":      domain.ActivityTypeFee,
		"FX conversion":         domain.ActivityTypeFX,
		"Transfers":             domain.ActivityTypeTransfer,
		"Tax":                   domain.ActivityTypeTax,
	}
	questradeActions = map[[2]string]domain.ActivityType{
		{"Trades", "Buy"}:   domain.ActivityTypeBuy,
		{"Trades", "Sell"}:  domain.ActivityTypeSell,
		{"Other", "EXP"}:    domain.ActivityTypeExpiry,
		{"Other", "BRW"}:    domain.ActivityTypeJournal,
		{"Other", "FXT"}:    domain.ActivityTypeFX,
		{"Dividends", "RC"}: domain.ActivityTypeRetCapital,
	}
)

// QuestradeAdapter normalizes activities from the Questrade account API.
type QuestradeAdapter struct{}

func NewQuestradeAdapter() *QuestradeAdapter { return &QuestradeAdapter{} }

func (*QuestradeAdapter) Name() string { return QuestradeName }

func questradeType(typ, action string) domain.ActivityType {
	if t, ok := questradeActions[[2]string{typ, action}]; ok {
		return t
	}
	if t, ok := questradeTypes[typ]; ok {
		return t
	}
	return domain.ActivityTypeNotImplemented
}

// Normalize maps a Questrade activity. Options arrive without a symbol and with a
// per-share price, so both are rebuilt from the description. Currency conversions
// booked later carry their real date as "AS OF mm/dd/yy" in the description.
func (*QuestradeAdapter) Normalize(raw domain.RawActivity) (Batch, error) {
	typ := questradeType(raw.Type, raw.Action)
	symbol := raw.Symbol
	price := raw.Price
	secType := domain.SecurityTypeStock

	if strings.HasPrefix(raw.Description, "CALL ") || strings.HasPrefix(raw.Description, "PUT ") {
		fields := strings.Fields(raw.Description)
		if len(fields) < 4 {
			return Batch{}, fmt.Errorf("%w: option description %q", apperrors.ErrValidation, raw.Description)
		}
		expiry, err := time.Parse("01/02/06", fields[2])
		if err != nil {
			return Batch{}, fmt.Errorf("%w: option expiry %q: %v", apperrors.ErrValidation, fields[2], err)
		}
		strike, err := decimal.NewFromString(fields[3])
		if err != nil {
			return Batch{}, fmt.Errorf("%w: option strike %q: %v", apperrors.ErrValidation, fields[3], err)
		}
		if symbol, err = domain.OptionSymbol(fields[1], expiry, fields[0], strike); err != nil {
			return Batch{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		secType = domain.SecurityTypeOption
		price = price.Mul(secType.PriceMultiplier())
	}

	tradeDate := raw.TradeDate
	if raw.Action == "FXT" {
		if asOf, ok := questradeAsOf(raw.Description, tradeDate); ok {
			tradeDate = asOf
		}
	}

	if symbol == raw.Currency {
		symbol = ""
	}

	a := activityFrom(raw, typ)
	a.TradeDate = dates.Truncate(tradeDate)
	a.Security = optional(symbol)
	a.Cash = optional(raw.Currency)
	a.Quantity = raw.Quantity
	a.Price = price
	a.NetAmount = raw.NetAmount
	a.Commission = raw.Commission
	a = canonical(a, true)

	var b Batch
	b.add(a)
	if a.Cash != nil {
		b.addSecurity(domain.NewCashSecurity(raw.Currency))
	}
	if a.Security != nil {
		b.addSecurity(domain.Security{Symbol: symbol, Currency: raw.Currency, Type: secType})
	}
	return b, nil
}

// questradeAsOf extracts the AS OF date. The description omits the century and
// sometimes the year is a year behind; a date more than a year before the trade is moved forward.
func questradeAsOf(description string, tradeDate time.Time) (time.Time, bool) {
	_, rest, ok := strings.Cut(description, "AS OF ")
	if !ok {
		return time.Time{}, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return time.Time{}, false
	}
	asOf, err := time.Parse("01/02/06", fields[0])
	if err != nil {
		return time.Time{}, false
	}
	if tradeDate.Sub(asOf) > 365*dates.Day {
		asOf = asOf.AddDate(1, 0, 0)
	}
	return dates.Truncate(asOf), true
}
