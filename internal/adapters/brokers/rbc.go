package brokers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/shopspring/decimal"
)

const RBCName = "rbc"

var rbcTypes = map[string]domain.ActivityType{
	"Deposits & Contributions":       domain.ActivityTypeDeposit,
	"Withdrawals & De-registrations": domain.ActivityTypeWithdrawal,
	"Dividends":                      domain.ActivityTypeDividend,
	"Return of Capital":              domain.ActivityTypeRetCapital,
	"Transfers":                      domain.ActivityTypeFX,
	"Buy":                            domain.ActivityTypeBuy,
	"Sell":                           domain.ActivityTypeSell,
	"Interest":                       domain.ActivityTypeInterest,
	"Fees":                           domain.ActivityTypeFee,
}

// Listed on the TSX but exported without the exchange suffix.
var rbcTorontoSymbols = map[string]bool{"VCN": true, "VFV": true, "VDY": true, "VDU": true}

var dripPrice = regexp.MustCompile(`REINV@\s*\$([0-9.,]+)`)

// RBCAdapter normalizes RBC Direct Investing statement rows.
type RBCAdapter struct{}

func NewRBCAdapter() *RBCAdapter { return &RBCAdapter{} }

func (*RBCAdapter) Name() string { return RBCName }

// Normalize maps an RBC row. A dividend that pays out negative cash while adding
// shares is a reinvestment and becomes a buy at the price quoted in its description.
func (*RBCAdapter) Normalize(raw domain.RawActivity) (Batch, error) {
	typ, ok := rbcTypes[raw.Type]
	if !ok {
		typ = domain.ActivityTypeNotImplemented
	}

	price := raw.Price
	if typ == domain.ActivityTypeDividend && raw.NetAmount.IsNegative() && !raw.Quantity.IsZero() {
		m := dripPrice.FindStringSubmatch(raw.Description)
		if m == nil {
			return Batch{}, fmt.Errorf("%w: reinvested dividend %s has no REINV price in %q", apperrors.ErrValidation, raw.RawActivityID, raw.Description)
		}
		p, err := parseDecimal(m[1])
		if err != nil {
			return Batch{}, fmt.Errorf("%w: reinvested dividend %s: %v", apperrors.ErrValidation, raw.RawActivityID, err)
		}
		typ, price = domain.ActivityTypeBuy, p
	}

	symbol := raw.Symbol
	if rbcTorontoSymbols[symbol] {
		symbol += ".TO"
	}

	var b Batch
	a := activityFrom(raw, typ)
	a.Security = optional(symbol)
	a.Cash = optional(raw.Currency)
	a.Quantity = raw.Quantity
	a.Price = price
	a.NetAmount = raw.NetAmount
	a = canonical(a, false)
	b.add(a)

	if a.Cash != nil {
		b.addSecurity(domain.NewCashSecurity(raw.Currency))
	}
	if a.Security != nil {
		b.addSecurity(domain.Security{Symbol: symbol, Currency: raw.Currency, Type: domain.SecurityTypeStock})
	}
	return b, nil
}

// ParseCSV reads the RBC activity export. Columns are positional:
// date, type, symbol, quantity, price, settlement date, account, amount, currency, description.
// Rows whose first column is not a date are headers or footers and are skipped.
func (*RBCAdapter) ParseCSV(r io.Reader, account domain.Account) ([]domain.RawActivity, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var raws []domain.RawActivity
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrValidation, line, err)
		}
		if len(record) < 10 {
			continue
		}
		day, err := parseRBCDate(record[0])
		if err != nil {
			continue
		}

		raw := domain.RawActivity{
			AccountID:   account.AccountID,
			TradeDate:   day,
			Type:        strings.TrimSpace(record[1]),
			Symbol:      strings.TrimSpace(record[2]),
			Currency:    strings.ToUpper(strings.TrimSpace(record[8])),
			Description: strings.TrimSpace(record[9]),
		}
		if account.BrokerRef != "" && strings.TrimSpace(record[6]) != "" && strings.TrimSpace(record[6]) != account.BrokerRef {
			continue
		}
		for col, dst := range map[int]*decimal.Decimal{3: &raw.Quantity, 4: &raw.Price, 7: &raw.NetAmount} {
			if *dst, err = parseDecimal(record[col]); err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %v", apperrors.ErrValidation, line, col+1, err)
			}
		}
		if err := ValidateRaw(raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

func parseRBCDate(s string) (day time.Time, err error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"January 2, 2006", "2006-01-02", "1/2/2006", "Jan 2, 2006"} {
		if day, err = time.Parse(layout, s); err == nil {
			return dates.Truncate(day), nil
		}
	}
	return time.Time{}, err
}
