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

const IBName = "ib"

// Flex query record kinds.
const (
	ibTransfer    = "TRFR"
	ibTrade       = "TRNT"
	ibCashTrans   = "CTRN"
	ibDepositsSub = "Deposits/Withdrawals"
)

var currencyPair = regexp.MustCompile(`^[A-Z]{3}\.[A-Z]{3}$`)

// IBAdapter normalizes Interactive Brokers flex query exports.
// The record type is resolved while parsing, so Normalize only builds activities.
type IBAdapter struct{}

func NewIBAdapter() *IBAdapter { return &IBAdapter{} }

func (*IBAdapter) Name() string { return IBName }

func (*IBAdapter) Normalize(raw domain.RawActivity) (Batch, error) {
	typ, err := domain.ParseActivityType(raw.Type)
	if err != nil {
		return Batch{}, fmt.Errorf("raw activity %s: %w", raw.RawActivityID, err)
	}
	if typ == domain.ActivityTypeFX {
		return fxPair(raw, raw.Symbol, raw.Quantity, raw.NetAmount)
	}

	var b Batch
	a := activityFrom(raw, typ)
	a.Security = optional(raw.Symbol)
	a.Cash = optional(raw.Currency)
	a.Quantity = raw.Quantity
	a.Price = raw.Price
	a.NetAmount = raw.NetAmount
	a.Commission = raw.Commission
	a = canonical(a, true)
	b.add(a)

	if a.Cash != nil {
		b.addSecurity(domain.NewCashSecurity(raw.Currency))
	}
	if a.Security != nil {
		sec := domain.Security{Symbol: raw.Symbol, Currency: raw.Currency, Type: domain.SecurityTypeStock}
		if isIBOption(raw.Symbol) {
			sec.Type = domain.SecurityTypeOption
		}
		b.addSecurity(sec)
	}
	return b, nil
}

func isIBOption(symbol string) bool { return len(symbol) > 10 }

// ParseCSV reads a flex query export made of HEADER and DATA rows. Rows of other
// IB accounts are skipped when the account has a broker reference.
func (*IBAdapter) ParseCSV(r io.Reader, account domain.Account) ([]domain.RawActivity, error) {
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
		if len(record) < 2 || record[0] == "HEADER" {
			continue
		}
		raw, accountRef, err := parseIBRecord(record[1], record[2:])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if account.BrokerRef != "" && accountRef != account.BrokerRef {
			continue
		}
		raw.AccountID = account.AccountID
		if err := ValidateRaw(raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

func parseIBRecord(kind string, f []string) (domain.RawActivity, string, error) {
	var (
		raw                                             domain.RawActivity
		accountRef, date, qty, price, net, fxRate, side string
		subtype                                         string
	)
	switch kind {
	case ibTransfer:
		if len(f) < 11 {
			return raw, "", fmt.Errorf("%w: %s row has %d fields", apperrors.ErrValidation, kind, len(f))
		}
		accountRef, raw.ExternalID, date, raw.Symbol, qty, price, raw.Currency, fxRate, net, raw.Description =
			f[0], f[1], f[2], f[3], f[4], f[5], f[6], f[7], f[9], f[10]
	case ibTrade:
		if len(f) < 14 {
			return raw, "", fmt.Errorf("%w: %s row has %d fields", apperrors.ErrValidation, kind, len(f))
		}
		accountRef, raw.ExternalID, date, raw.Symbol, side, raw.Currency, fxRate, qty, price, net, raw.Description =
			f[0], f[1], f[2], f[3], f[4], f[5], f[6], f[7], f[8], f[12], f[13]
		total, err := parseDecimal(f[9])
		if err != nil {
			return raw, "", fmt.Errorf("%w: total amount: %v", apperrors.ErrValidation, err)
		}
		commission, err := parseDecimal(f[10])
		if err != nil {
			return raw, "", fmt.Errorf("%w: commission: %v", apperrors.ErrValidation, err)
		}
		rate, err := parseDecimal(fxRate)
		if err != nil {
			return raw, "", fmt.Errorf("%w: fx rate: %v", apperrors.ErrValidation, err)
		}
		raw.Commission = commission.Mul(rate)
		if n, _ := parseDecimal(net); n.IsZero() {
			net = total.Add(commission).String()
		}
	case ibCashTrans:
		if len(f) < 9 {
			return raw, "", fmt.Errorf("%w: %s row has %d fields", apperrors.ErrValidation, kind, len(f))
		}
		accountRef, raw.ExternalID, date, subtype, raw.Symbol, net, raw.Currency, raw.Description =
			f[0], f[1], f[2], f[3], f[4], f[5], f[6], f[8]
	default:
		return raw, "", fmt.Errorf("%w: interactive brokers record kind %q", apperrors.ErrUnmappedActivityType, kind)
	}

	day, err := parseIBDate(date)
	if err != nil {
		return raw, "", err
	}
	raw.TradeDate = day

	if len(raw.Symbol) < 8 {
		raw.Symbol = strings.ReplaceAll(raw.Symbol, " ", ".")
	}
	if raw.Symbol == "--" {
		raw.Symbol = ""
	}
	raw.Currency = strings.ToUpper(raw.Currency)

	for name, v := range map[string]struct {
		src string
		dst *decimal.Decimal
	}{"quantity": {qty, &raw.Quantity}, "price": {price, &raw.Price}, "net amount": {net, &raw.NetAmount}} {
		if *v.dst, err = parseDecimal(v.src); err != nil {
			return raw, "", fmt.Errorf("%w: %s: %v", apperrors.ErrValidation, name, err)
		}
	}
	if isIBOption(raw.Symbol) {
		raw.Price = raw.Price.Mul(domain.SecurityTypeOption.PriceMultiplier())
	}

	raw.Action = kind
	switch {
	case kind == ibCashTrans && subtype == ibDepositsSub && raw.NetAmount.IsPositive():
		raw.Type = string(domain.ActivityTypeDeposit)
	case kind == ibCashTrans && subtype == ibDepositsSub:
		raw.Type = string(domain.ActivityTypeWithdrawal)
	case kind == ibTrade && side == "BUY" && currencyPair.MatchString(raw.Symbol):
		raw.Type = string(domain.ActivityTypeFX)
	case kind == ibTrade && side == "BUY":
		raw.Type = string(domain.ActivityTypeBuy)
	case kind == ibTrade && side == "SELL":
		raw.Type = string(domain.ActivityTypeSell)
	case kind == ibTransfer:
		raw.Type = string(domain.ActivityTypeTransfer)
	default:
		return raw, "", fmt.Errorf("%w: interactive brokers %s row %q", apperrors.ErrUnmappedActivityType, kind, side+subtype)
	}
	if side != "" {
		raw.Action = kind + "/" + side
	}
	return raw, accountRef, nil
}

func parseIBDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ";, "); i > 0 {
		s = s[:i]
	}
	for _, layout := range []string{"20060102", dates.Format} {
		if day, err := time.Parse(layout, s); err == nil {
			return dates.Truncate(day), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid interactive brokers date %q", apperrors.ErrValidation, s)
}
