package brokers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/shopspring/decimal"
)

const ManualName = "manual"

// manualColumns is the header of a manual CSV import. Only date, type and currency are required.
var manualColumns = []string{"date", "type", "symbol", "quantity", "price", "netamount", "commission", "currency", "description", "id"}

// ManualAdapter reads records that already use the canonical activity vocabulary.
type ManualAdapter struct{}

func NewManualAdapter() *ManualAdapter { return &ManualAdapter{} }

func (*ManualAdapter) Name() string { return ManualName }

// Normalize maps a manual record one to one. An FX record whose symbol is a
// TO.FROM pair is split into both cash legs: quantity received, net amount paid.
// A trade's commission is stored negative regardless of the sign entered.
func (*ManualAdapter) Normalize(raw domain.RawActivity) (Batch, error) {
	typ, err := domain.ParseActivityType(raw.Type)
	if err != nil {
		return Batch{}, fmt.Errorf("raw activity %s: %w", raw.RawActivityID, err)
	}
	if typ == domain.ActivityTypeFX && strings.Contains(raw.Symbol, ".") {
		return fxPair(raw, raw.Symbol, raw.Quantity, raw.NetAmount)
	}

	var b Batch
	a := activityFrom(raw, typ)
	a.Cash = optional(raw.Currency)
	a.Security = optional(raw.Symbol)
	a.Quantity = raw.Quantity
	a.Price = raw.Price
	a.NetAmount = raw.NetAmount
	a.Commission = raw.Commission
	if typ.IsTrade() {
		// commissions are costs whichever sign the entry used
		a.Commission = raw.Commission.Abs().Neg()
	}
	a = canonical(a, !raw.Commission.IsZero())
	b.add(a)

	if a.Cash != nil {
		b.addSecurity(domain.NewCashSecurity(raw.Currency))
	}
	if a.Security != nil {
		b.addSecurity(domain.Security{Symbol: raw.Symbol, Currency: raw.Currency, Type: domain.SecurityTypeStock})
	}
	return b, nil
}

// ParseCSV reads a manual export. The first row is a header naming columns from manualColumns in any order.
func (*ManualAdapter) ParseCSV(r io.Reader, account domain.Account) ([]domain.RawActivity, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading csv header: %v", apperrors.ErrValidation, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if !slices.Contains(manualColumns, name) {
			return nil, fmt.Errorf("%w: unknown csv column %q", apperrors.ErrValidation, name)
		}
		index[name] = i
	}
	for _, required := range []string{"date", "type", "currency"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: csv header is missing column %q", apperrors.ErrValidation, required)
		}
	}

	var raws []domain.RawActivity
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrValidation, line, err)
		}
		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		raw := domain.RawActivity{
			AccountID:   account.AccountID,
			ExternalID:  field("id"),
			Type:        field("type"),
			Symbol:      strings.ToUpper(field("symbol")),
			Currency:    strings.ToUpper(field("currency")),
			Description: field("description"),
		}
		if raw.TradeDate, err = dates.Parse(field("date")); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrValidation, line, err)
		}
		for name, dst := range map[string]*decimal.Decimal{
			"quantity":   &raw.Quantity,
			"price":      &raw.Price,
			"netamount":  &raw.NetAmount,
			"commission": &raw.Commission,
		} {
			if *dst, err = parseDecimal(field(name)); err != nil {
				return nil, fmt.Errorf("%w: line %d column %s: %v", apperrors.ErrValidation, line, name, err)
			}
		}
		if err := ValidateRaw(raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		raws = append(raws, raw)
	}
	return raws, nil
}
