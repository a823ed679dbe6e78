package brokers

import (
	"fmt"
	"strings"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
)

const TangerineName = "tangerine"

// Tangerine reports funds by name. Prices are keyed by Morningstar id; unlisted
// funds must be imported with their id as symbol.
var tangerineFunds = map[string]string{
	"Tangerine Equity Growth Portfolio": "F00000NNHK",
}

// TangerineAdapter normalizes Tangerine mutual fund transactions. The account only
// holds funds, so purchases are funded by a generated deposit and redemptions
// paid out by a generated withdrawal.
type TangerineAdapter struct{}

func NewTangerineAdapter() *TangerineAdapter { return &TangerineAdapter{} }

func (*TangerineAdapter) Name() string { return TangerineName }

func (*TangerineAdapter) Normalize(raw domain.RawActivity) (Batch, error) {
	symbol, err := tangerineSymbol(raw.Symbol)
	if err != nil {
		return Batch{}, fmt.Errorf("raw activity %s: %w", raw.RawActivityID, err)
	}
	currency := raw.Currency
	if currency == "" {
		currency = "CAD"
	}

	a := activityFrom(raw, domain.ActivityTypeNotImplemented)
	a.Security = &symbol
	a.Cash = &currency
	a.Quantity = raw.Quantity
	a.Price = raw.Price

	var funding domain.ActivityType
	reinvested := false
	switch raw.Type {
	case "Purchase", "Transfer In":
		a.Type = domain.ActivityTypeBuy
		a.NetAmount = raw.Quantity.Mul(raw.Price).Neg()
		funding = domain.ActivityTypeDeposit
	case "Distribution":
		// Reinvested distribution: new units with no cash movement, bought at full price.
		a.Type = domain.ActivityTypeBuy
		reinvested = true
	case "Redemption":
		a.Type = domain.ActivityTypeSell
		a.Quantity = raw.Quantity.Abs().Neg()
		a.NetAmount = raw.Quantity.Abs().Mul(raw.Price)
		funding = domain.ActivityTypeWithdrawal
	}
	a = canonical(a, reinvested)

	var b Batch
	b.add(a)
	if funding != "" {
		b.add(withCash(a, funding))
	}
	b.addSecurity(domain.NewCashSecurity(currency))
	b.addSecurity(domain.Security{Symbol: symbol, Currency: currency, Type: domain.SecurityTypeMutualFund, Description: raw.Symbol})
	return b, nil
}

func tangerineSymbol(name string) (string, error) {
	if symbol, ok := tangerineFunds[strings.TrimSpace(name)]; ok {
		return symbol, nil
	}
	if name != "" && !strings.Contains(name, " ") {
		return strings.ToUpper(name), nil
	}
	return "", fmt.Errorf("%w: unknown tangerine fund %q", apperrors.ErrValidation, name)
}
