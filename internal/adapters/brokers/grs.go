package brokers

import (
	"fmt"
	"strings"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
)

const GRSName = "grs"

const grsCurrency = "CAD"

// GRSAdapter normalizes Great-West group retirement contributions. Every record is
// an employer-funded purchase, so it becomes a deposit plus a buy of the same amount.
type GRSAdapter struct{}

func NewGRSAdapter() *GRSAdapter { return &GRSAdapter{} }

func (*GRSAdapter) Name() string { return GRSName }

func (*GRSAdapter) Normalize(raw domain.RawActivity) (Batch, error) {
	symbol := strings.ToUpper(strings.TrimSpace(raw.Symbol))
	if symbol == "" {
		return Batch{}, fmt.Errorf("%w: raw activity %s has no fund", apperrors.ErrValidation, raw.RawActivityID)
	}
	cash := grsCurrency

	buy := activityFrom(raw, domain.ActivityTypeBuy)
	buy.Security = &symbol
	buy.Cash = &cash
	buy.Quantity = raw.Quantity
	buy.Price = raw.Price
	buy.NetAmount = raw.Quantity.Mul(raw.Price).Neg()
	buy = canonical(buy, false)

	var b Batch
	b.add(withCash(buy, domain.ActivityTypeDeposit))
	b.add(buy)
	b.addSecurity(domain.NewCashSecurity(cash))
	b.addSecurity(domain.Security{Symbol: symbol, Currency: cash, Type: domain.SecurityTypeMutualFund, Description: raw.Description})
	return b, nil
}
