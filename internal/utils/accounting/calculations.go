package accounting

import (
	"fmt"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ImpliedCommission derives the signed commission of a trade from how it settled.
// A buy of 100 at 10 settling for -1005 implies a commission of -5.
func ImpliedCommission(qty, price, netAmount decimal.Decimal) decimal.Decimal {
	return qty.Mul(price).Add(netAmount)
}

// ValidateActivity checks the sign and side conventions of a canonical activity.
// Broker adapters and the regeneration service both rely on it so that stored
// activities always fold the same way.
func ValidateActivity(a domain.Activity) error {
	if !a.Type.IsValid() {
		return fmt.Errorf("%w: %q on activity %s", apperrors.ErrUnmappedActivityType, a.Type, a.ActivityID)
	}
	if a.TradeDate.IsZero() {
		return fmt.Errorf("%w: activity %s has no trade date", apperrors.ErrValidation, a.ActivityID)
	}

	switch a.Type {
	case domain.ActivityTypeBuy, domain.ActivityTypeSell:
		if a.SecuritySymbol() == "" {
			return fmt.Errorf("%w: %s activity %s has no security", apperrors.ErrValidation, a.Type, a.ActivityID)
		}
		if a.Type == domain.ActivityTypeBuy && a.Quantity.IsNegative() {
			return fmt.Errorf("%w: buy activity %s has negative quantity %s", apperrors.ErrValidation, a.ActivityID, a.Quantity)
		}
		if a.Type == domain.ActivityTypeSell && a.Quantity.IsPositive() {
			return fmt.Errorf("%w: sell activity %s has positive quantity %s", apperrors.ErrValidation, a.ActivityID, a.Quantity)
		}
	case domain.ActivityTypeDividend:
		if !a.Quantity.IsZero() {
			return fmt.Errorf("%w: dividend activity %s carries quantity %s", apperrors.ErrValidation, a.ActivityID, a.Quantity)
		}
	case domain.ActivityTypeExpiry, domain.ActivityTypeJournal:
		if a.CashSymbol() != "" {
			return fmt.Errorf("%w: %s activity %s must not move cash", apperrors.ErrValidation, a.Type, a.ActivityID)
		}
	case domain.ActivityTypeDeposit, domain.ActivityTypeWithdrawal, domain.ActivityTypeTransfer, domain.ActivityTypeInterest,
		domain.ActivityTypeFee, domain.ActivityTypeTax, domain.ActivityTypeFX:
		if a.CashSymbol() == "" {
			return fmt.Errorf("%w: %s activity %s has no cash side", apperrors.ErrValidation, a.Type, a.ActivityID)
		}
	}
	return nil
}

// ValidateActivities validates a batch and reports the first failure.
func ValidateActivities(activities []domain.Activity) error {
	for _, a := range activities {
		if err := ValidateActivity(a); err != nil {
			return err
		}
	}
	return nil
}

// ConvertToReporting converts an amount with the rate of its currency to the reporting currency.
func ConvertToReporting(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate)
}
