package domain

import (
	"cmp"
	"fmt"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ActivityType is the closed enumeration of canonical activity kinds.
type ActivityType string

const (
	ActivityTypeDeposit        ActivityType = "Deposit"
	ActivityTypeWithdrawal     ActivityType = "Withdrawal"
	ActivityTypeTransfer       ActivityType = "Transfer"
	ActivityTypeBuy            ActivityType = "Buy"
	ActivityTypeSell           ActivityType = "Sell"
	ActivityTypeDividend       ActivityType = "Dividend"
	ActivityTypeInterest       ActivityType = "Interest"
	ActivityTypeFee            ActivityType = "Fee"
	ActivityTypeFX             ActivityType = "FX"
	ActivityTypeTax            ActivityType = "Tax"
	ActivityTypeExpiry         ActivityType = "Expiry"
	ActivityTypeJournal        ActivityType = "Journal"
	ActivityTypeRetCapital     ActivityType = "RetCapital"
	ActivityTypeNotImplemented ActivityType = "NotImplemented"
)

// ActivityTypes lists every member of the enumeration.
var ActivityTypes = []ActivityType{
	ActivityTypeDeposit, ActivityTypeWithdrawal, ActivityTypeTransfer, ActivityTypeBuy,
	ActivityTypeSell, ActivityTypeDividend, ActivityTypeInterest, ActivityTypeFee,
	ActivityTypeFX, ActivityTypeTax, ActivityTypeExpiry, ActivityTypeJournal,
	ActivityTypeRetCapital, ActivityTypeNotImplemented,
}

// IsValid reports whether t belongs to the enumeration.
func (t ActivityType) IsValid() bool {
	for _, known := range ActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseActivityType converts a string to an ActivityType, rejecting unknown values.
func ParseActivityType(s string) (ActivityType, error) {
	t := ActivityType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnmappedActivityType, s)
	}
	return t, nil
}

// IsTrade reports whether the type exchanges a security against cash.
func (t ActivityType) IsTrade() bool {
	return t == ActivityTypeBuy || t == ActivityTypeSell
}

// Activity is an immutable canonical fact derived from a raw broker record.
// Security is the non-cash side, Cash is the currency side. Either may be nil.
type Activity struct {
	ActivityID    string          `json:"activityID"`
	AccountID     string          `json:"accountID"`
	TradeDate     time.Time       `json:"tradeDate"`
	Security      *string         `json:"security,omitempty"`
	Cash          *string         `json:"cash,omitempty"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	NetAmount     decimal.Decimal `json:"netAmount"`
	Commission    decimal.Decimal `json:"commission"` // Signed: negative when it is a cost
	Type          ActivityType    `json:"type"`
	RawActivityID string          `json:"rawActivityID"`
	Seq           int64           `json:"seq"` // Position in the account's history; orders activities of one day
	CreatedAt     time.Time       `json:"createdAt"`
}

// CompareActivities orders activities by trade date, then account, then their position in
// the account's history. Same-day trades must keep their order for the average-cost fold.
func CompareActivities(a, b Activity) int {
	return cmp.Or(
		a.TradeDate.Compare(b.TradeDate),
		cmp.Compare(a.AccountID, b.AccountID),
		cmp.Compare(a.Seq, b.Seq),
	)
}

// SecuritySymbol returns the non-cash symbol or "" when there is none.
func (a Activity) SecuritySymbol() string {
	if a.Security == nil {
		return ""
	}
	return *a.Security
}

// CashSymbol returns the currency-side symbol or "" when there is none.
func (a Activity) CashSymbol() string {
	if a.Cash == nil {
		return ""
	}
	return *a.Cash
}

// HoldingEffects returns how much the activity moves each symbol's quantity in its account.
// Amounts for the same symbol on both sides are summed.
func (a Activity) HoldingEffects() (map[string]decimal.Decimal, error) {
	effects := make(map[string]decimal.Decimal, 2)
	addCash := func() {
		if a.Cash != nil && *a.Cash != "" {
			effects[*a.Cash] = effects[*a.Cash].Add(a.NetAmount)
		}
	}
	addSecurity := func() {
		if a.Security != nil && *a.Security != "" {
			effects[*a.Security] = effects[*a.Security].Add(a.Quantity)
		}
	}

	switch a.Type {
	case ActivityTypeBuy, ActivityTypeSell:
		addSecurity()
		addCash()
	case ActivityTypeDeposit, ActivityTypeWithdrawal, ActivityTypeTransfer, ActivityTypeInterest,
		ActivityTypeFee, ActivityTypeTax, ActivityTypeFX, ActivityTypeRetCapital:
		addCash()
	case ActivityTypeDividend:
		// a dividend never changes share count
		addCash()
	case ActivityTypeExpiry, ActivityTypeJournal:
		addSecurity()
	case ActivityTypeNotImplemented:
	default:
		return nil, fmt.Errorf("%w: %q on activity %s", apperrors.ErrUnmappedActivityType, a.Type, a.ActivityID)
	}
	return effects, nil
}

// RawActivity is a broker record as ingested, before normalization.
// Type and Action are broker vocabulary; the account's broker adapter interprets them.
type RawActivity struct {
	RawActivityID string          `json:"rawActivityID"`
	AccountID     string          `json:"accountID" validate:"required"`
	ExternalID    string          `json:"externalID,omitempty"` // Broker transaction id; imports skip ids already stored
	TradeDate     time.Time       `json:"tradeDate" validate:"required"`
	Type          string          `json:"type" validate:"required"`
	Action        string          `json:"action,omitempty"`
	Symbol        string          `json:"symbol,omitempty"`
	Currency      string          `json:"currency" validate:"required,len=3,uppercase"`
	Description   string          `json:"description,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	NetAmount     decimal.Decimal `json:"netAmount"`
	Commission    decimal.Decimal `json:"commission"`
	Seq           int64           `json:"seq"` // Assigned on insert, keeps the statement's row order
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}
