package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoldingInterval is a maximal run of days over which an account held a constant,
// non-zero quantity of a security. EndDate is inclusive; nil means still open.
type HoldingInterval struct {
	AccountID string          `json:"accountID"`
	Symbol    string          `json:"symbol"`
	Quantity  decimal.Decimal `json:"quantity"`
	StartDate time.Time       `json:"startDate"`
	EndDate   *time.Time      `json:"endDate,omitempty"`
}

// IsOpen reports whether the interval has no end date.
func (h HoldingInterval) IsOpen() bool { return h.EndDate == nil }

// Covers reports whether day falls inside the interval.
func (h HoldingInterval) Covers(day time.Time) bool {
	if day.Before(h.StartDate) {
		return false
	}
	return h.EndDate == nil || !day.After(*h.EndDate)
}
