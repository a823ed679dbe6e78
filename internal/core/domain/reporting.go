package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalGainSummaryRow is the unrealized position of one security across taxable accounts.
// A row that needs attention has incomplete figures: its cost basis could not be derived
// or it has no market price. Its amounts must not be read as zero.
type CapitalGainSummaryRow struct {
	Symbol         string           `json:"symbol"`
	Quantity       decimal.Decimal  `json:"quantity"`
	BookValue      decimal.Decimal  `json:"bookValue"` // ACB total
	Price          decimal.Decimal  `json:"price"`     // Reporting currency
	MarketValue    decimal.Decimal  `json:"marketValue"`
	PendingGain    decimal.Decimal  `json:"pendingGain"`
	PercentGain    *decimal.Decimal `json:"percentGain,omitempty"`
	NeedsAttention bool             `json:"needsAttention,omitempty"`
	Issue          string           `json:"issue,omitempty"`
}

// Flag marks the row as needing attention, keeping the first reason.
func (r *CapitalGainSummaryRow) Flag(issue string) {
	if r.NeedsAttention {
		return
	}
	r.NeedsAttention, r.Issue = true, issue
}

// RealizedGain is the capital gain realized on one security in one year.
// When NeedsAttention is set, gains of that security from Year on are incomplete.
type RealizedGain struct {
	Year           int             `json:"year"`
	Symbol         string          `json:"symbol"`
	Gain           decimal.Decimal `json:"gain"`
	NeedsAttention bool            `json:"needsAttention,omitempty"`
	Issue          string          `json:"issue,omitempty"`
}

// YearAmount is a yearly total in the reporting currency.
type YearAmount struct {
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
}

// ValuationRow is one held position valued on a day.
type ValuationRow struct {
	AccountID    string          `json:"accountID"`
	Symbol       string          `json:"symbol"`
	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Value        decimal.Decimal `json:"value"` // Reporting currency
}

// Valuation is the value of every position held on Day.
type Valuation struct {
	Day   time.Time       `json:"day"`
	Rows  []ValuationRow  `json:"rows"`
	Total decimal.Decimal `json:"total"`
}
