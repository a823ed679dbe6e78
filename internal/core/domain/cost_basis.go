package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostBasisRecord is the average-cost state of a security right after one activity.
// Prices, commissions and totals are in the reporting currency.
type CostBasisRecord struct {
	ActivityID    string          `json:"activityID"`
	AccountID     string          `json:"accountID"`
	Symbol        string          `json:"symbol"`
	TradeDate     time.Time       `json:"tradeDate"`
	Quantity      decimal.Decimal `json:"quantity"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	PricePerShare decimal.Decimal `json:"pricePerShare"`
	Commission    decimal.Decimal `json:"commission"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	QuantityTotal decimal.Decimal `json:"quantityTotal"`
	ACBTotal      decimal.Decimal `json:"acbTotal"`
	ACBPerShare   decimal.Decimal `json:"acbPerShare"`
	CapitalGain   decimal.Decimal `json:"capitalGain"`
	IsDisposal    bool            `json:"isDisposal"`
	// CrossesZero marks a trade that takes the position through zero to the other side.
	// It is classified by the pre-trade sign only.
	CrossesZero bool `json:"crossesZero"`
}
