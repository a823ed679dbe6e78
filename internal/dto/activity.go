package dto

import (
	"github.com/shopspring/decimal"
)

// CreateRawActivityRequest defines one broker record entered by hand or pushed by a client.
// Type and Action use the vocabulary of the account's broker.
type CreateRawActivityRequest struct {
	TradeDate   string          `json:"tradeDate" binding:"required,datetime=2006-01-02"`
	Type        string          `json:"type" binding:"required"`
	Action      string          `json:"action"`
	Symbol      string          `json:"symbol"`
	Currency    string          `json:"currency" binding:"required,len=3,uppercase"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	NetAmount   decimal.Decimal `json:"netAmount"`
	Commission  decimal.Decimal `json:"commission"`
	ExternalID  string          `json:"externalID"`
}

// ImportResponse reports the outcome of a statement import.
type ImportResponse struct {
	Parsed   int `json:"parsed"`
	Inserted int `json:"inserted"`
}

// HoldingsParams defines the query parameters for listing holdings.
type HoldingsParams struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// CostBasisParams defines the query parameters for listing cost basis records.
type CostBasisParams struct {
	Symbol string `form:"symbol"`
}
