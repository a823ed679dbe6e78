package dto

import (
	"github.com/shopspring/decimal"
)

// CreatePriceSourceRequest defines a new price source for a security.
type CreatePriceSourceRequest struct {
	Type       string           `json:"type" binding:"required,oneof=Constant Interpolated Stored JSONFeed"`
	Priority   int              `json:"priority" binding:"omitempty,min=1"`
	Value      decimal.Decimal  `json:"value"`
	StartDate  string           `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string           `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	EndValue   *decimal.Decimal `json:"endValue"`
	URL        string           `json:"url" binding:"omitempty,url"`
	DatesPath  string           `json:"datesPath"`
	PricesPath string           `json:"pricesPath"`
}

// ManualPriceRequest records one observed price.
type ManualPriceRequest struct {
	Day   string          `json:"day" binding:"required,datetime=2006-01-02"`
	Price decimal.Decimal `json:"price" binding:"required"`
}

// PriceRangeParams selects a day range. Missing bounds default per endpoint.
type PriceRangeParams struct {
	Start string `form:"start" json:"start" binding:"omitempty,datetime=2006-01-02"`
	End   string `form:"end" json:"end" binding:"omitempty,datetime=2006-01-02"`
}

// SyncPricesResponse reports how many merged days were written.
type SyncPricesResponse struct {
	Symbol string `json:"symbol"`
	Days   int    `json:"days"`
}
