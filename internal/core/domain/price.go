package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price source priorities. Higher values win overlapping days.
const (
	PriorityLow    = 10
	PriorityMedium = 20
	PriorityHigh   = 30
)

// PriceSourceType selects how a price source produces observations.
type PriceSourceType string

const (
	PriceSourceConstant     PriceSourceType = "Constant"
	PriceSourceInterpolated PriceSourceType = "Interpolated"
	PriceSourceStored       PriceSourceType = "Stored"
	PriceSourceJSONFeed     PriceSourceType = "JSONFeed"
)

// IsValid reports whether t is a known source type.
func (t PriceSourceType) IsValid() bool {
	switch t {
	case PriceSourceConstant, PriceSourceInterpolated, PriceSourceStored, PriceSourceJSONFeed:
		return true
	}
	return false
}

// PriceSource describes one ranked feed of prices for a security.
// Only the fields relevant to Type are set.
type PriceSource struct {
	SourceID string          `json:"sourceID"`
	Symbol   string          `json:"symbol"`
	Type     PriceSourceType `json:"type"`
	Priority int             `json:"priority"`

	// Constant and Interpolated
	Value     decimal.Decimal  `json:"value"`
	StartDate *time.Time       `json:"startDate,omitempty"`
	EndDate   *time.Time       `json:"endDate,omitempty"`
	EndValue  *decimal.Decimal `json:"endValue,omitempty"`

	// JSONFeed
	URL        string `json:"url,omitempty"`
	DatesPath  string `json:"datesPath,omitempty"`
	PricesPath string `json:"pricesPath,omitempty"`

	AuditFields
}

// PriceObservation is one sparse (day, price) pair reported by a source.
type PriceObservation struct {
	SourceID string          `json:"sourceID"`
	Symbol   string          `json:"symbol"`
	Day      time.Time       `json:"day"`
	Price    decimal.Decimal `json:"price"`
}

// DailyPrice is one entry of the merged, dense price series of a security.
type DailyPrice struct {
	Symbol string          `json:"symbol"`
	Day    time.Time       `json:"day"`
	Price  decimal.Decimal `json:"price"`
}
