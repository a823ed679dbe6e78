package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Activity is a row of the activities table.
type Activity struct {
	ActivityID    string          `db:"activity_id"`
	AccountID     string          `db:"account_id"`
	TradeDate     time.Time       `db:"trade_date"`
	Security      sql.NullString  `db:"security"`
	Cash          sql.NullString  `db:"cash"`
	Description   string          `db:"description"`
	Quantity      decimal.Decimal `db:"quantity"`
	Price         decimal.Decimal `db:"price"`
	NetAmount     decimal.Decimal `db:"net_amount"`
	Commission    decimal.Decimal `db:"commission"`
	Type          string          `db:"type"`
	RawActivityID string          `db:"raw_activity_id"`
	Seq           int64           `db:"seq"`
	CreatedAt     time.Time       `db:"created_at"`
}

// RawActivity is a row of the raw_activities table.
type RawActivity struct {
	RawActivityID string          `db:"raw_activity_id"`
	AccountID     string          `db:"account_id"`
	ExternalID    sql.NullString  `db:"external_id"`
	TradeDate     time.Time       `db:"trade_date"`
	Type          string          `db:"type"`
	Action        string          `db:"action"`
	Symbol        string          `db:"symbol"`
	Currency      string          `db:"currency"`
	Description   string          `db:"description"`
	Quantity      decimal.Decimal `db:"quantity"`
	Price         decimal.Decimal `db:"price"`
	NetAmount     decimal.Decimal `db:"net_amount"`
	Commission    decimal.Decimal `db:"commission"`
	Seq           int64           `db:"seq"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}
