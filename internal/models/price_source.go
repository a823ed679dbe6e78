package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// PriceSource is a row of the price_sources table.
type PriceSource struct {
	SourceID   string              `db:"source_id"`
	Symbol     string              `db:"symbol"`
	Type       string              `db:"type"`
	Priority   int                 `db:"priority"`
	Value      decimal.Decimal     `db:"value"`
	StartDate  sql.NullTime        `db:"start_date"`
	EndDate    sql.NullTime        `db:"end_date"`
	EndValue   decimal.NullDecimal `db:"end_value"`
	URL        sql.NullString      `db:"url"`
	DatesPath  sql.NullString      `db:"dates_path"`
	PricesPath sql.NullString      `db:"prices_path"`
	AuditFields
}
