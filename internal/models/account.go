package models

import (
	"database/sql"
	"time"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID    string         `db:"account_id"`
	UserID       string         `db:"user_id"`
	Broker       string         `db:"broker"`
	BrokerRef    sql.NullString `db:"broker_ref"`
	DisplayName  string         `db:"display_name"`
	Taxable      bool           `db:"taxable"`
	CreationDate time.Time      `db:"creation_date"`
	AuditFields
}
