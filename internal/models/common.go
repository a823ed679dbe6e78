// Package models holds the row shapes stored in Postgres. Nullable columns use
// sql.Null* types here and plain or pointer fields in the domain.
package models

import "time"

// AuditFields holds standard audit columns.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
