package domain

import "time"

// AuditFields records who created and last changed a row.
// Derived rows written by regeneration or price sync are stamped with the system user.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// NewAuditFields stamps a freshly created row.
func NewAuditFields(userID string, at time.Time) AuditFields {
	return AuditFields{CreatedAt: at, CreatedBy: userID, LastUpdatedAt: at, LastUpdatedBy: userID}
}
