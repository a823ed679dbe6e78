package domain

// User represents a user of the application in the domain.
// A user owns brokerage accounts and everything derived from them.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}
