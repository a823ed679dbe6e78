package domain

import "time"

// DefaultAccountCreationDate is used as the first sync day when an account has no recorded creation date.
var DefaultAccountCreationDate = time.Date(2009, time.January, 1, 0, 0, 0, 0, time.UTC)

// Account is a brokerage account. It exclusively owns its raw activities, activities,
// holding intervals and cost basis records.
type Account struct {
	AccountID    string    `json:"accountID"` // Primary Key (UUID)
	UserID       string    `json:"userID"`    // Owning user
	Broker       string    `json:"broker"`    // Name of the broker adapter normalizing its raw activities
	BrokerRef    string    `json:"brokerRef"` // Account number at the broker, used to filter statement imports
	DisplayName  string    `json:"displayName"`
	Taxable      bool      `json:"taxable"`
	CreationDate time.Time `json:"creationDate"`
	AuditFields
}

// SyncStartDate returns the first day that still needs to be fetched from the broker:
// the day after the last known activity, or the account creation date.
func (a Account) SyncStartDate(lastActivity *time.Time) time.Time {
	if lastActivity != nil {
		return lastActivity.AddDate(0, 0, 1)
	}
	if a.CreationDate.IsZero() {
		return DefaultAccountCreationDate
	}
	return a.CreationDate
}
