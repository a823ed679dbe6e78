package dto

import (
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new brokerage account.
type CreateAccountRequest struct {
	Broker       string `json:"broker" binding:"required"`
	BrokerRef    string `json:"brokerRef"`
	DisplayName  string `json:"displayName" binding:"required"`
	Taxable      bool   `json:"taxable"`
	CreationDate string `json:"creationDate" binding:"omitempty,datetime=2006-01-02"` // Defaults to 2009-01-01
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string    `json:"accountID"`
	Broker        string    `json:"broker"`
	BrokerRef     string    `json:"brokerRef,omitempty"`
	DisplayName   string    `json:"displayName"`
	Taxable       bool      `json:"taxable"`
	CreationDate  time.Time `json:"creationDate"`
	SyncStartDate time.Time `json:"syncStartDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
// lastActivity is the latest trade date of the account, if any.
func ToAccountResponse(acc *domain.Account, lastActivity *time.Time) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Broker:        acc.Broker,
		BrokerRef:     acc.BrokerRef,
		DisplayName:   acc.DisplayName,
		Taxable:       acc.Taxable,
		CreationDate:  acc.CreationDate,
		SyncStartDate: acc.SyncStartDate(lastActivity),
		CreatedAt:     acc.CreatedAt,
	}
}

// ToListAccountResponse converts accounts for listing; sync dates are not resolved.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i], nil)
	}
	return out
}
