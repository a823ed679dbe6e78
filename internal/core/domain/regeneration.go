package domain

import "time"

// RegenerationStage names the derivation that reported an issue.
type RegenerationStage string

const (
	StageHoldings  RegenerationStage = "holdings"
	StageCostBasis RegenerationStage = "cost_basis"
)

// RegenerationIssue flags one (account, security) pair that needs attention after a regeneration.
type RegenerationIssue struct {
	IssueID   string            `json:"issueID"`
	AccountID string            `json:"accountID"`
	Symbol    string            `json:"symbol"`
	Stage     RegenerationStage `json:"stage"`
	Message   string            `json:"message"`
	Day       *time.Time        `json:"day,omitempty"` // Trade date the derivation stopped at
	CreatedAt time.Time         `json:"createdAt"`
}

// RegenerationResult summarizes one account regeneration.
type RegenerationResult struct {
	AccountID        string              `json:"accountID"`
	Activities       int                 `json:"activities"`
	HoldingIntervals int                 `json:"holdingIntervals"`
	CostBasisRecords int                 `json:"costBasisRecords"`
	Issues           []RegenerationIssue `json:"issues"`
}
