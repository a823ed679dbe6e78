package dto

// CreateSecurityRequest defines the data needed to register a security.
type CreateSecurityRequest struct {
	Symbol      string `json:"symbol" binding:"required,max=32"`
	Currency    string `json:"currency" binding:"required,len=3,uppercase"`
	Type        string `json:"type" binding:"required,oneof=Stock Option OptionMini Cash MutualFund"`
	Description string `json:"description"`
}
