package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SecurityType classifies a security.
type SecurityType string

const (
	SecurityTypeStock      SecurityType = "Stock"
	SecurityTypeOption     SecurityType = "Option"
	SecurityTypeOptionMini SecurityType = "OptionMini"
	SecurityTypeCash       SecurityType = "Cash"
	SecurityTypeMutualFund SecurityType = "MutualFund"
)

// IsValid reports whether t is a known security type.
func (t SecurityType) IsValid() bool {
	switch t {
	case SecurityTypeStock, SecurityTypeOption, SecurityTypeOptionMini, SecurityTypeCash, SecurityTypeMutualFund:
		return true
	}
	return false
}

// PriceMultiplier is the number of underlying units one contract represents.
func (t SecurityType) PriceMultiplier() decimal.Decimal {
	switch t {
	case SecurityTypeOption:
		return decimal.NewFromInt(100)
	case SecurityTypeOptionMini:
		return decimal.NewFromInt(10)
	default:
		return decimal.NewFromInt(1)
	}
}

// Security is anything that can be held in an account.
// Cash securities represent currency balances and use the currency code as symbol.
type Security struct {
	Symbol      string       `json:"symbol"` // Primary Key
	Currency    string       `json:"currency"`
	Type        SecurityType `json:"type"`
	Description string       `json:"description"`
	AuditFields
}

// IsCash reports whether the security is a currency balance.
func (s Security) IsCash() bool { return s.Type == SecurityTypeCash }

// NewCashSecurity returns the cash security for a currency code.
func NewCashSecurity(currency string) Security {
	return Security{Symbol: currency, Currency: currency, Type: SecurityTypeCash, Description: currency + " Cash"}
}

// OptionSymbol builds the canonical option symbol: the underlying padded to six characters,
// the expiry as yymmdd, C or P, and the strike times 1000 padded to eight digits.
func OptionSymbol(underlying string, expiry time.Time, callPut string, strike decimal.Decimal) (string, error) {
	var cp string
	switch strings.ToUpper(callPut) {
	case "C", "CALL":
		cp = "C"
	case "P", "PUT":
		cp = "P"
	default:
		return "", fmt.Errorf("invalid option side %q", callPut)
	}
	return fmt.Sprintf("%-6s%s%s%08d", strings.ToUpper(underlying), expiry.Format("060102"), cp, strike.Shift(3).IntPart()), nil
}
