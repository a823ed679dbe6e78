package mapping

import (
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/models"
)

// ToModelActivity converts a domain Activity to a model Activity
func ToModelActivity(d domain.Activity) models.Activity {
	return models.Activity{
		ActivityID:    d.ActivityID,
		AccountID:     d.AccountID,
		TradeDate:     d.TradeDate,
		Security:      nullStringPtr(d.Security),
		Cash:          nullStringPtr(d.Cash),
		Description:   d.Description,
		Quantity:      d.Quantity,
		Price:         d.Price,
		NetAmount:     d.NetAmount,
		Commission:    d.Commission,
		Type:          string(d.Type),
		RawActivityID: d.RawActivityID,
		Seq:           d.Seq,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainActivity converts a model Activity to a domain Activity.
// The type is taken as stored; holding effects reject unknown values later.
func ToDomainActivity(m models.Activity) domain.Activity {
	return domain.Activity{
		ActivityID:    m.ActivityID,
		AccountID:     m.AccountID,
		TradeDate:     m.TradeDate.UTC(),
		Security:      stringPtr(m.Security),
		Cash:          stringPtr(m.Cash),
		Description:   m.Description,
		Quantity:      m.Quantity,
		Price:         m.Price,
		NetAmount:     m.NetAmount,
		Commission:    m.Commission,
		Type:          domain.ActivityType(m.Type),
		RawActivityID: m.RawActivityID,
		Seq:           m.Seq,
		CreatedAt:     m.CreatedAt,
	}
}

// ToModelRawActivity converts a domain RawActivity to a model RawActivity
func ToModelRawActivity(d domain.RawActivity) models.RawActivity {
	return models.RawActivity{
		RawActivityID: d.RawActivityID,
		AccountID:     d.AccountID,
		ExternalID:    nullString(d.ExternalID),
		TradeDate:     d.TradeDate,
		Type:          d.Type,
		Action:        d.Action,
		Symbol:        d.Symbol,
		Currency:      d.Currency,
		Description:   d.Description,
		Quantity:      d.Quantity,
		Price:         d.Price,
		NetAmount:     d.NetAmount,
		Commission:    d.Commission,
		Seq:           d.Seq,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainRawActivity converts a model RawActivity to a domain RawActivity
func ToDomainRawActivity(m models.RawActivity) domain.RawActivity {
	return domain.RawActivity{
		RawActivityID: m.RawActivityID,
		AccountID:     m.AccountID,
		ExternalID:    m.ExternalID.String,
		TradeDate:     m.TradeDate.UTC(),
		Type:          m.Type,
		Action:        m.Action,
		Symbol:        m.Symbol,
		Currency:      m.Currency,
		Description:   m.Description,
		Quantity:      m.Quantity,
		Price:         m.Price,
		NetAmount:     m.NetAmount,
		Commission:    m.Commission,
		Seq:           m.Seq,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
