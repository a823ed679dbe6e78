package mapping

import (
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelPriceSource converts a domain PriceSource to a model PriceSource
func ToModelPriceSource(d domain.PriceSource) models.PriceSource {
	m := models.PriceSource{
		SourceID:    d.SourceID,
		Symbol:      d.Symbol,
		Type:        string(d.Type),
		Priority:    d.Priority,
		Value:       d.Value,
		StartDate:   nullTime(d.StartDate),
		EndDate:     nullTime(d.EndDate),
		URL:         nullString(d.URL),
		DatesPath:   nullString(d.DatesPath),
		PricesPath:  nullString(d.PricesPath),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.EndValue != nil {
		m.EndValue = decimal.NewNullDecimal(*d.EndValue)
	}
	return m
}

// ToDomainPriceSource converts a model PriceSource to a domain PriceSource
func ToDomainPriceSource(m models.PriceSource) domain.PriceSource {
	d := domain.PriceSource{
		SourceID:    m.SourceID,
		Symbol:      m.Symbol,
		Type:        domain.PriceSourceType(m.Type),
		Priority:    m.Priority,
		Value:       m.Value,
		StartDate:   timePtr(m.StartDate),
		EndDate:     timePtr(m.EndDate),
		URL:         m.URL.String,
		DatesPath:   m.DatesPath.String,
		PricesPath:  m.PricesPath.String,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.EndValue.Valid {
		v := m.EndValue.Decimal
		d.EndValue = &v
	}
	return d
}
