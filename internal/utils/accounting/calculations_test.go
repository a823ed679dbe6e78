package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestImpliedCommission(t *testing.T) {
	tests := []struct {
		name               string
		qty, price, net    string
		expectedCommission string
	}{
		{"buy with commission", "100", "10", "-1005", "-5"},
		{"sell with commission", "-50", "12", "595", "-5"},
		{"commission free", "10", "25.5", "-255", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImpliedCommission(decimal.RequireFromString(tt.qty), decimal.RequireFromString(tt.price), decimal.RequireFromString(tt.net))
			assert.True(t, decimal.RequireFromString(tt.expectedCommission).Equal(got), "got %s", got)
		})
	}
}

func TestValidateActivity(t *testing.T) {
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		activity domain.Activity
		wantErr  error
	}{
		{
			name:     "valid buy",
			activity: domain.Activity{Type: domain.ActivityTypeBuy, TradeDate: day, Security: strPtr("XIU.TO"), Cash: strPtr("CAD"), Quantity: decimal.NewFromInt(10)},
		},
		{
			name:     "buy without security",
			activity: domain.Activity{Type: domain.ActivityTypeBuy, TradeDate: day, Cash: strPtr("CAD"), Quantity: decimal.NewFromInt(10)},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name:     "sell with positive quantity",
			activity: domain.Activity{Type: domain.ActivityTypeSell, TradeDate: day, Security: strPtr("XIU.TO"), Quantity: decimal.NewFromInt(10)},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name:     "dividend with quantity",
			activity: domain.Activity{Type: domain.ActivityTypeDividend, TradeDate: day, Security: strPtr("XIU.TO"), Cash: strPtr("CAD"), Quantity: decimal.NewFromInt(1)},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name:     "journal moving cash",
			activity: domain.Activity{Type: domain.ActivityTypeJournal, TradeDate: day, Security: strPtr("XIU.TO"), Cash: strPtr("CAD")},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name:     "deposit without cash",
			activity: domain.Activity{Type: domain.ActivityTypeDeposit, TradeDate: day, NetAmount: decimal.NewFromInt(100)},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name:     "missing trade date",
			activity: domain.Activity{Type: domain.ActivityTypeDeposit, Cash: strPtr("CAD")},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name:     "unknown type",
			activity: domain.Activity{Type: "Split", TradeDate: day},
			wantErr:  apperrors.ErrUnmappedActivityType,
		},
		{
			name:     "not implemented is accepted",
			activity: domain.Activity{Type: domain.ActivityTypeNotImplemented, TradeDate: day},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateActivity(tt.activity)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateActivities_ReportsFirstFailure(t *testing.T) {
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	err := ValidateActivities([]domain.Activity{
		{ActivityID: "ok", Type: domain.ActivityTypeDeposit, TradeDate: day, Cash: strPtr("CAD")},
		{ActivityID: "bad", Type: domain.ActivityTypeFee, TradeDate: day},
	})
	assert.ErrorContains(t, err, "bad")
}

func TestConvertToReporting(t *testing.T) {
	got := ConvertToReporting(decimal.RequireFromString("100"), decimal.RequireFromString("1.3512"))
	assert.Equal(t, "135.12", got.String())
}
