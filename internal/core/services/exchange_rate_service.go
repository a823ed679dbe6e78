package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/portfolio_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// exchangeRateService provides business logic for exchange rates and converts amounts
// into the reporting currency.
type exchangeRateService struct {
	BaseService
	rateRepo          portsrepo.ExchangeRateRepositoryFacade
	securityRepo      portsrepo.SecurityReader
	prices            portssvc.PriceReaderSvc
	reportingCurrency string
	cache             *cache.Cache
}

// NewExchangeRateService creates a new exchange rate service. Rates read from the
// exchange_rates table and security currencies are cached for cacheTTL.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, securityRepo portsrepo.SecurityReader, prices portssvc.PriceReaderSvc, reportingCurrency string, cacheTTL time.Duration) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:          rateRepo,
		securityRepo:      securityRepo,
		prices:            prices,
		reportingCurrency: reportingCurrency,
		cache:             cache.New(cacheTTL, 2*cacheTTL),
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	// Input validation (basic format) is handled by DTO binding tags.
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.FromCurrencyCode == req.ToCurrencyCode {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	day, err := dates.Parse(req.DateEffective)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   req.ToCurrencyCode,
		Rate:             req.Rate,
		DateEffective:    day,
		AuditFields: domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}
	s.cache.Flush()
	return &rate, nil
}

// GetExchangeRate retrieves the rate for a currency pair effective on day.
func (s *exchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string, day time.Time) (*domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindExchangeRateAsOf(ctx, fromCode, toCode, dates.Truncate(day))
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

func (s *exchangeRateService) ReportingCurrency() string { return s.reportingCurrency }

// CurrencyRate tries, in order: the reporting currency itself, the daily price of the
// currency's cash security, a stored rate to the reporting currency and the inverse of a
// stored rate from it.
func (s *exchangeRateService) CurrencyRate(ctx context.Context, currency string, day time.Time) (decimal.Decimal, error) {
	if currency == s.reportingCurrency {
		return decimal.NewFromInt(1), nil
	}
	day = dates.Truncate(day)

	price, err := s.prices.PriceOn(ctx, currency, day)
	if err == nil {
		return price, nil
	}
	if !errors.Is(err, apperrors.ErrMissingPrice) {
		return decimal.Zero, err
	}

	key := "rate|" + currency + "|" + day.Format(dates.Format)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(decimal.Decimal), nil
	}
	rate, err := s.storedRate(ctx, currency, day)
	if err != nil {
		return decimal.Zero, err
	}
	s.cache.SetDefault(key, rate)
	return rate, nil
}

func (s *exchangeRateService) storedRate(ctx context.Context, currency string, day time.Time) (decimal.Decimal, error) {
	direct, err := s.rateRepo.FindExchangeRateAsOf(ctx, currency, s.reportingCurrency, day)
	if err == nil {
		return direct.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}

	inverse, err := s.rateRepo.FindExchangeRateAsOf(ctx, s.reportingCurrency, currency, day)
	if err == nil {
		return decimal.NewFromInt(1).Div(inverse.Rate), nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return decimal.Zero, fmt.Errorf("%w: %s to %s on %s", apperrors.ErrMissingExchangeRate,
		currency, s.reportingCurrency, day.Format(dates.Format))
}

// ExchangeRate resolves the currency symbol trades in and converts it.
func (s *exchangeRateService) ExchangeRate(ctx context.Context, symbol string, day time.Time) (decimal.Decimal, error) {
	key := "currency|" + symbol
	currency, ok := s.cache.Get(key)
	if !ok {
		security, err := s.securityRepo.FindSecurityBySymbol(ctx, symbol)
		if err != nil {
			return decimal.Zero, fmt.Errorf("resolving currency of %s: %w", symbol, err)
		}
		currency = security.Currency
		s.cache.Set(key, currency, cache.NoExpiration)
	}
	return s.CurrencyRate(ctx, currency.(string), day)
}
