package services_test

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/core/portfolio"
	portsrepo "github.com/SscSPs/portfolio_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

// fakeTx stands in for a pgx transaction; the mocked repositories never use it.
type fakeTx struct{ pgx.Tx }

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	accounts, _ := args.Get(0).([]domain.Account)
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) ListAllAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	accounts, _ := args.Get(0).([]domain.Account)
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) LockAccountTx(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- Mock SecurityRepository ---
type MockSecurityRepository struct {
	mock.Mock
}

func (m *MockSecurityRepository) FindSecurityBySymbol(ctx context.Context, symbol string) (*domain.Security, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Security), args.Error(1)
}

func (m *MockSecurityRepository) ListSecurities(ctx context.Context) ([]domain.Security, error) {
	args := m.Called(ctx)
	securities, _ := args.Get(0).([]domain.Security)
	return securities, args.Error(1)
}

func (m *MockSecurityRepository) SaveSecurity(ctx context.Context, security domain.Security) error {
	return m.Called(ctx, security).Error(0)
}

func (m *MockSecurityRepository) EnsureSecuritiesTx(ctx context.Context, tx pgx.Tx, securities []domain.Security) ([]domain.Security, error) {
	args := m.Called(ctx, tx, securities)
	created, _ := args.Get(0).([]domain.Security)
	return created, args.Error(1)
}

// --- Mock ActivityRepository ---
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) ListRawActivities(ctx context.Context, accountID string) ([]domain.RawActivity, error) {
	args := m.Called(ctx, accountID)
	raws, _ := args.Get(0).([]domain.RawActivity)
	return raws, args.Error(1)
}

func (m *MockActivityRepository) SaveRawActivities(ctx context.Context, raws []domain.RawActivity) (int, error) {
	args := m.Called(ctx, raws)
	return args.Int(0), args.Error(1)
}

func (m *MockActivityRepository) ListRawActivitiesTx(ctx context.Context, tx pgx.Tx, accountID string) ([]domain.RawActivity, error) {
	args := m.Called(ctx, tx, accountID)
	raws, _ := args.Get(0).([]domain.RawActivity)
	return raws, args.Error(1)
}

func (m *MockActivityRepository) ListActivities(ctx context.Context, accountIDs []string) ([]domain.Activity, error) {
	args := m.Called(ctx, accountIDs)
	activities, _ := args.Get(0).([]domain.Activity)
	return activities, args.Error(1)
}

func (m *MockActivityRepository) LastActivityDate(ctx context.Context, accountID string) (*time.Time, error) {
	args := m.Called(ctx, accountID)
	last, _ := args.Get(0).(*time.Time)
	return last, args.Error(1)
}

// ReplaceActivitiesTx numbers the activities like the database would assign ids.
func (m *MockActivityRepository) ReplaceActivitiesTx(ctx context.Context, tx pgx.Tx, accountID string, activities []domain.Activity) ([]domain.Activity, error) {
	args := m.Called(ctx, tx, accountID, activities)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	stored := make([]domain.Activity, len(activities))
	for i, a := range activities {
		a.ActivityID = fmt.Sprintf("act-%d", i+1)
		a.Seq = int64(i + 1)
		stored[i] = a
	}
	return stored, nil
}

// --- Mock PortfolioRepository ---
type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) ListHoldings(ctx context.Context, accountIDs []string) ([]domain.HoldingInterval, error) {
	args := m.Called(ctx, accountIDs)
	holdings, _ := args.Get(0).([]domain.HoldingInterval)
	return holdings, args.Error(1)
}

func (m *MockPortfolioRepository) ListCostBasis(ctx context.Context, accountIDs []string, symbol string) ([]domain.CostBasisRecord, error) {
	args := m.Called(ctx, accountIDs, symbol)
	records, _ := args.Get(0).([]domain.CostBasisRecord)
	return records, args.Error(1)
}

func (m *MockPortfolioRepository) ListIssues(ctx context.Context, accountID string) ([]domain.RegenerationIssue, error) {
	args := m.Called(ctx, accountID)
	issues, _ := args.Get(0).([]domain.RegenerationIssue)
	return issues, args.Error(1)
}

func (m *MockPortfolioRepository) ReplaceHoldingsTx(ctx context.Context, tx pgx.Tx, accountID string, intervals []domain.HoldingInterval) error {
	return m.Called(ctx, tx, accountID, intervals).Error(0)
}

func (m *MockPortfolioRepository) ReplaceCostBasisTx(ctx context.Context, tx pgx.Tx, accountID string, records []domain.CostBasisRecord) error {
	return m.Called(ctx, tx, accountID, records).Error(0)
}

func (m *MockPortfolioRepository) ReplaceIssuesTx(ctx context.Context, tx pgx.Tx, accountID string, issues []domain.RegenerationIssue) error {
	return m.Called(ctx, tx, accountID, issues).Error(0)
}

// --- Mock PriceRepository ---
type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) ListPriceSources(ctx context.Context, symbol string) ([]domain.PriceSource, error) {
	args := m.Called(ctx, symbol)
	sources, _ := args.Get(0).([]domain.PriceSource)
	return sources, args.Error(1)
}

func (m *MockPriceRepository) FindPriceSourceByType(ctx context.Context, symbol string, sourceType domain.PriceSourceType) (*domain.PriceSource, error) {
	args := m.Called(ctx, symbol, sourceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceSource), args.Error(1)
}

func (m *MockPriceRepository) SavePriceSource(ctx context.Context, source domain.PriceSource) error {
	return m.Called(ctx, source).Error(0)
}

func (m *MockPriceRepository) ListObservations(ctx context.Context, sourceID string, start, end time.Time) ([]domain.PriceObservation, error) {
	args := m.Called(ctx, sourceID, start, end)
	obs, _ := args.Get(0).([]domain.PriceObservation)
	return obs, args.Error(1)
}

func (m *MockPriceRepository) SaveObservations(ctx context.Context, observations []domain.PriceObservation) error {
	return m.Called(ctx, observations).Error(0)
}

func (m *MockPriceRepository) FindDailyPrice(ctx context.Context, symbol string, day time.Time) (*domain.DailyPrice, error) {
	args := m.Called(ctx, symbol, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyPrice), args.Error(1)
}

func (m *MockPriceRepository) ListDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.DailyPrice, error) {
	args := m.Called(ctx, symbol, start, end)
	prices, _ := args.Get(0).([]domain.DailyPrice)
	return prices, args.Error(1)
}

func (m *MockPriceRepository) LastDailyPriceDates(ctx context.Context) (map[string]time.Time, error) {
	args := m.Called(ctx)
	last, _ := args.Get(0).(map[string]time.Time)
	return last, args.Error(1)
}

func (m *MockPriceRepository) ReplaceDailyPrices(ctx context.Context, symbol string, start, end time.Time, prices []domain.DailyPrice) error {
	return m.Called(ctx, symbol, start, end, prices).Error(0)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	return m.Called(ctx, rate).Error(0)
}

func (m *MockExchangeRateRepository) FindExchangeRateAsOf(ctx context.Context, fromCode, toCode string, day time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCode, toCode string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	rates, _ := args.Get(0).([]domain.ExchangeRate)
	return rates, args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetRealizedGainsByYear(ctx context.Context, accountIDs []string) ([]domain.RealizedGain, error) {
	args := m.Called(ctx, accountIDs)
	gains, _ := args.Get(0).([]domain.RealizedGain)
	return gains, args.Error(1)
}

func (m *MockReportingRepository) GetCommissionsByYear(ctx context.Context, accountIDs []string) ([]domain.YearAmount, error) {
	args := m.Called(ctx, accountIDs)
	amounts, _ := args.Get(0).([]domain.YearAmount)
	return amounts, args.Error(1)
}

// --- Fake feed factory ---
type fakeFeeds struct {
	feeds map[string]portfolio.PriceFeed
}

func (f fakeFeeds) Feed(source domain.PriceSource) (portfolio.PriceFeed, error) {
	return f.feeds[source.SourceID], nil
}

// seriesFeed serves observations from an in-memory series.
type seriesFeed struct {
	rank   int
	prices []domain.PriceObservation
}

func (f seriesFeed) Priority() int { return f.rank }

func (f seriesFeed) Observations(_ context.Context, symbol string, start, end time.Time) ([]domain.PriceObservation, error) {
	var out []domain.PriceObservation
	for _, o := range f.prices {
		if o.Symbol != "" && o.Symbol != symbol {
			continue
		}
		if o.Day.Before(start) || o.Day.After(end) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// failingFeed always errors.
type failingFeed struct{ rank int }

func (f failingFeed) Priority() int { return f.rank }

func (f failingFeed) Observations(context.Context, string, time.Time, time.Time) ([]domain.PriceObservation, error) {
	return nil, context.DeadlineExceeded
}

var (
	_ portsrepo.UserRepositoryFacade         = (*MockUserRepository)(nil)
	_ portsrepo.AccountRepositoryWithTx      = (*MockAccountRepository)(nil)
	_ portsrepo.SecurityRepositoryFacade     = (*MockSecurityRepository)(nil)
	_ portsrepo.ActivityRepositoryFacade     = (*MockActivityRepository)(nil)
	_ portsrepo.PortfolioRepositoryFacade    = (*MockPortfolioRepository)(nil)
	_ portsrepo.PriceRepositoryFacade        = (*MockPriceRepository)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)
	_ portsrepo.ReportingRepository          = (*MockReportingRepository)(nil)
)

// --- Mock PriceReaderSvc ---
type MockPriceReader struct {
	mock.Mock
}

func (m *MockPriceReader) PriceOn(ctx context.Context, symbol string, day time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, symbol, day)
	price, _ := args.Get(0).(decimal.Decimal)
	return price, args.Error(1)
}

func (m *MockPriceReader) ListPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.DailyPrice, error) {
	args := m.Called(ctx, symbol, start, end)
	prices, _ := args.Get(0).([]domain.DailyPrice)
	return prices, args.Error(1)
}

// --- Mock PriceSvcFacade ---
type MockPriceService struct {
	MockPriceReader
}

func (m *MockPriceService) CreatePriceSource(ctx context.Context, symbol string, req dto.CreatePriceSourceRequest, userID string) (*domain.PriceSource, error) {
	args := m.Called(ctx, symbol, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceSource), args.Error(1)
}

func (m *MockPriceService) ListPriceSources(ctx context.Context, symbol string) ([]domain.PriceSource, error) {
	args := m.Called(ctx, symbol)
	sources, _ := args.Get(0).([]domain.PriceSource)
	return sources, args.Error(1)
}

func (m *MockPriceService) EnsureDefaultSources(ctx context.Context, securities []domain.Security) error {
	return m.Called(ctx, securities).Error(0)
}

func (m *MockPriceService) AddManualPrice(ctx context.Context, symbol string, req dto.ManualPriceRequest, userID string) (*domain.PriceObservation, error) {
	args := m.Called(ctx, symbol, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceObservation), args.Error(1)
}

func (m *MockPriceService) SyncPrices(ctx context.Context, symbol string, start, end time.Time) (int, error) {
	args := m.Called(ctx, symbol, start, end)
	return args.Int(0), args.Error(1)
}

func (m *MockPriceService) SyncAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// --- Mock ReportingRateSvc ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) ReportingCurrency() string { return "CAD" }

func (m *MockRateService) CurrencyRate(ctx context.Context, currency string, day time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, currency, day)
	rate, _ := args.Get(0).(decimal.Decimal)
	return rate, args.Error(1)
}

func (m *MockRateService) ExchangeRate(ctx context.Context, symbol string, day time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, symbol, day)
	rate, _ := args.Get(0).(decimal.Decimal)
	return rate, args.Error(1)
}

var (
	_ portssvc.PriceSvcFacade   = (*MockPriceService)(nil)
	_ portssvc.PriceReaderSvc   = (*MockPriceReader)(nil)
	_ portssvc.ReportingRateSvc = (*MockRateService)(nil)
)
