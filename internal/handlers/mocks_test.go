package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}
func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}
func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) ValidateAccessToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, userID)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	accounts, _ := args.Get(0).([]domain.Account)
	return accounts, args.Error(1)
}
func (m *MockAccountService) LastActivityDate(ctx context.Context, accountID string) (*time.Time, error) {
	args := m.Called(ctx, accountID)
	d, _ := args.Get(0).(*time.Time)
	return d, args.Error(1)
}
func (m *MockAccountService) AuthorizeAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}

// --- Mock ActivityService ---
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) AddRawActivity(ctx context.Context, accountID string, req dto.CreateRawActivityRequest, userID string) (*domain.RawActivity, error) {
	args := m.Called(ctx, accountID, req, userID)
	raw, _ := args.Get(0).(*domain.RawActivity)
	return raw, args.Error(1)
}
func (m *MockActivityService) ImportCSV(ctx context.Context, accountID string, r io.Reader, userID string) (int, int, error) {
	args := m.Called(ctx, accountID, r, userID)
	return args.Int(0), args.Int(1), args.Error(2)
}
func (m *MockActivityService) ListRawActivities(ctx context.Context, accountID string, userID string) ([]domain.RawActivity, error) {
	args := m.Called(ctx, accountID, userID)
	raws, _ := args.Get(0).([]domain.RawActivity)
	return raws, args.Error(1)
}
func (m *MockActivityService) ListActivities(ctx context.Context, accountID string, userID string) ([]domain.Activity, error) {
	args := m.Called(ctx, accountID, userID)
	activities, _ := args.Get(0).([]domain.Activity)
	return activities, args.Error(1)
}

// --- Mock PortfolioService ---
type MockPortfolioService struct {
	mock.Mock
}

func (m *MockPortfolioService) RegenerateAccount(ctx context.Context, accountID string) (*domain.RegenerationResult, error) {
	args := m.Called(ctx, accountID)
	res, _ := args.Get(0).(*domain.RegenerationResult)
	return res, args.Error(1)
}
func (m *MockPortfolioService) RegenerateAll(ctx context.Context) ([]domain.RegenerationResult, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]domain.RegenerationResult)
	return res, args.Error(1)
}
func (m *MockPortfolioService) ListHoldings(ctx context.Context, accountID string, userID string, asOf *time.Time) ([]domain.HoldingInterval, error) {
	args := m.Called(ctx, accountID, userID, asOf)
	h, _ := args.Get(0).([]domain.HoldingInterval)
	return h, args.Error(1)
}
func (m *MockPortfolioService) ListCostBasis(ctx context.Context, accountID string, userID string, symbol string) ([]domain.CostBasisRecord, error) {
	args := m.Called(ctx, accountID, userID, symbol)
	r, _ := args.Get(0).([]domain.CostBasisRecord)
	return r, args.Error(1)
}
func (m *MockPortfolioService) ListIssues(ctx context.Context, accountID string, userID string) ([]domain.RegenerationIssue, error) {
	args := m.Called(ctx, accountID, userID)
	i, _ := args.Get(0).([]domain.RegenerationIssue)
	return i, args.Error(1)
}

// --- Mock SecurityService ---
type MockSecurityService struct {
	mock.Mock
}

func (m *MockSecurityService) CreateSecurity(ctx context.Context, req dto.CreateSecurityRequest, userID string) (*domain.Security, error) {
	args := m.Called(ctx, req, userID)
	s, _ := args.Get(0).(*domain.Security)
	return s, args.Error(1)
}
func (m *MockSecurityService) GetSecurity(ctx context.Context, symbol string) (*domain.Security, error) {
	args := m.Called(ctx, symbol)
	s, _ := args.Get(0).(*domain.Security)
	return s, args.Error(1)
}
func (m *MockSecurityService) ListSecurities(ctx context.Context) ([]domain.Security, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]domain.Security)
	return s, args.Error(1)
}

// --- Mock PriceService ---
type MockPriceService struct {
	mock.Mock
}

func (m *MockPriceService) CreatePriceSource(ctx context.Context, symbol string, req dto.CreatePriceSourceRequest, userID string) (*domain.PriceSource, error) {
	args := m.Called(ctx, symbol, req, userID)
	s, _ := args.Get(0).(*domain.PriceSource)
	return s, args.Error(1)
}
func (m *MockPriceService) ListPriceSources(ctx context.Context, symbol string) ([]domain.PriceSource, error) {
	args := m.Called(ctx, symbol)
	s, _ := args.Get(0).([]domain.PriceSource)
	return s, args.Error(1)
}
func (m *MockPriceService) EnsureDefaultSources(ctx context.Context, securities []domain.Security) error {
	return m.Called(ctx, securities).Error(0)
}
func (m *MockPriceService) AddManualPrice(ctx context.Context, symbol string, req dto.ManualPriceRequest, userID string) (*domain.PriceObservation, error) {
	args := m.Called(ctx, symbol, req, userID)
	o, _ := args.Get(0).(*domain.PriceObservation)
	return o, args.Error(1)
}
func (m *MockPriceService) SyncPrices(ctx context.Context, symbol string, start, end time.Time) (int, error) {
	args := m.Called(ctx, symbol, start, end)
	return args.Int(0), args.Error(1)
}
func (m *MockPriceService) SyncAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockPriceService) PriceOn(ctx context.Context, symbol string, day time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, symbol, day)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockPriceService) ListPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.DailyPrice, error) {
	args := m.Called(ctx, symbol, start, end)
	p, _ := args.Get(0).([]domain.DailyPrice)
	return p, args.Error(1)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) CapitalGainSummary(ctx context.Context, userID string) ([]domain.CapitalGainSummaryRow, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]domain.CapitalGainSummaryRow)
	return r, args.Error(1)
}
func (m *MockReportingService) RealizedGainsByYear(ctx context.Context, userID string) ([]domain.RealizedGain, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]domain.RealizedGain)
	return r, args.Error(1)
}
func (m *MockReportingService) CommissionsByYear(ctx context.Context, userID string) ([]domain.YearAmount, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]domain.YearAmount)
	return r, args.Error(1)
}
func (m *MockReportingService) Valuation(ctx context.Context, userID string, day time.Time) (*domain.Valuation, error) {
	args := m.Called(ctx, userID, day)
	v, _ := args.Get(0).(*domain.Valuation)
	return v, args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.UserSvcFacade      = (*MockUserService)(nil)
	_ portssvc.TokenSvcFacade     = (*MockTokenService)(nil)
	_ portssvc.AccountSvcFacade   = (*MockAccountService)(nil)
	_ portssvc.ActivitySvcFacade  = (*MockActivityService)(nil)
	_ portssvc.PortfolioSvcFacade = (*MockPortfolioService)(nil)
	_ portssvc.SecuritySvcFacade  = (*MockSecurityService)(nil)
	_ portssvc.PriceSvcFacade     = (*MockPriceService)(nil)
	_ portssvc.ReportingService   = (*MockReportingService)(nil)
)
