package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
	"github.com/SscSPs/portfolio_tracker/internal/handlers"
	"github.com/SscSPs/portfolio_tracker/internal/platform/config"
	"github.com/SscSPs/portfolio_tracker/internal/utils"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "portfolio-test"
	testUserID = "user-1"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	users     *MockUserService
	tokens    *MockTokenService
	accounts  *MockAccountService
	activity  *MockActivityService
	portfolio *MockPortfolioService
	security  *MockSecurityService
	prices    *MockPriceService
	reporting *MockReportingService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.users = new(MockUserService)
	suite.tokens = new(MockTokenService)
	suite.accounts = new(MockAccountService)
	suite.activity = new(MockActivityService)
	suite.portfolio = new(MockPortfolioService)
	suite.security = new(MockSecurityService)
	suite.prices = new(MockPriceService)
	suite.reporting = new(MockReportingService)

	cfg := &config.Config{
		IsProduction:   true,
		JWTSecret:      testSecret,
		JWTIssuer:      testIssuer,
		RateLimit:      "1000-M",
		LoginRateLimit: "2-M",
	}
	err := handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		User:      suite.users,
		Token:     suite.tokens,
		Account:   suite.accounts,
		Security:  suite.security,
		Activity:  suite.activity,
		Portfolio: suite.portfolio,
		Price:     suite.prices,
		Reporting: suite.reporting,
	})
	suite.Require().NoError(err)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.users.AssertExpectations(suite.T())
	suite.accounts.AssertExpectations(suite.T())
	suite.activity.AssertExpectations(suite.T())
	suite.portfolio.AssertExpectations(suite.T())
	suite.prices.AssertExpectations(suite.T())
	suite.reporting.AssertExpectations(suite.T())
}

// generateTestToken creates a JWT the auth middleware accepts.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	token, _, err := utils.GenerateJWT(userID, testSecret, time.Hour, testIssuer, time.Now())
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](suite *HandlerTestSuite, w *httptest.ResponseRecorder) T {
	var out T
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestProtectedRoute_RequiresToken() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Broker: "rbc", DisplayName: "RBC Direct", Taxable: true, CreationDate: "2020-05-01"}
	created := &domain.Account{
		AccountID: "acc-1", UserID: testUserID, Broker: "rbc", DisplayName: "RBC Direct",
		Taxable: true, CreationDate: dates.MustParse("2020-05-01"),
	}
	suite.accounts.On("CreateAccount", mock.Anything, req, testUserID).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	resp := decodeBody[dto.AccountResponse](suite, w)
	suite.Equal("acc-1", resp.AccountID)
	suite.True(resp.SyncStartDate.Equal(created.CreationDate))
}

func (suite *HandlerTestSuite) TestCreateAccount_BindError() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{"broker": "rbc"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Invalid request format")
}

func (suite *HandlerTestSuite) TestCreateAccount_UnknownBroker() {
	req := dto.CreateAccountRequest{Broker: "ib", DisplayName: "IB"}
	suite.accounts.On("CreateAccount", mock.Anything, req, testUserID).
		Return(nil, fmt.Errorf("%w: broker ib is not enabled", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", req)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetAccount_SyncStartsAtLastActivity() {
	acc := &domain.Account{AccountID: "acc-1", UserID: testUserID, CreationDate: dates.MustParse("2020-01-01")}
	last := dates.MustParse("2024-03-15")
	suite.accounts.On("GetAccountByID", mock.Anything, "acc-1", testUserID).Return(acc, nil).Once()
	suite.accounts.On("LastActivityDate", mock.Anything, "acc-1").Return(&last, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	resp := decodeBody[dto.AccountResponse](suite, w)
	suite.True(resp.SyncStartDate.Equal(acc.SyncStartDate(&last)))
}

func (suite *HandlerTestSuite) TestGetAccount_ErrorStatuses() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"forbidden", fmt.Errorf("%w: account acc-2", apperrors.ErrForbidden), http.StatusForbidden},
		{"not found", apperrors.NewNotFoundError("account acc-2"), http.StatusNotFound},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.accounts.On("GetAccountByID", mock.Anything, "acc-2", testUserID).Return(nil, tt.err).Once()

			w := suite.do(http.MethodGet, "/api/v1/accounts/acc-2", nil)

			suite.Equal(tt.status, w.Code)
			if tt.status == http.StatusInternalServerError {
				suite.NotContains(w.Body.String(), "connection reset")
			}
		})
	}
}

func (suite *HandlerTestSuite) TestAddRawActivity_Duplicate() {
	req := dto.CreateRawActivityRequest{
		TradeDate: "2024-01-05", Type: "Buy", Symbol: "XIU.TO", Currency: "CAD",
		Quantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(30), NetAmount: decimal.NewFromInt(-300),
		ExternalID: "ext-1",
	}
	suite.activity.On("AddRawActivity", mock.Anything, "acc-1", mock.AnythingOfType("dto.CreateRawActivityRequest"), testUserID).
		Return(nil, fmt.Errorf("%w: activity ext-1 was already imported", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/raw-activities", req)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestImportStatement_Success() {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "statement.csv")
	suite.Require().NoError(err)
	_, err = part.Write([]byte("Date,Activity,Symbol\n2024-01-05,Buy,XIU.TO\n"))
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	suite.activity.On("ImportCSV", mock.Anything, "acc-1", mock.Anything, testUserID).Return(3, 2, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/acc-1/raw-activities/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(dto.ImportResponse{Parsed: 3, Inserted: 2}, decodeBody[dto.ImportResponse](suite, w))
}

func (suite *HandlerTestSuite) TestImportStatement_MissingFile() {
	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/raw-activities/import", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestRegenerate_ChecksOwnership() {
	suite.accounts.On("AuthorizeAccount", mock.Anything, testUserID, "acc-9").
		Return(nil, fmt.Errorf("%w: account acc-9", apperrors.ErrForbidden)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-9/regenerate", nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.portfolio.AssertNotCalled(suite.T(), "RegenerateAccount", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRegenerate_Success() {
	suite.accounts.On("AuthorizeAccount", mock.Anything, testUserID, "acc-1").Return(&domain.Account{AccountID: "acc-1"}, nil).Once()
	result := &domain.RegenerationResult{AccountID: "acc-1", Activities: 4, HoldingIntervals: 3, CostBasisRecords: 2}
	suite.portfolio.On("RegenerateAccount", mock.Anything, "acc-1").Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/regenerate", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(4, decodeBody[domain.RegenerationResult](suite, w).Activities)
}

func (suite *HandlerTestSuite) TestRegenerate_UnmappedType() {
	suite.accounts.On("AuthorizeAccount", mock.Anything, testUserID, "acc-1").Return(&domain.Account{AccountID: "acc-1"}, nil).Once()
	suite.portfolio.On("RegenerateAccount", mock.Anything, "acc-1").
		Return(nil, fmt.Errorf("raw activity r1: %w", apperrors.ErrUnmappedActivityType)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/acc-1/regenerate", nil)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestListHoldings_AsOf() {
	asOf := dates.MustParse("2024-06-30")
	suite.portfolio.On("ListHoldings", mock.Anything, "acc-1", testUserID,
		mock.MatchedBy(func(d *time.Time) bool { return d != nil && d.Equal(asOf) })).
		Return([]domain.HoldingInterval{{AccountID: "acc-1", Symbol: "XIU.TO", Quantity: decimal.NewFromInt(10)}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/holdings?asOf=2024-06-30", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Len(decodeBody[[]domain.HoldingInterval](suite, w), 1)
}

func (suite *HandlerTestSuite) TestListHoldings_All() {
	suite.portfolio.On("ListHoldings", mock.Anything, "acc-1", testUserID, (*time.Time)(nil)).
		Return([]domain.HoldingInterval{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/holdings", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestListHoldings_BadDay() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/holdings?asOf=30-06-2024", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListCostBasis_FiltersBySymbol() {
	suite.portfolio.On("ListCostBasis", mock.Anything, "acc-1", testUserID, "XIU.TO").
		Return([]domain.CostBasisRecord{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/cost-basis?symbol=XIU.TO", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
