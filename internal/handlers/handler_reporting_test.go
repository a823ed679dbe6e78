package handlers_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestRegister_Success() {
	req := dto.RegisterRequest{Username: "alice", Name: "Alice", Password: "long-enough"}
	suite.users.On("CreateUser", mock.Anything, req).
		Return(&domain.User{UserID: "u-1", Username: "alice", Name: "Alice"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Equal("u-1", decodeBody[dto.UserResponse](suite, w).UserID)
	suite.NotContains(w.Body.String(), "long-enough")
}

func (suite *HandlerTestSuite) TestRegister_Duplicate() {
	req := dto.RegisterRequest{Username: "alice", Name: "Alice", Password: "long-enough"}
	suite.users.On("CreateUser", mock.Anything, req).
		Return(nil, fmt.Errorf("%w: username alice", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", req)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestLogin_Success() {
	user := &domain.User{UserID: "u-1", Username: "alice"}
	expires := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	suite.users.On("AuthenticateUser", mock.Anything, "alice", "secret-pw").Return(user, nil).Once()
	suite.tokens.On("GenerateAccessToken", mock.Anything, user).Return("signed-token", expires, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "secret-pw"})

	suite.Equal(http.StatusOK, w.Code)
	resp := decodeBody[dto.LoginResponse](suite, w)
	suite.Equal("signed-token", resp.Token)
	suite.True(resp.ExpiresAt.Equal(expires))
	suite.Equal("alice", resp.User.Username)
}

func (suite *HandlerTestSuite) TestLogin_WrongPassword() {
	suite.users.On("AuthenticateUser", mock.Anything, "alice", "nope").
		Return(nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "nope"})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	suite.users.On("AuthenticateUser", mock.Anything, "alice", "nope").
		Return(nil, apperrors.ErrUnauthorized).Times(2)

	for i := 0; i < 2; i++ {
		w := suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "nope"})
		suite.Equal(http.StatusUnauthorized, w.Code)
	}
	w := suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "nope"})
	suite.Equal(http.StatusTooManyRequests, w.Code)
}

func (suite *HandlerTestSuite) TestGetSecurity_UppercasesSymbol() {
	suite.security.On("GetSecurity", mock.Anything, "XIU.TO").
		Return(&domain.Security{Symbol: "XIU.TO", Currency: "CAD", Type: domain.SecurityTypeStock}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/securities/xiu.to", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("XIU.TO", decodeBody[domain.Security](suite, w).Symbol)
}

func (suite *HandlerTestSuite) TestSyncPrices_DefaultsToFullHistory() {
	today := dates.Today()
	suite.prices.On("SyncPrices", mock.Anything, "XIU.TO", domain.DefaultAccountCreationDate,
		mock.MatchedBy(func(d time.Time) bool { return d.Equal(today) })).Return(120, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/securities/XIU.TO/prices/sync", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(dto.SyncPricesResponse{Symbol: "XIU.TO", Days: 120}, decodeBody[dto.SyncPricesResponse](suite, w))
}

func (suite *HandlerTestSuite) TestSyncPrices_NoPrices() {
	start, end := dates.MustParse("2024-01-01"), dates.MustParse("2024-01-31")
	suite.prices.On("SyncPrices", mock.Anything, "ZZZ", start, end).
		Return(0, fmt.Errorf("%w: ZZZ", apperrors.ErrMissingPrice)).Once()

	w := suite.do(http.MethodPost, "/api/v1/securities/ZZZ/prices/sync", dto.PriceRangeParams{Start: "2024-01-01", End: "2024-01-31"})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestListPrices_DefaultWindow() {
	today := dates.Today()
	suite.prices.On("ListPrices", mock.Anything, "XIU.TO",
		mock.MatchedBy(func(d time.Time) bool { return d.Equal(dates.AddDays(today, -30)) }),
		mock.MatchedBy(func(d time.Time) bool { return d.Equal(today) })).
		Return([]domain.DailyPrice{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/securities/XIU.TO/prices", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestAddManualPrice_Validation() {
	req := dto.ManualPriceRequest{Day: "2024-02-01", Price: decimal.NewFromInt(-1)}
	suite.prices.On("AddManualPrice", mock.Anything, "GIC", mock.AnythingOfType("dto.ManualPriceRequest"), testUserID).
		Return(nil, apperrors.NewValidationError("price must be positive")).Once()

	w := suite.do(http.MethodPost, "/api/v1/securities/GIC/prices", req)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCapitalGains() {
	rows := []domain.CapitalGainSummaryRow{{Symbol: "XIU.TO", Quantity: decimal.NewFromInt(15), BookValue: decimal.NewFromInt(525)}}
	suite.reporting.On("CapitalGainSummary", mock.Anything, testUserID).Return(rows, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/capital-gains", nil)

	suite.Equal(http.StatusOK, w.Code)
	got := decodeBody[[]domain.CapitalGainSummaryRow](suite, w)
	suite.Require().Len(got, 1)
	suite.True(got[0].BookValue.Equal(decimal.NewFromInt(525)))
}

func (suite *HandlerTestSuite) TestRealizedGainsAndCommissions() {
	suite.reporting.On("RealizedGainsByYear", mock.Anything, testUserID).
		Return([]domain.RealizedGain{{Year: 2024, Symbol: "XIU.TO", Gain: decimal.NewFromInt(75)}}, nil).Once()
	suite.reporting.On("CommissionsByYear", mock.Anything, testUserID).
		Return([]domain.YearAmount{{Year: 2024, Amount: decimal.NewFromInt(-15)}}, nil).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/v1/reports/realized-gains", nil).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/v1/reports/commissions", nil).Code)
}

func (suite *HandlerTestSuite) TestValuation_Date() {
	day := dates.MustParse("2024-03-31")
	valuation := &domain.Valuation{Day: day, Total: decimal.NewFromInt(490)}
	suite.reporting.On("Valuation", mock.Anything, testUserID, day).Return(valuation, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/valuation?date=2024-03-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.True(decodeBody[domain.Valuation](suite, w).Total.Equal(decimal.NewFromInt(490)))
}

func (suite *HandlerTestSuite) TestValuation_MissingPrice() {
	suite.reporting.On("Valuation", mock.Anything, testUserID, mock.AnythingOfType("time.Time")).
		Return(nil, fmt.Errorf("XIU.TO on 2024-03-31: %w", apperrors.ErrMissingPrice)).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/valuation", nil)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestValuation_BadDate() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/valuation?date=tomorrow", bytes.NewReader(nil))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID))
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusBadRequest, w.Code)
}
