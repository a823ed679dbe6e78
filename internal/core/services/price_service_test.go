package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/core/portfolio"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/core/services"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PriceServiceTestSuite struct {
	suite.Suite
	mockPriceRepo    *MockPriceRepository
	mockSecurityRepo *MockSecurityRepository
	feeds            fakeFeeds
	service          portssvc.PriceSvcFacade
}

func (suite *PriceServiceTestSuite) SetupTest() {
	suite.mockPriceRepo = new(MockPriceRepository)
	suite.mockSecurityRepo = new(MockSecurityRepository)
	suite.feeds = fakeFeeds{feeds: map[string]portfolio.PriceFeed{}}
	suite.service = services.NewPriceService(suite.mockPriceRepo, suite.mockSecurityRepo, suite.feeds, "CAD", time.Minute)
}

func (suite *PriceServiceTestSuite) TestCreatePriceSource_DefaultsPriority() {
	ctx := context.Background()
	suite.mockSecurityRepo.On("FindSecurityBySymbol", ctx, "GIC1").
		Return(&domain.Security{Symbol: "GIC1", Currency: "CAD", Type: domain.SecurityTypeMutualFund}, nil).Once()
	suite.mockPriceRepo.On("SavePriceSource", ctx, mock.MatchedBy(func(s domain.PriceSource) bool {
		return s.Symbol == "GIC1" && s.Type == domain.PriceSourceConstant && s.Priority == domain.PriorityMedium
	})).Return(nil).Once()

	source, err := suite.service.CreatePriceSource(ctx, "gic1", dto.CreatePriceSourceRequest{Type: "Constant", Value: dec("100"), StartDate: "2024-01-01"}, "user-1")

	suite.Require().NoError(err)
	suite.Equal(day(2024, time.January, 1), *source.StartDate)
	suite.mockPriceRepo.AssertExpectations(suite.T())
}

func (suite *PriceServiceTestSuite) TestCreatePriceSource_Rejections() {
	ctx := context.Background()
	suite.mockSecurityRepo.On("FindSecurityBySymbol", ctx, "NOPE").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSecurityRepo.On("FindSecurityBySymbol", ctx, "BOND").
		Return(&domain.Security{Symbol: "BOND", Currency: "CAD", Type: domain.SecurityTypeStock}, nil).Once()

	_, err := suite.service.CreatePriceSource(ctx, "NOPE", dto.CreatePriceSourceRequest{Type: "Constant"}, "user-1")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.CreatePriceSource(ctx, "BOND", dto.CreatePriceSourceRequest{Type: "Interpolated", StartDate: "2024-01-01"}, "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockPriceRepo.AssertNotCalled(suite.T(), "SavePriceSource", mock.Anything, mock.Anything)
}

func (suite *PriceServiceTestSuite) TestEnsureDefaultSources() {
	ctx := context.Background()
	suite.mockPriceRepo.On("ListPriceSources", ctx, "CAD").Return(nil, nil).Once()
	suite.mockPriceRepo.On("ListPriceSources", ctx, "USD").Return(nil, nil).Once()
	suite.mockPriceRepo.On("ListPriceSources", ctx, "XIU.TO").Return([]domain.PriceSource{{SourceID: "s1"}}, nil).Once()
	suite.mockPriceRepo.On("SavePriceSource", ctx, mock.MatchedBy(func(s domain.PriceSource) bool {
		return s.Symbol == "CAD" && s.Type == domain.PriceSourceConstant && s.Value.Equal(dec("1")) && s.Priority == domain.PriorityLow
	})).Return(nil).Once()
	suite.mockPriceRepo.On("SavePriceSource", ctx, mock.MatchedBy(func(s domain.PriceSource) bool {
		return s.Symbol == "USD" && s.Type == domain.PriceSourceStored && s.CreatedBy == "system"
	})).Return(nil).Once()

	err := suite.service.EnsureDefaultSources(ctx, []domain.Security{
		domain.NewCashSecurity("CAD"),
		domain.NewCashSecurity("USD"),
		{Symbol: "XIU.TO", Currency: "CAD", Type: domain.SecurityTypeStock},
	})

	suite.Require().NoError(err)
	suite.mockPriceRepo.AssertExpectations(suite.T())
}

func (suite *PriceServiceTestSuite) TestSyncPrices_SkipsFailingFeed() {
	ctx := context.Background()
	start, end := day(2024, time.January, 10), day(2024, time.January, 12)
	suite.mockPriceRepo.On("ListPriceSources", ctx, "XIU.TO").Return([]domain.PriceSource{
		{SourceID: "low", Symbol: "XIU.TO", Priority: domain.PriorityLow},
		{SourceID: "high", Symbol: "XIU.TO", Priority: domain.PriorityHigh},
	}, nil).Once()
	suite.feeds.feeds["low"] = seriesFeed{rank: domain.PriorityLow, prices: []domain.PriceObservation{
		{Symbol: "XIU.TO", Day: day(2024, time.January, 5), Price: dec("30")},
		{Symbol: "XIU.TO", Day: day(2024, time.January, 11), Price: dec("31")},
	}}
	suite.feeds.feeds["high"] = failingFeed{rank: domain.PriorityHigh}

	var stored []domain.DailyPrice
	suite.mockPriceRepo.On("ReplaceDailyPrices", ctx, "XIU.TO", portfolio.BufferedStart(start), end, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(4).([]domain.DailyPrice) }).
		Return(nil).Once()

	days, err := suite.service.SyncPrices(ctx, "xiu.to", start, end)

	suite.Require().NoError(err)
	suite.Equal(10, days)
	suite.Require().Len(stored, 10)
	suite.True(stored[0].Price.Equal(dec("30")), "leading gap is back-filled")
	suite.True(stored[9].Price.Equal(dec("31")))
	suite.mockPriceRepo.AssertExpectations(suite.T())
}

func (suite *PriceServiceTestSuite) TestSyncPrices_NoPrices() {
	ctx := context.Background()
	suite.mockPriceRepo.On("ListPriceSources", ctx, "ZZZ").Return(nil, nil).Once()

	_, err := suite.service.SyncPrices(ctx, "ZZZ", day(2024, time.January, 1), day(2024, time.January, 2))

	suite.ErrorIs(err, apperrors.ErrMissingPrice)
	suite.mockPriceRepo.AssertNotCalled(suite.T(), "ReplaceDailyPrices", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PriceServiceTestSuite) TestPriceOn_CachesUntilSync() {
	ctx := context.Background()
	d := day(2024, time.March, 1)
	suite.mockPriceRepo.On("FindDailyPrice", ctx, "XIU.TO", d).Return(&domain.DailyPrice{Symbol: "XIU.TO", Day: d, Price: dec("33")}, nil).Twice()

	for range 3 {
		price, err := suite.service.PriceOn(ctx, "XIU.TO", d)
		suite.Require().NoError(err)
		suite.True(price.Equal(dec("33")))
	}
	suite.mockPriceRepo.AssertNumberOfCalls(suite.T(), "FindDailyPrice", 1)

	suite.feeds.feeds["s1"] = seriesFeed{rank: domain.PriorityMedium, prices: []domain.PriceObservation{{Symbol: "XIU.TO", Day: d, Price: dec("34")}}}
	suite.mockPriceRepo.On("ListPriceSources", ctx, "XIU.TO").Return([]domain.PriceSource{{SourceID: "s1", Symbol: "XIU.TO"}}, nil).Once()
	suite.mockPriceRepo.On("ReplaceDailyPrices", ctx, "XIU.TO", mock.Anything, d, mock.Anything).Return(nil).Once()
	_, err := suite.service.SyncPrices(ctx, "XIU.TO", d, d)
	suite.Require().NoError(err)

	_, err = suite.service.PriceOn(ctx, "XIU.TO", d)
	suite.Require().NoError(err)
	suite.mockPriceRepo.AssertNumberOfCalls(suite.T(), "FindDailyPrice", 2)
}

func (suite *PriceServiceTestSuite) TestPriceOn_Missing() {
	ctx := context.Background()
	d := day(2024, time.March, 2)
	suite.mockPriceRepo.On("FindDailyPrice", ctx, "ABC", d).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PriceOn(ctx, "ABC", d)

	suite.ErrorIs(err, apperrors.ErrMissingPrice)
}

func (suite *PriceServiceTestSuite) TestAddManualPrice_CreatesStoredSource() {
	ctx := context.Background()
	suite.mockSecurityRepo.On("FindSecurityBySymbol", ctx, "VFV.TO").
		Return(&domain.Security{Symbol: "VFV.TO", Currency: "CAD", Type: domain.SecurityTypeStock}, nil).Once()
	suite.mockPriceRepo.On("FindPriceSourceByType", ctx, "VFV.TO", domain.PriceSourceStored).Return(nil, apperrors.ErrNotFound).Once()

	var sourceID string
	suite.mockPriceRepo.On("SavePriceSource", ctx, mock.MatchedBy(func(s domain.PriceSource) bool {
		return s.Type == domain.PriceSourceStored && s.CreatedBy == "user-1"
	})).Run(func(args mock.Arguments) { sourceID = args.Get(1).(domain.PriceSource).SourceID }).Return(nil).Once()
	suite.mockPriceRepo.On("SaveObservations", ctx, mock.MatchedBy(func(obs []domain.PriceObservation) bool {
		return len(obs) == 1 && obs[0].SourceID == sourceID && obs[0].Price.Equal(dec("101.5"))
	})).Return(nil).Once()
	// the merge that follows finds nothing to merge; that only gets logged
	suite.mockPriceRepo.On("ListPriceSources", ctx, "VFV.TO").Return(nil, nil).Once()

	obs, err := suite.service.AddManualPrice(ctx, "VFV.TO", dto.ManualPriceRequest{Day: "2024-04-02", Price: dec("101.5")}, "user-1")

	suite.Require().NoError(err)
	suite.Equal(day(2024, time.April, 2), obs.Day)
	suite.mockPriceRepo.AssertExpectations(suite.T())
}

func (suite *PriceServiceTestSuite) TestAddManualPrice_RejectsNonPositive() {
	ctx := context.Background()
	suite.mockSecurityRepo.On("FindSecurityBySymbol", ctx, "VFV.TO").
		Return(&domain.Security{Symbol: "VFV.TO", Currency: "CAD"}, nil).Once()

	_, err := suite.service.AddManualPrice(ctx, "VFV.TO", dto.ManualPriceRequest{Day: "2024-04-02", Price: dec("0")}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PriceServiceTestSuite) TestSyncAll_ContinuesPastFailures() {
	ctx := context.Background()
	suite.mockSecurityRepo.On("ListSecurities", ctx).Return([]domain.Security{
		domain.NewCashSecurity("USD"),
		{Symbol: "XIU.TO", Currency: "CAD", Type: domain.SecurityTypeStock},
	}, nil).Once()
	suite.mockPriceRepo.On("LastDailyPriceDates", ctx).Return(map[string]time.Time{}, nil).Once()
	suite.mockPriceRepo.On("ListPriceSources", ctx, "USD").Return(nil, nil).Once()
	suite.mockPriceRepo.On("ListPriceSources", ctx, "XIU.TO").Return(nil, assert.AnError).Once()

	err := suite.service.SyncAll(ctx)

	suite.ErrorIs(err, assert.AnError)
	suite.NotErrorIs(err, apperrors.ErrMissingPrice)
	suite.mockPriceRepo.AssertExpectations(suite.T())
}

func (suite *PriceServiceTestSuite) TestListPrices_ReversedRange() {
	_, err := suite.service.ListPrices(context.Background(), "XIU.TO", day(2024, time.May, 2), day(2024, time.May, 1))
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestPriceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PriceServiceTestSuite))
}
