package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/core/portfolio"
	portsrepo "github.com/SscSPs/portfolio_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/utils/accounting"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
	activityRepo  portsrepo.ActivityReader
	portfolioRepo portsrepo.PortfolioRepositoryFacade
	securityRepo  portsrepo.SecurityReader
	prices        portssvc.PriceReaderSvc
	rates         portssvc.ReportingRateSvc
	perAccount    bool
	today         func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithPerAccountCostBasis makes capital gain reports read the stored per-account cost
// basis instead of pooling every taxable account into one fold.
func WithPerAccountCostBasis(perAccount bool) ReportingServiceOption {
	return func(s *reportingService) {
		s.perAccount = perAccount
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repos portsrepo.RepositoryProvider, prices portssvc.PriceReaderSvc, rates portssvc.ReportingRateSvc, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repos.ReportingRepo,
		accountRepo:   repos.AccountRepo,
		activityRepo:  repos.ActivityRepo,
		portfolioRepo: repos.PortfolioRepo,
		securityRepo:  repos.SecurityRepo,
		prices:        prices,
		rates:         rates,
		today:         dates.Today,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// accountIDs returns the ids of the user's accounts, only the taxable ones when asked.
func (s *reportingService) accountIDs(ctx context.Context, userID string, taxableOnly bool) ([]string, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts in service: %w", err)
	}
	ids := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		if taxableOnly && !acc.Taxable {
			continue
		}
		ids = append(ids, acc.AccountID)
	}
	return ids, nil
}

// costBasis returns the records gains are computed from, and the cost basis issues of
// securities whose records are incomplete. A pooled fold reports the partitions it could
// not compute; stored records come with the issues their regeneration persisted.
func (s *reportingService) costBasis(ctx context.Context, accountIDs []string) ([]domain.CostBasisRecord, []domain.RegenerationIssue, error) {
	if s.perAccount {
		records, err := s.portfolioRepo.ListCostBasis(ctx, accountIDs, "")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list cost basis in service: %w", err)
		}
		issues, err := s.storedCostBasisIssues(ctx, accountIDs)
		if err != nil {
			return nil, nil, err
		}
		return records, issues, nil
	}

	activities, err := s.activityRepo.ListActivities(ctx, accountIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list activities in service: %w", err)
	}
	records, err := portfolio.ComputeCostBasis(ctx, activities, s.prices, s.rates, portfolio.CostBasisOptions{})
	var issues []domain.RegenerationIssue
	if err != nil {
		for _, e := range flatten(err) {
			var cbErr *portfolio.CostBasisError
			if !errors.As(e, &cbErr) {
				return nil, nil, err
			}
			s.LogWarn(ctx, "Security left out of pooled cost basis",
				slog.String("symbol", cbErr.Symbol),
				slog.String("error", cbErr.Error()))
			issues = append(issues, domain.RegenerationIssue{
				AccountID: cbErr.AccountID, Symbol: cbErr.Symbol, Stage: domain.StageCostBasis,
				Message: cbErr.Error(), Day: &cbErr.Day,
			})
		}
	}
	return records, issues, nil
}

func (s *reportingService) storedCostBasisIssues(ctx context.Context, accountIDs []string) ([]domain.RegenerationIssue, error) {
	var issues []domain.RegenerationIssue
	for _, id := range accountIDs {
		stored, err := s.portfolioRepo.ListIssues(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues in service: %w", err)
		}
		for _, issue := range stored {
			if issue.Stage == domain.StageCostBasis && issue.Symbol != "" {
				issues = append(issues, issue)
			}
		}
	}
	return issues, nil
}

func (s *reportingService) CapitalGainSummary(ctx context.Context, userID string) ([]domain.CapitalGainSummaryRow, error) {
	ids, err := s.accountIDs(ctx, userID, true)
	if err != nil || len(ids) == 0 {
		return []domain.CapitalGainSummaryRow{}, err
	}
	records, issues, err := s.costBasis(ctx, ids)
	if err != nil {
		return nil, err
	}

	// per-account positions of one symbol are summed
	bySymbol := make(map[string]*domain.CapitalGainSummaryRow)
	rowOf := func(symbol string) *domain.CapitalGainSummaryRow {
		row, ok := bySymbol[symbol]
		if !ok {
			row = &domain.CapitalGainSummaryRow{Symbol: symbol}
			bySymbol[symbol] = row
		}
		return row
	}
	for _, latest := range portfolio.LatestPositions(records) {
		row := rowOf(latest.Symbol)
		row.Quantity = row.Quantity.Add(latest.QuantityTotal)
		row.BookValue = row.BookValue.Add(latest.ACBTotal)
	}
	for _, issue := range issues {
		rowOf(issue.Symbol).Flag(issue.Message)
	}

	today := s.today()
	rows := make([]domain.CapitalGainSummaryRow, 0, len(bySymbol))
	for _, row := range bySymbol {
		if row.Quantity.IsZero() {
			if row.NeedsAttention {
				rows = append(rows, *row)
			}
			continue
		}
		price, err := s.marketPrice(ctx, row.Symbol, today)
		if err != nil {
			if !errors.Is(err, apperrors.ErrMissingPrice) && !errors.Is(err, apperrors.ErrMissingExchangeRate) {
				return nil, err
			}
			s.LogWarn(ctx, "No market price for held security", slog.String("symbol", row.Symbol), slog.String("error", err.Error()))
			row.Flag("no market price: " + err.Error())
			rows = append(rows, *row)
			continue
		}
		row.Price = price
		row.MarketValue = price.Mul(row.Quantity)
		row.PendingGain = row.MarketValue.Sub(row.BookValue)
		if !row.BookValue.IsZero() {
			pct := row.PendingGain.Div(row.BookValue).Mul(decimal.NewFromInt(100))
			row.PercentGain = &pct
		}
		rows = append(rows, *row)
	}
	slices.SortFunc(rows, func(a, b domain.CapitalGainSummaryRow) int { return cmp.Compare(a.Symbol, b.Symbol) })
	return rows, nil
}

// marketPrice returns the price of symbol on day in the reporting currency.
func (s *reportingService) marketPrice(ctx context.Context, symbol string, day time.Time) (decimal.Decimal, error) {
	price, err := s.prices.PriceOn(ctx, symbol, day)
	if err != nil {
		return decimal.Zero, err
	}
	exch, err := s.rates.ExchangeRate(ctx, symbol, day)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.ConvertToReporting(price, exch), nil
}

func (s *reportingService) RealizedGainsByYear(ctx context.Context, userID string) ([]domain.RealizedGain, error) {
	ids, err := s.accountIDs(ctx, userID, true)
	if err != nil || len(ids) == 0 {
		return []domain.RealizedGain{}, err
	}

	var (
		gains  []domain.RealizedGain
		issues []domain.RegenerationIssue
	)
	if s.perAccount {
		if gains, err = s.reportingRepo.GetRealizedGainsByYear(ctx, ids); err != nil {
			return nil, fmt.Errorf("failed to get realized gains in service: %w", err)
		}
		if issues, err = s.storedCostBasisIssues(ctx, ids); err != nil {
			return nil, err
		}
	} else {
		var records []domain.CostBasisRecord
		if records, issues, err = s.costBasis(ctx, ids); err != nil {
			return nil, err
		}
		gains = sumRealizedGains(records)
	}

	gains = flagRealizedGains(gains, issues)
	if gains == nil {
		gains = []domain.RealizedGain{}
	}
	slices.SortFunc(gains, func(a, b domain.RealizedGain) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Symbol, b.Symbol))
	})
	return gains, nil
}

// sumRealizedGains totals the gains of disposals per (year, symbol).
func sumRealizedGains(records []domain.CostBasisRecord) []domain.RealizedGain {
	type key struct {
		year   int
		symbol string
	}
	sums := make(map[key]decimal.Decimal)
	for _, r := range records {
		if !r.IsDisposal {
			continue
		}
		k := key{year: r.TradeDate.Year(), symbol: r.Symbol}
		sums[k] = sums[k].Add(r.CapitalGain)
	}
	gains := make([]domain.RealizedGain, 0, len(sums))
	for k, gain := range sums {
		gains = append(gains, domain.RealizedGain{Year: k.year, Symbol: k.symbol, Gain: gain})
	}
	return gains
}

// flagRealizedGains marks the gains an issue makes incomplete: every year of the
// security from the failing trade on. The year of the failure always gets a row.
// An issue without a trade date flags every year of its security.
func flagRealizedGains(gains []domain.RealizedGain, issues []domain.RegenerationIssue) []domain.RealizedGain {
	for _, issue := range issues {
		year := 0
		if issue.Day != nil {
			year = issue.Day.Year()
		}
		found := false
		for i := range gains {
			g := &gains[i]
			if g.Symbol != issue.Symbol || g.Year < year {
				continue
			}
			found = found || g.Year == year
			if !g.NeedsAttention {
				g.NeedsAttention, g.Issue = true, issue.Message
			}
		}
		if !found {
			gains = append(gains, domain.RealizedGain{
				Year: year, Symbol: issue.Symbol, Gain: decimal.Zero, NeedsAttention: true, Issue: issue.Message,
			})
		}
	}
	return gains
}

// CommissionsByYear covers every account of the user, taxable or not.
func (s *reportingService) CommissionsByYear(ctx context.Context, userID string) ([]domain.YearAmount, error) {
	ids, err := s.accountIDs(ctx, userID, false)
	if err != nil || len(ids) == 0 {
		return []domain.YearAmount{}, err
	}
	amounts, err := s.reportingRepo.GetCommissionsByYear(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get commissions in service: %w", err)
	}
	return amounts, nil
}

// Valuation values the positions of every account on day. Cash is worth its exchange
// rate; anything else its price times the exchange rate. A missing price fails the report.
func (s *reportingService) Valuation(ctx context.Context, userID string, day time.Time) (*domain.Valuation, error) {
	day = dates.Truncate(day)
	valuation := &domain.Valuation{Day: day, Rows: []domain.ValuationRow{}, Total: decimal.Zero}

	ids, err := s.accountIDs(ctx, userID, false)
	if err != nil || len(ids) == 0 {
		return valuation, err
	}
	stored, err := s.portfolioRepo.ListHoldings(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings in service: %w", err)
	}
	// refolding with no new activity checks the stored timelines
	stored, err = portfolio.ExtendHoldings(stored, nil)
	if err != nil {
		return nil, fmt.Errorf("stored holdings are inconsistent: %w", err)
	}
	securities, err := s.securityRepo.ListSecurities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list securities in service: %w", err)
	}
	isCash := make(map[string]bool, len(securities))
	for _, sec := range securities {
		isCash[sec.Symbol] = sec.IsCash()
	}

	for _, h := range portfolio.HoldingsOn(stored, day) {
		price := decimal.NewFromInt(1)
		if !isCash[h.Symbol] {
			if price, err = s.prices.PriceOn(ctx, h.Symbol, day); err != nil {
				return nil, err
			}
		}
		exch, err := s.rates.ExchangeRate(ctx, h.Symbol, day)
		if err != nil {
			return nil, err
		}
		row := domain.ValuationRow{
			AccountID:    h.AccountID,
			Symbol:       h.Symbol,
			Quantity:     h.Quantity,
			Price:        price,
			ExchangeRate: exch,
			Value:        accounting.ConvertToReporting(h.Quantity.Mul(price), exch),
		}
		valuation.Rows = append(valuation.Rows, row)
		valuation.Total = valuation.Total.Add(row.Value)
	}
	return valuation, nil
}
