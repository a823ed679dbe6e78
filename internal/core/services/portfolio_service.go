package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/adapters/brokers"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/core/portfolio"
	portsrepo "github.com/SscSPs/portfolio_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/utils/accounting"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// portfolioService regenerates derived data and serves it back.
type portfolioService struct {
	BaseService
	txManager     portsrepo.TransactionManager
	accountRepo   portsrepo.AccountRepositoryFacade
	securityRepo  portsrepo.SecurityTransactionSupport
	activityRepo  portsrepo.ActivityRepositoryFacade
	portfolioRepo portsrepo.PortfolioRepositoryFacade
	registry      *brokers.Registry
	prices        portssvc.PriceSvcFacade
	rates         portssvc.ReportingRateSvc
}

// PortfolioServiceOption is a functional option for configuring the portfolio service
type PortfolioServiceOption func(*portfolioService)

// WithPortfolioAccountAuthorizer sets the account authorizer for the portfolio service.
func WithPortfolioAccountAuthorizer(authorizer portssvc.AccountAuthorizerSvc) PortfolioServiceOption {
	return func(s *portfolioService) {
		s.AccountAuthorizer = authorizer
	}
}

// NewPortfolioService creates a new portfolio service with the provided options
func NewPortfolioService(repos portsrepo.RepositoryProvider, registry *brokers.Registry, prices portssvc.PriceSvcFacade, rates portssvc.ReportingRateSvc, options ...PortfolioServiceOption) portssvc.PortfolioSvcFacade {
	svc := &portfolioService{
		txManager:     repos.TxManager,
		accountRepo:   repos.AccountRepo,
		securityRepo:  repos.SecurityRepo,
		activityRepo:  repos.ActivityRepo,
		portfolioRepo: repos.PortfolioRepo,
		registry:      registry,
		prices:        prices,
		rates:         rates,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PortfolioSvcFacade = (*portfolioService)(nil)

// batchRates answers exchange rate lookups for securities created inside an uncommitted
// regeneration, which other connections cannot see yet.
type batchRates struct {
	currencies map[string]string
	rates      portssvc.ReportingRateSvc
}

func (b batchRates) ExchangeRate(ctx context.Context, symbol string, day time.Time) (decimal.Decimal, error) {
	if currency, ok := b.currencies[symbol]; ok {
		return b.rates.CurrencyRate(ctx, currency, day)
	}
	return b.rates.ExchangeRate(ctx, symbol, day)
}

// RegenerateAccount rebuilds an account from its raw activities. Storage and
// normalization failures roll everything back; a security whose holdings or cost
// basis cannot be derived becomes an issue and the rest is still written.
func (s *portfolioService) RegenerateAccount(ctx context.Context, accountID string) (*domain.RegenerationResult, error) {
	logger := s.GetLogger(ctx).With(slog.String("account_id", accountID))
	started := time.Now()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	account, err := s.accountRepo.LockAccountTx(ctx, tx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}
	adapter, err := s.registry.Get(account.Broker)
	if err != nil {
		return nil, err
	}

	raws, err := s.activityRepo.ListRawActivitiesTx(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}
	activities, securities, err := normalizeAll(adapter, account.AccountID, raws)
	if err != nil {
		return nil, err
	}

	created, err := s.securityRepo.EnsureSecuritiesTx(ctx, tx, securities)
	if err != nil {
		return nil, err
	}
	stored, err := s.activityRepo.ReplaceActivitiesTx(ctx, tx, accountID, activities)
	if err != nil {
		return nil, err
	}

	var issues []domain.RegenerationIssue
	holdings, err := portfolio.ReconstructHoldings(stored)
	if err != nil {
		for _, e := range flatten(err) {
			var integrity *portfolio.IntegrityError
			if !errors.As(e, &integrity) {
				return nil, err
			}
			issues = append(issues, domain.RegenerationIssue{
				AccountID: accountID, Symbol: integrity.Key.Symbol, Stage: domain.StageHoldings, Message: integrity.Error(),
				Day: &integrity.Day,
			})
		}
	}

	currencies := make(map[string]string, len(securities))
	for _, sec := range securities {
		currencies[sec.Symbol] = sec.Currency
	}
	records, err := portfolio.ComputeCostBasis(ctx, stored, s.prices, batchRates{currencies: currencies, rates: s.rates},
		portfolio.CostBasisOptions{PerAccount: true})
	if err != nil {
		for _, e := range flatten(err) {
			var cbErr *portfolio.CostBasisError
			if !errors.As(e, &cbErr) {
				return nil, err
			}
			issues = append(issues, domain.RegenerationIssue{
				AccountID: accountID, Symbol: cbErr.Symbol, Stage: domain.StageCostBasis, Message: cbErr.Error(),
				Day: &cbErr.Day,
			})
		}
	}
	for _, r := range records {
		if r.CrossesZero {
			logger.Warn("Trade crosses zero, cost basis assumes it was a disposal",
				slog.String("symbol", r.Symbol),
				slog.String("activity_id", r.ActivityID),
				slog.String("trade_date", r.TradeDate.Format(dates.Format)))
		}
	}

	if err := s.portfolioRepo.ReplaceHoldingsTx(ctx, tx, accountID, holdings); err != nil {
		return nil, err
	}
	if err := s.portfolioRepo.ReplaceCostBasisTx(ctx, tx, accountID, records); err != nil {
		return nil, err
	}
	if err := s.portfolioRepo.ReplaceIssuesTx(ctx, tx, accountID, issues); err != nil {
		return nil, err
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	if len(created) > 0 {
		if err := s.prices.EnsureDefaultSources(ctx, created); err != nil {
			logger.Error("Failed to create default price sources", slog.String("error", err.Error()))
		}
	}

	result := &domain.RegenerationResult{
		AccountID:        accountID,
		Activities:       len(stored),
		HoldingIntervals: len(holdings),
		CostBasisRecords: len(records),
		Issues:           issues,
	}
	logger.Info("Account regenerated",
		slog.Int("raw_activities", len(raws)),
		slog.Int("activities", result.Activities),
		slog.Int("holding_intervals", result.HoldingIntervals),
		slog.Int("cost_basis_records", result.CostBasisRecords),
		slog.Int("issues", len(issues)),
		slog.Int("new_securities", len(created)),
		slog.Duration("took", time.Since(started)))
	return result, nil
}

// normalizeAll maps every raw record through the adapter. Securities referenced by an
// activity but not described by the adapter default to cash for the cash side and to a
// stock in the activity's currency otherwise.
func normalizeAll(adapter brokers.Adapter, accountID string, raws []domain.RawActivity) ([]domain.Activity, []domain.Security, error) {
	var (
		activities []domain.Activity
		securities []domain.Security
	)
	seen := make(map[string]bool)
	addSecurity := func(sec domain.Security) {
		if sec.Symbol == "" || seen[sec.Symbol] {
			return
		}
		seen[sec.Symbol] = true
		now := time.Now().UTC()
		sec.AuditFields = domain.NewAuditFields(systemUserID, now)
		securities = append(securities, sec)
	}

	for _, raw := range raws {
		batch, err := adapter.Normalize(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("normalizing raw activity %s: %w", raw.RawActivityID, err)
		}
		for _, sec := range batch.Securities {
			addSecurity(sec)
		}
		for _, a := range batch.Activities {
			a.AccountID = accountID
			a.RawActivityID = raw.RawActivityID
			if cash := a.CashSymbol(); cash != "" {
				addSecurity(domain.NewCashSecurity(cash))
			}
			if symbol := a.SecuritySymbol(); symbol != "" {
				currency := a.CashSymbol()
				if currency == "" {
					currency = raw.Currency
				}
				addSecurity(domain.Security{Symbol: symbol, Currency: currency, Type: domain.SecurityTypeStock})
			}
			activities = append(activities, a)
		}
	}
	if err := accounting.ValidateActivities(activities); err != nil {
		return nil, nil, err
	}
	return activities, securities, nil
}

// flatten undoes errors.Join.
func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func (s *portfolioService) RegenerateAll(ctx context.Context) ([]domain.RegenerationResult, error) {
	accounts, err := s.accountRepo.ListAllAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts in service: %w", err)
	}

	results := make([]domain.RegenerationResult, 0, len(accounts))
	var errs []error
	for _, account := range accounts {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := s.RegenerateAccount(ctx, account.AccountID)
		if err != nil {
			s.LogError(ctx, err, "Failed to regenerate account", slog.String("account_id", account.AccountID))
			errs = append(errs, fmt.Errorf("account %s: %w", account.AccountID, err))
			continue
		}
		results = append(results, *result)
	}
	return results, errors.Join(errs...)
}

func (s *portfolioService) ListHoldings(ctx context.Context, accountID string, userID string, asOf *time.Time) ([]domain.HoldingInterval, error) {
	if _, err := s.AuthorizeAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}
	holdings, err := s.portfolioRepo.ListHoldings(ctx, []string{accountID})
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings in service: %w", err)
	}
	if asOf == nil {
		return holdings, nil
	}
	return portfolio.HoldingsOn(holdings, *asOf), nil
}

func (s *portfolioService) ListCostBasis(ctx context.Context, accountID string, userID string, symbol string) ([]domain.CostBasisRecord, error) {
	if _, err := s.AuthorizeAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}
	records, err := s.portfolioRepo.ListCostBasis(ctx, []string{accountID}, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost basis in service: %w", err)
	}
	return records, nil
}

func (s *portfolioService) ListIssues(ctx context.Context, accountID string, userID string) ([]domain.RegenerationIssue, error) {
	if _, err := s.AuthorizeAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}
	issues, err := s.portfolioRepo.ListIssues(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues in service: %w", err)
	}
	return issues, nil
}
