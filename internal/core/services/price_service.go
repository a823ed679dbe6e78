package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/adapters/pricefeeds"
	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/core/portfolio"
	portsrepo "github.com/SscSPs/portfolio_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/dto"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// systemUserID marks rows created by the service itself rather than a user request.
const systemUserID = "system"

// FeedFactory builds the feed behind a price source.
type FeedFactory interface {
	Feed(source domain.PriceSource) (portfolio.PriceFeed, error)
}

var _ FeedFactory = (*pricefeeds.Factory)(nil)

type priceService struct {
	BaseService
	priceRepo         portsrepo.PriceRepositoryFacade
	securityRepo      portsrepo.SecurityReader
	feeds             FeedFactory
	reportingCurrency string
	cache             *cache.Cache
	today             func() time.Time
}

// NewPriceService creates a new price service. Daily prices read through PriceOn are
// cached for cacheTTL.
func NewPriceService(priceRepo portsrepo.PriceRepositoryFacade, securityRepo portsrepo.SecurityReader, feeds FeedFactory, reportingCurrency string, cacheTTL time.Duration) portssvc.PriceSvcFacade {
	return &priceService{
		priceRepo:         priceRepo,
		securityRepo:      securityRepo,
		feeds:             feeds,
		reportingCurrency: reportingCurrency,
		cache:             cache.New(cacheTTL, 2*cacheTTL),
		today:             dates.Today,
	}
}

var _ portssvc.PriceSvcFacade = (*priceService)(nil)

func priceCacheKey(symbol string, day time.Time) string {
	return symbol + "|" + day.Format(dates.Format)
}

func (s *priceService) requireSecurity(ctx context.Context, symbol string) (*domain.Security, error) {
	security, err := s.securityRepo.FindSecurityBySymbol(ctx, symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("security " + symbol)
		}
		return nil, fmt.Errorf("failed to get security in service: %w", err)
	}
	return security, nil
}

func (s *priceService) CreatePriceSource(ctx context.Context, symbol string, req dto.CreatePriceSourceRequest, userID string) (*domain.PriceSource, error) {
	security, err := s.requireSecurity(ctx, strings.ToUpper(symbol))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	source := domain.PriceSource{
		SourceID:   uuid.NewString(),
		Symbol:     security.Symbol,
		Type:       domain.PriceSourceType(req.Type),
		Priority:   req.Priority,
		Value:      req.Value,
		EndValue:   req.EndValue,
		URL:        req.URL,
		DatesPath:  req.DatesPath,
		PricesPath: req.PricesPath,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	if source.Priority == 0 {
		source.Priority = domain.PriorityMedium
	}
	if source.StartDate, err = optionalDay(req.StartDate); err != nil {
		return nil, err
	}
	if source.EndDate, err = optionalDay(req.EndDate); err != nil {
		return nil, err
	}
	if err := pricefeeds.Validate(source); err != nil {
		return nil, err
	}

	if err := s.priceRepo.SavePriceSource(ctx, source); err != nil {
		s.LogError(ctx, err, "Failed to save price source", slog.String("symbol", source.Symbol))
		return nil, fmt.Errorf("failed to create price source in service: %w", err)
	}
	s.LogInfo(ctx, "Price source created",
		slog.String("symbol", source.Symbol),
		slog.String("type", string(source.Type)),
		slog.Int("priority", source.Priority))
	return &source, nil
}

func optionalDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := dates.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return &d, nil
}

func (s *priceService) ListPriceSources(ctx context.Context, symbol string) ([]domain.PriceSource, error) {
	sources, err := s.priceRepo.ListPriceSources(ctx, strings.ToUpper(symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to list price sources in service: %w", err)
	}
	return sources, nil
}

// defaultSource is a constant 1 for the reporting currency and an empty Stored source
// for anything else, ready for manual prices.
func (s *priceService) defaultSource(security domain.Security) domain.PriceSource {
	now := time.Now().UTC()
	source := domain.PriceSource{
		SourceID: uuid.NewString(),
		Symbol:   security.Symbol,
		Type:     domain.PriceSourceStored,
		Priority: domain.PriorityMedium,
		AuditFields: domain.NewAuditFields(systemUserID, now),
	}
	if security.IsCash() && security.Symbol == s.reportingCurrency {
		source.Type = domain.PriceSourceConstant
		source.Priority = domain.PriorityLow
		source.Value = decimal.NewFromInt(1)
	}
	return source
}

func (s *priceService) EnsureDefaultSources(ctx context.Context, securities []domain.Security) error {
	var errs []error
	for _, security := range securities {
		existing, err := s.priceRepo.ListPriceSources(ctx, security.Symbol)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(existing) > 0 {
			continue
		}
		source := s.defaultSource(security)
		if err := s.priceRepo.SavePriceSource(ctx, source); err != nil {
			errs = append(errs, fmt.Errorf("default price source for %s: %w", security.Symbol, err))
			continue
		}
		s.LogDebug(ctx, "Default price source created",
			slog.String("symbol", security.Symbol),
			slog.String("type", string(source.Type)))
	}
	return errors.Join(errs...)
}

// AddManualPrice stores the observation in the symbol's Stored source, creating one if
// needed, then re-merges the series from that day on.
func (s *priceService) AddManualPrice(ctx context.Context, symbol string, req dto.ManualPriceRequest, userID string) (*domain.PriceObservation, error) {
	security, err := s.requireSecurity(ctx, strings.ToUpper(symbol))
	if err != nil {
		return nil, err
	}
	day, err := dates.Parse(req.Day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
	}

	source, err := s.priceRepo.FindPriceSourceByType(ctx, security.Symbol, domain.PriceSourceStored)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to find stored price source in service: %w", err)
		}
		created := s.defaultSource(*security)
		created.Type, created.Priority, created.Value = domain.PriceSourceStored, domain.PriorityMedium, decimal.Zero
		created.CreatedBy, created.LastUpdatedBy = userID, userID
		if err := s.priceRepo.SavePriceSource(ctx, created); err != nil {
			return nil, fmt.Errorf("failed to create stored price source in service: %w", err)
		}
		source = &created
	}

	observation := domain.PriceObservation{SourceID: source.SourceID, Symbol: security.Symbol, Day: day, Price: req.Price}
	if err := s.priceRepo.SaveObservations(ctx, []domain.PriceObservation{observation}); err != nil {
		return nil, fmt.Errorf("failed to save price in service: %w", err)
	}

	end := s.today()
	if day.After(end) {
		end = day
	}
	if _, err := s.SyncPrices(ctx, security.Symbol, day, end); err != nil {
		s.LogError(ctx, err, "Failed to merge prices after manual entry", slog.String("symbol", security.Symbol))
	}
	return &observation, nil
}

// loggedFeed turns a failing feed into an empty one so the merge can go on with the rest.
type loggedFeed struct {
	portfolio.PriceFeed
	source domain.PriceSource
	svc    *priceService
}

func (f loggedFeed) Observations(ctx context.Context, symbol string, start, end time.Time) ([]domain.PriceObservation, error) {
	observations, err := f.PriceFeed.Observations(ctx, symbol, start, end)
	if err != nil {
		f.svc.LogError(ctx, err, "Price feed failed, skipping it",
			slog.String("symbol", symbol),
			slog.String("source_id", f.source.SourceID),
			slog.String("type", string(f.source.Type)))
		return nil, nil
	}
	return observations, nil
}

func (s *priceService) SyncPrices(ctx context.Context, symbol string, start, end time.Time) (int, error) {
	symbol = strings.ToUpper(symbol)
	start, end = dates.Truncate(start), dates.Truncate(end)

	sources, err := s.priceRepo.ListPriceSources(ctx, symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to list price sources in service: %w", err)
	}
	feeds := make([]portfolio.PriceFeed, 0, len(sources))
	for _, source := range sources {
		feed, err := s.feeds.Feed(source)
		if err != nil {
			s.LogError(ctx, err, "Invalid price source, skipping it",
				slog.String("symbol", symbol),
				slog.String("source_id", source.SourceID))
			continue
		}
		feeds = append(feeds, loggedFeed{PriceFeed: feed, source: source, svc: s})
	}

	series, err := portfolio.MergePriceSeries(ctx, symbol, feeds, start, end)
	if err != nil {
		return 0, err
	}
	if err := s.priceRepo.ReplaceDailyPrices(ctx, symbol, portfolio.BufferedStart(start), end, series); err != nil {
		return 0, fmt.Errorf("failed to store prices in service: %w", err)
	}
	s.invalidate(symbol)

	s.LogDebug(ctx, "Prices merged",
		slog.String("symbol", symbol),
		slog.String("start", start.Format(dates.Format)),
		slog.String("end", end.Format(dates.Format)),
		slog.Int("days", len(series)))
	return len(series), nil
}

func (s *priceService) invalidate(symbol string) {
	prefix := symbol + "|"
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			s.cache.Delete(key)
		}
	}
}

// SyncAll brings every security up to today. Symbols with no prices at all are only
// logged; other failures are joined into the result after every symbol was tried.
func (s *priceService) SyncAll(ctx context.Context) error {
	securities, err := s.securityRepo.ListSecurities(ctx)
	if err != nil {
		return fmt.Errorf("failed to list securities in service: %w", err)
	}
	lastDays, err := s.priceRepo.LastDailyPriceDates(ctx)
	if err != nil {
		return fmt.Errorf("failed to read last price dates in service: %w", err)
	}

	today := s.today()
	var errs []error
	synced := 0
	for _, security := range securities {
		if err := ctx.Err(); err != nil {
			return err
		}
		start, ok := lastDays[security.Symbol]
		if !ok {
			start = domain.DefaultAccountCreationDate
		}
		if start.After(today) {
			start = today
		}
		if _, err := s.SyncPrices(ctx, security.Symbol, start, today); err != nil {
			if errors.Is(err, apperrors.ErrMissingPrice) {
				s.LogWarn(ctx, "No prices available", slog.String("symbol", security.Symbol))
				continue
			}
			s.LogError(ctx, err, "Failed to sync prices", slog.String("symbol", security.Symbol))
			errs = append(errs, fmt.Errorf("%s: %w", security.Symbol, err))
			continue
		}
		synced++
	}
	s.LogInfo(ctx, "Price sync finished", slog.Int("securities", len(securities)), slog.Int("synced", synced))
	return errors.Join(errs...)
}

func (s *priceService) PriceOn(ctx context.Context, symbol string, day time.Time) (decimal.Decimal, error) {
	day = dates.Truncate(day)
	key := priceCacheKey(symbol, day)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(decimal.Decimal), nil
	}

	price, err := s.priceRepo.FindDailyPrice(ctx, symbol, day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: %s on %s", apperrors.ErrMissingPrice, symbol, day.Format(dates.Format))
		}
		return decimal.Zero, fmt.Errorf("failed to get price in service: %w", err)
	}
	s.cache.SetDefault(key, price.Price)
	return price.Price, nil
}

func (s *priceService) ListPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.DailyPrice, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range ends before it starts", apperrors.ErrValidation)
	}
	prices, err := s.priceRepo.ListDailyPrices(ctx, strings.ToUpper(symbol), dates.Truncate(start), dates.Truncate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to list prices in service: %w", err)
	}
	return prices, nil
}
