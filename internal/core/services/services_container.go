package services

import (
	"net/http"

	"github.com/SscSPs/portfolio_tracker/internal/adapters/brokers"
	"github.com/SscSPs/portfolio_tracker/internal/adapters/pricefeeds"
	portsrepo "github.com/SscSPs/portfolio_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, registry *brokers.Registry) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first since it authorizes access for the others
	container.Account = NewAccountService(repos.AccountRepo, repos.ActivityRepo, registry)
	authorizer := container.Account.(portssvc.AccountAuthorizerSvc)

	feeds := pricefeeds.NewFactory(repos.PriceRepo, &http.Client{Timeout: cfg.PriceFeedTimeout})
	container.Price = NewPriceService(repos.PriceRepo, repos.SecurityRepo, feeds, cfg.ReportingCurrency, cfg.PriceCacheTTL)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, repos.SecurityRepo, container.Price, cfg.ReportingCurrency, cfg.PriceCacheTTL)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Security = NewSecurityService(repos.SecurityRepo, container.Price)
	container.Activity = NewActivityService(repos.ActivityRepo, registry, WithActivityAccountAuthorizer(authorizer))
	container.Portfolio = NewPortfolioService(repos, registry, container.Price, container.ExchangeRate,
		WithPortfolioAccountAuthorizer(authorizer))
	container.Reporting = NewReportingService(repos, container.Price, container.ExchangeRate,
		WithPerAccountCostBasis(cfg.CostBasisPerAccount))

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade   = (*accountService)(nil)
	_ portssvc.PortfolioSvcFacade = (*portfolioService)(nil)
)
