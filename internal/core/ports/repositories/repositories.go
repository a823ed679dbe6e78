package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager        TransactionManager
	UserRepo         UserRepositoryFacade
	AccountRepo      AccountRepositoryWithTx
	SecurityRepo     SecurityRepositoryFacade
	ActivityRepo     ActivityRepositoryFacade
	PortfolioRepo    PortfolioRepositoryFacade
	PriceRepo        PriceRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	ReportingRepo    ReportingRepository
}
