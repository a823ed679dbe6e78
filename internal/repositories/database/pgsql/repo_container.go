package pgsql

import (
	portsrepo "github.com/SscSPs/portfolio_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider creates a new repository provider with all repositories initialized.
// Every repository shares the pool, so any of them can act as the transaction manager.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	return portsrepo.RepositoryProvider{
		TxManager:        accountRepo,
		UserRepo:         newPgxUserRepository(pool),
		AccountRepo:      accountRepo,
		SecurityRepo:     newPgxSecurityRepository(pool),
		ActivityRepo:     newPgxActivityRepository(pool),
		PortfolioRepo:    newPgxPortfolioRepository(pool),
		PriceRepo:        newPgxPriceRepository(pool),
		ExchangeRateRepo: newPgxExchangeRateRepository(pool),
		ReportingRepo:    newPgxReportingRepository(pool),
	}
}
