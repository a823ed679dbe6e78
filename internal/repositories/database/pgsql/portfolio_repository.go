package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/portfolio_tracker/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPortfolioRepository stores what regeneration derives from an account's activities.
type PgxPortfolioRepository struct {
	BaseRepository
}

func newPgxPortfolioRepository(pool *pgxpool.Pool) portsrepo.PortfolioRepositoryFacade {
	return &PgxPortfolioRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PortfolioRepositoryFacade = (*PgxPortfolioRepository)(nil)

const costBasisColumns = `activity_id, account_id, symbol, trade_date, quantity, exchange_rate, price_per_share,
	commission, total_value, quantity_total, acb_total, acb_per_share, capital_gain, is_disposal, crosses_zero`

func (r *PgxPortfolioRepository) ListHoldings(ctx context.Context, accountIDs []string) ([]domain.HoldingInterval, error) {
	query := `
		SELECT account_id, symbol, quantity, start_date, end_date
		FROM holdings WHERE account_id = ANY($1)
		ORDER BY account_id, symbol, start_date;
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list holdings", err)
	}
	defer rows.Close()

	holdings := []domain.HoldingInterval{}
	for rows.Next() {
		var h domain.HoldingInterval
		if err := rows.Scan(&h.AccountID, &h.Symbol, &h.Quantity, &h.StartDate, &h.EndDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan holding row", err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating holding rows", err)
	}
	return holdings, nil
}

func (r *PgxPortfolioRepository) ListCostBasis(ctx context.Context, accountIDs []string, symbol string) ([]domain.CostBasisRecord, error) {
	query := `
		SELECT cb.activity_id, cb.account_id, cb.symbol, cb.trade_date, cb.quantity, cb.exchange_rate, cb.price_per_share,
			cb.commission, cb.total_value, cb.quantity_total, cb.acb_total, cb.acb_per_share, cb.capital_gain,
			cb.is_disposal, cb.crosses_zero
		FROM cost_basis cb
		JOIN activities a ON a.activity_id = cb.activity_id
		WHERE cb.account_id = ANY($1) AND ($2 = '' OR cb.symbol = $2)
		ORDER BY cb.symbol, cb.account_id, cb.trade_date, a.seq;
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs, symbol)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list cost basis", err)
	}
	defer rows.Close()

	records := []domain.CostBasisRecord{}
	for rows.Next() {
		var c domain.CostBasisRecord
		if err := rows.Scan(
			&c.ActivityID, &c.AccountID, &c.Symbol, &c.TradeDate, &c.Quantity, &c.ExchangeRate, &c.PricePerShare,
			&c.Commission, &c.TotalValue, &c.QuantityTotal, &c.ACBTotal, &c.ACBPerShare, &c.CapitalGain,
			&c.IsDisposal, &c.CrossesZero,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cost basis row", err)
		}
		records = append(records, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating cost basis rows", err)
	}
	return records, nil
}

func (r *PgxPortfolioRepository) ListIssues(ctx context.Context, accountID string) ([]domain.RegenerationIssue, error) {
	query := `
		SELECT issue_id, account_id, symbol, stage, message, trade_date, created_at
		FROM regeneration_issues WHERE account_id = $1
		ORDER BY stage, symbol;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list issues of account "+accountID, err)
	}
	defer rows.Close()

	issues := []domain.RegenerationIssue{}
	for rows.Next() {
		var i domain.RegenerationIssue
		var stage string
		if err := rows.Scan(&i.IssueID, &i.AccountID, &i.Symbol, &stage, &i.Message, &i.Day, &i.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan issue row", err)
		}
		i.Stage = domain.RegenerationStage(stage)
		issues = append(issues, i)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating issue rows", err)
	}
	return issues, nil
}

func (r *PgxPortfolioRepository) ReplaceHoldingsTx(ctx context.Context, tx pgx.Tx, accountID string, intervals []domain.HoldingInterval) error {
	if _, err := tx.Exec(ctx, `DELETE FROM holdings WHERE account_id = $1;`, accountID); err != nil {
		return apperrors.NewAppError(500, "failed to delete holdings of account "+accountID, err)
	}
	query := `
		INSERT INTO holdings (account_id, symbol, quantity, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5);
	`
	batch := &pgx.Batch{}
	for _, h := range intervals {
		batch.Queue(query, accountID, h.Symbol, h.Quantity, h.StartDate, h.EndDate)
	}
	return execBatch(ctx, tx, batch, "insert holdings of account "+accountID)
}

func (r *PgxPortfolioRepository) ReplaceCostBasisTx(ctx context.Context, tx pgx.Tx, accountID string, records []domain.CostBasisRecord) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cost_basis WHERE account_id = $1;`, accountID); err != nil {
		return apperrors.NewAppError(500, "failed to delete cost basis of account "+accountID, err)
	}
	query := `
		INSERT INTO cost_basis (` + costBasisColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	batch := &pgx.Batch{}
	for _, c := range records {
		batch.Queue(query,
			c.ActivityID, accountID, c.Symbol, c.TradeDate, c.Quantity, c.ExchangeRate, c.PricePerShare,
			c.Commission, c.TotalValue, c.QuantityTotal, c.ACBTotal, c.ACBPerShare, c.CapitalGain,
			c.IsDisposal, c.CrossesZero,
		)
	}
	return execBatch(ctx, tx, batch, "insert cost basis of account "+accountID)
}

func (r *PgxPortfolioRepository) ReplaceIssuesTx(ctx context.Context, tx pgx.Tx, accountID string, issues []domain.RegenerationIssue) error {
	if _, err := tx.Exec(ctx, `DELETE FROM regeneration_issues WHERE account_id = $1;`, accountID); err != nil {
		return apperrors.NewAppError(500, "failed to delete issues of account "+accountID, err)
	}
	query := `
		INSERT INTO regeneration_issues (issue_id, account_id, symbol, stage, message, trade_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, i := range issues {
		if i.IssueID == "" {
			i.IssueID = uuid.NewString()
		}
		if i.CreatedAt.IsZero() {
			i.CreatedAt = now
		}
		batch.Queue(query, i.IssueID, accountID, i.Symbol, string(i.Stage), i.Message, i.Day, i.CreatedAt)
	}
	return execBatch(ctx, tx, batch, "insert issues of account "+accountID)
}
