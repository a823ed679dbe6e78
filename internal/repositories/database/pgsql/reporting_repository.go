package pgsql

import (
	"context"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/portfolio_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReportingRepository aggregates the stored cost basis records.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) GetRealizedGainsByYear(ctx context.Context, accountIDs []string) ([]domain.RealizedGain, error) {
	query := `
		SELECT EXTRACT(YEAR FROM trade_date)::int AS year, symbol, SUM(capital_gain)
		FROM cost_basis
		WHERE account_id = ANY($1) AND is_disposal
		GROUP BY year, symbol
		ORDER BY year, symbol;
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum realized gains", err)
	}
	defer rows.Close()

	gains := []domain.RealizedGain{}
	for rows.Next() {
		var g domain.RealizedGain
		if err := rows.Scan(&g.Year, &g.Symbol, &g.Gain); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan realized gain row", err)
		}
		gains = append(gains, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating realized gain rows", err)
	}
	return gains, nil
}

// GetCommissionsByYear negates the signed commissions so costs come out positive.
func (r *PgxReportingRepository) GetCommissionsByYear(ctx context.Context, accountIDs []string) ([]domain.YearAmount, error) {
	query := `
		SELECT EXTRACT(YEAR FROM trade_date)::int AS year, -SUM(commission)
		FROM cost_basis
		WHERE account_id = ANY($1)
		GROUP BY year
		ORDER BY year;
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum commissions", err)
	}
	defer rows.Close()

	amounts := []domain.YearAmount{}
	for rows.Next() {
		var a domain.YearAmount
		if err := rows.Scan(&a.Year, &a.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan commission row", err)
		}
		amounts = append(amounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating commission rows", err)
	}
	return amounts, nil
}
