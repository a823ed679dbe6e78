package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/portfolio_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSecurityRepository struct {
	BaseRepository
}

func newPgxSecurityRepository(pool *pgxpool.Pool) portsrepo.SecurityRepositoryFacade {
	return &PgxSecurityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SecurityRepositoryFacade = (*PgxSecurityRepository)(nil)

const securityColumns = `symbol, currency, type, description, created_at, created_by, last_updated_at, last_updated_by`

const insertSecurity = `
	INSERT INTO securities (` + securityColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func scanSecurity(row pgx.Row) (domain.Security, error) {
	var s domain.Security
	var typ string
	err := row.Scan(&s.Symbol, &s.Currency, &typ, &s.Description, &s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy)
	s.Type = domain.SecurityType(typ)
	return s, err
}

func securityArgs(s domain.Security) []any {
	return []any{s.Symbol, s.Currency, string(s.Type), s.Description, s.CreatedAt, s.CreatedBy, s.LastUpdatedAt, s.LastUpdatedBy}
}

func (r *PgxSecurityRepository) SaveSecurity(ctx context.Context, security domain.Security) error {
	_, err := r.Pool.Exec(ctx, insertSecurity+";", securityArgs(security)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: security %s already exists", apperrors.ErrDuplicate, security.Symbol)
		}
		return apperrors.NewAppError(500, "failed to save security "+security.Symbol, err)
	}
	return nil
}

func (r *PgxSecurityRepository) FindSecurityBySymbol(ctx context.Context, symbol string) (*domain.Security, error) {
	s, err := scanSecurity(r.Pool.QueryRow(ctx, `SELECT `+securityColumns+` FROM securities WHERE symbol = $1;`, symbol))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find security "+symbol, err)
	}
	return &s, nil
}

func (r *PgxSecurityRepository) ListSecurities(ctx context.Context) ([]domain.Security, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+securityColumns+` FROM securities ORDER BY symbol;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list securities", err)
	}
	defer rows.Close()

	securities := []domain.Security{}
	for rows.Next() {
		s, err := scanSecurity(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan security row", err)
		}
		securities = append(securities, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating security rows", err)
	}
	return securities, nil
}

// EnsureSecuritiesTx inserts missing securities. Existing symbols are left untouched,
// so a security created by hand keeps its type and description.
func (r *PgxSecurityRepository) EnsureSecuritiesTx(ctx context.Context, tx pgx.Tx, securities []domain.Security) ([]domain.Security, error) {
	if len(securities) == 0 {
		return nil, nil
	}
	batch := &pgx.Batch{}
	for _, s := range securities {
		batch.Queue(insertSecurity+` ON CONFLICT (symbol) DO NOTHING;`, securityArgs(s)...)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	var created []domain.Security
	for _, s := range securities {
		tag, err := br.Exec()
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to ensure security "+s.Symbol, err)
		}
		if tag.RowsAffected() == 1 {
			created = append(created, s)
		}
	}
	return created, nil
}
