package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/portfolio_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/portfolio_tracker/internal/models"
	"github.com/SscSPs/portfolio_tracker/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxActivityRepository stores raw broker records and the canonical activities derived from them.
type PgxActivityRepository struct {
	BaseRepository
}

func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepositoryFacade {
	return &PgxActivityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ActivityRepositoryFacade = (*PgxActivityRepository)(nil)

const rawActivityColumns = `raw_activity_id, account_id, external_id, trade_date, type, action, symbol, currency,
	description, quantity, price, net_amount, commission, created_at, created_by`

// seq is assigned by the database on insert and only ever read back.
const rawActivitySelectColumns = rawActivityColumns + `, seq`

const activityColumns = `activity_id, account_id, trade_date, security, cash, description,
	quantity, price, net_amount, commission, type, raw_activity_id, seq, created_at`

// queryer is satisfied by both the pool and a transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PgxActivityRepository) SaveRawActivities(ctx context.Context, raws []domain.RawActivity) (int, error) {
	if len(raws) == 0 {
		return 0, nil
	}
	query := `
		INSERT INTO raw_activities (` + rawActivityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (account_id, external_id) WHERE external_id IS NOT NULL DO NOTHING;
	`

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	batch := &pgx.Batch{}
	for _, raw := range raws {
		m := mapping.ToModelRawActivity(raw)
		batch.Queue(query,
			m.RawActivityID, m.AccountID, m.ExternalID, m.TradeDate, m.Type, m.Action, m.Symbol, m.Currency,
			m.Description, m.Quantity, m.Price, m.NetAmount, m.Commission, m.CreatedAt, m.CreatedBy,
		)
	}

	inserted := 0
	br := tx.SendBatch(ctx, batch)
	for range raws {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return 0, apperrors.NewAppError(500, "failed to save raw activities", err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, apperrors.NewAppError(500, "failed to save raw activities", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *PgxActivityRepository) ListRawActivities(ctx context.Context, accountID string) ([]domain.RawActivity, error) {
	return listRawActivities(ctx, r.Pool, accountID)
}

func (r *PgxActivityRepository) ListRawActivitiesTx(ctx context.Context, tx pgx.Tx, accountID string) ([]domain.RawActivity, error) {
	return listRawActivities(ctx, tx, accountID)
}

func listRawActivities(ctx context.Context, q queryer, accountID string) ([]domain.RawActivity, error) {
	query := `SELECT ` + rawActivitySelectColumns + ` FROM raw_activities
		WHERE account_id = $1 ORDER BY trade_date, seq;`
	rows, err := q.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list raw activities of account "+accountID, err)
	}
	defer rows.Close()

	raws := []domain.RawActivity{}
	for rows.Next() {
		var m models.RawActivity
		if err := rows.Scan(
			&m.RawActivityID, &m.AccountID, &m.ExternalID, &m.TradeDate, &m.Type, &m.Action, &m.Symbol, &m.Currency,
			&m.Description, &m.Quantity, &m.Price, &m.NetAmount, &m.Commission, &m.CreatedAt, &m.CreatedBy, &m.Seq,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan raw activity row", err)
		}
		raws = append(raws, mapping.ToDomainRawActivity(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating raw activity rows", err)
	}
	return raws, nil
}

func (r *PgxActivityRepository) ListActivities(ctx context.Context, accountIDs []string) ([]domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities
		WHERE account_id = ANY($1) ORDER BY trade_date, account_id, seq;`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list activities", err)
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		var m models.Activity
		if err := rows.Scan(
			&m.ActivityID, &m.AccountID, &m.TradeDate, &m.Security, &m.Cash, &m.Description,
			&m.Quantity, &m.Price, &m.NetAmount, &m.Commission, &m.Type, &m.RawActivityID, &m.Seq, &m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan activity row", err)
		}
		activities = append(activities, mapping.ToDomainActivity(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating activity rows", err)
	}
	return activities, nil
}

func (r *PgxActivityRepository) LastActivityDate(ctx context.Context, accountID string) (*time.Time, error) {
	var last *time.Time
	err := r.Pool.QueryRow(ctx, `SELECT MAX(trade_date) FROM activities WHERE account_id = $1;`, accountID).Scan(&last)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read last activity date of account "+accountID, err)
	}
	return last, nil
}

// ReplaceActivitiesTx drops the account's activities, cascading to their cost basis
// records, and inserts the given ones in order. Each activity's Seq is its position
// in the slice, so same-day activities read back in the order given here.
func (r *PgxActivityRepository) ReplaceActivitiesTx(ctx context.Context, tx pgx.Tx, accountID string, activities []domain.Activity) ([]domain.Activity, error) {
	if _, err := tx.Exec(ctx, `DELETE FROM activities WHERE account_id = $1;`, accountID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete activities of account "+accountID, err)
	}

	query := `
		INSERT INTO activities (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	now := time.Now().UTC()
	stored := make([]domain.Activity, len(activities))
	batch := &pgx.Batch{}
	for i, a := range activities {
		if a.ActivityID == "" {
			a.ActivityID = uuid.NewString()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		a.Seq = int64(i + 1)
		a.AccountID = accountID
		stored[i] = a

		m := mapping.ToModelActivity(a)
		batch.Queue(query,
			m.ActivityID, m.AccountID, m.TradeDate, m.Security, m.Cash, m.Description,
			m.Quantity, m.Price, m.NetAmount, m.Commission, m.Type, m.RawActivityID, m.Seq, m.CreatedAt,
		)
	}
	if err := execBatch(ctx, tx, batch, "insert activities of account "+accountID); err != nil {
		return nil, err
	}
	return stored, nil
}
