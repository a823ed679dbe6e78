package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/portfolio_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/portfolio_tracker/internal/models"
	"github.com/SscSPs/portfolio_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPriceRepository stores price sources, their observations and the merged daily series.
type PgxPriceRepository struct {
	BaseRepository
}

func newPgxPriceRepository(pool *pgxpool.Pool) portsrepo.PriceRepositoryFacade {
	return &PgxPriceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PriceRepositoryFacade = (*PgxPriceRepository)(nil)

const priceSourceColumns = `source_id, symbol, type, priority, value, start_date, end_date, end_value,
	url, dates_path, prices_path, created_at, created_by, last_updated_at, last_updated_by`

func scanPriceSource(row pgx.Row) (domain.PriceSource, error) {
	var m models.PriceSource
	err := row.Scan(
		&m.SourceID, &m.Symbol, &m.Type, &m.Priority, &m.Value, &m.StartDate, &m.EndDate, &m.EndValue,
		&m.URL, &m.DatesPath, &m.PricesPath, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.PriceSource{}, err
	}
	return mapping.ToDomainPriceSource(m), nil
}

func (r *PgxPriceRepository) SavePriceSource(ctx context.Context, source domain.PriceSource) error {
	m := mapping.ToModelPriceSource(source)
	query := `
		INSERT INTO price_sources (` + priceSourceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SourceID, m.Symbol, m.Type, m.Priority, m.Value, m.StartDate, m.EndDate, m.EndValue,
		m.URL, m.DatesPath, m.PricesPath, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save price source for "+source.Symbol, err)
	}
	return nil
}

// ListPriceSources returns the sources of symbol, highest priority first.
func (r *PgxPriceRepository) ListPriceSources(ctx context.Context, symbol string) ([]domain.PriceSource, error) {
	query := `SELECT ` + priceSourceColumns + ` FROM price_sources WHERE symbol = $1 ORDER BY priority DESC, created_at;`
	rows, err := r.Pool.Query(ctx, query, symbol)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list price sources of "+symbol, err)
	}
	defer rows.Close()

	sources := []domain.PriceSource{}
	for rows.Next() {
		s, err := scanPriceSource(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan price source row", err)
		}
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating price source rows", err)
	}
	return sources, nil
}

func (r *PgxPriceRepository) FindPriceSourceByType(ctx context.Context, symbol string, sourceType domain.PriceSourceType) (*domain.PriceSource, error) {
	query := `SELECT ` + priceSourceColumns + ` FROM price_sources
		WHERE symbol = $1 AND type = $2 ORDER BY priority DESC, created_at LIMIT 1;`
	s, err := scanPriceSource(r.Pool.QueryRow(ctx, query, symbol, string(sourceType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find price source of "+symbol, err)
	}
	return &s, nil
}

func (r *PgxPriceRepository) ListObservations(ctx context.Context, sourceID string, start, end time.Time) ([]domain.PriceObservation, error) {
	query := `
		SELECT source_id, symbol, day, price FROM price_observations
		WHERE source_id = $1 AND day BETWEEN $2 AND $3
		ORDER BY day;
	`
	rows, err := r.Pool.Query(ctx, query, sourceID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list observations of source "+sourceID, err)
	}
	defer rows.Close()

	observations := []domain.PriceObservation{}
	for rows.Next() {
		var o domain.PriceObservation
		if err := rows.Scan(&o.SourceID, &o.Symbol, &o.Day, &o.Price); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan observation row", err)
		}
		observations = append(observations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating observation rows", err)
	}
	return observations, nil
}

func (r *PgxPriceRepository) SaveObservations(ctx context.Context, observations []domain.PriceObservation) error {
	if len(observations) == 0 {
		return nil
	}
	query := `
		INSERT INTO price_observations (source_id, symbol, day, price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (source_id, day) DO UPDATE SET price = EXCLUDED.price;
	`
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	batch := &pgx.Batch{}
	for _, o := range observations {
		batch.Queue(query, o.SourceID, o.Symbol, o.Day, o.Price)
	}
	if err := execBatch(ctx, tx, batch, "save price observations"); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxPriceRepository) FindDailyPrice(ctx context.Context, symbol string, day time.Time) (*domain.DailyPrice, error) {
	p := domain.DailyPrice{Symbol: symbol, Day: day}
	err := r.Pool.QueryRow(ctx, `SELECT price FROM daily_prices WHERE symbol = $1 AND day = $2;`, symbol, day).Scan(&p.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find price of "+symbol, err)
	}
	return &p, nil
}

func (r *PgxPriceRepository) ListDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.DailyPrice, error) {
	query := `
		SELECT symbol, day, price FROM daily_prices
		WHERE symbol = $1 AND day BETWEEN $2 AND $3
		ORDER BY day;
	`
	rows, err := r.Pool.Query(ctx, query, symbol, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list prices of "+symbol, err)
	}
	defer rows.Close()

	prices := []domain.DailyPrice{}
	for rows.Next() {
		var p domain.DailyPrice
		if err := rows.Scan(&p.Symbol, &p.Day, &p.Price); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan daily price row", err)
		}
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating daily price rows", err)
	}
	return prices, nil
}

func (r *PgxPriceRepository) LastDailyPriceDates(ctx context.Context) (map[string]time.Time, error) {
	rows, err := r.Pool.Query(ctx, `SELECT symbol, MAX(day) FROM daily_prices GROUP BY symbol;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read last price dates", err)
	}
	defer rows.Close()

	last := make(map[string]time.Time)
	for rows.Next() {
		var symbol string
		var day time.Time
		if err := rows.Scan(&symbol, &day); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan last price date", err)
		}
		last[symbol] = day
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating last price dates", err)
	}
	return last, nil
}

// ReplaceDailyPrices swaps the window atomically so readers never see a partial series.
func (r *PgxPriceRepository) ReplaceDailyPrices(ctx context.Context, symbol string, start, end time.Time, prices []domain.DailyPrice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM daily_prices WHERE symbol = $1 AND day BETWEEN $2 AND $3;`, symbol, start, end); err != nil {
		return apperrors.NewAppError(500, "failed to delete prices of "+symbol, err)
	}

	// the merged series may reach before start because of the lookback buffer
	query := `
		INSERT INTO daily_prices (symbol, day, price) VALUES ($1, $2, $3)
		ON CONFLICT (symbol, day) DO UPDATE SET price = EXCLUDED.price;
	`
	batch := &pgx.Batch{}
	for _, p := range prices {
		batch.Queue(query, symbol, p.Day, p.Price)
	}
	if err := execBatch(ctx, tx, batch, "insert prices of "+symbol); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
