package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// RawActivityReader defines read operations for ingested broker records
type RawActivityReader interface {
	// ListRawActivities retrieves the raw records of an account in trade date order.
	ListRawActivities(ctx context.Context, accountID string) ([]domain.RawActivity, error)
}

// RawActivityWriter defines write operations for ingested broker records
type RawActivityWriter interface {
	// SaveRawActivities appends raw records, skipping any whose external id is already
	// stored for the account. It returns how many were inserted.
	SaveRawActivities(ctx context.Context, raws []domain.RawActivity) (int, error)
}

// RawActivityTransactionSupport defines raw record reads inside a regeneration
type RawActivityTransactionSupport interface {
	// ListRawActivitiesTx is ListRawActivities within tx.
	ListRawActivitiesTx(ctx context.Context, tx pgx.Tx, accountID string) ([]domain.RawActivity, error)
}

// ActivityReader defines read operations for canonical activities
type ActivityReader interface {
	// ListActivities retrieves the activities of the given accounts in trade date order.
	ListActivities(ctx context.Context, accountIDs []string) ([]domain.Activity, error)

	// LastActivityDate returns the latest trade date of an account, nil when it has none.
	LastActivityDate(ctx context.Context, accountID string) (*time.Time, error)
}

// ActivityTransactionSupport defines activity writes made during regeneration
type ActivityTransactionSupport interface {
	// ReplaceActivitiesTx deletes the account's activities and inserts the given ones.
	// Activities without an id get one.
	ReplaceActivitiesTx(ctx context.Context, tx pgx.Tx, accountID string, activities []domain.Activity) ([]domain.Activity, error)
}

// ActivityRepositoryFacade combines raw and canonical activity operations
type ActivityRepositoryFacade interface {
	RawActivityReader
	RawActivityWriter
	RawActivityTransactionSupport
	ActivityReader
	ActivityTransactionSupport
}
