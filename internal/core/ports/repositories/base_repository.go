package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager hands out the transaction an account regeneration runs in.
// Every *Tx repository method takes the pgx.Tx it returns, so the whole rebuild
// commits or rolls back as one unit.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback is safe to defer; rolling back a committed transaction is a no-op.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
