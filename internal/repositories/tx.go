package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"
)

// Transactor runs fn as one unit of work. Repositories called with the ctx
// handed to fn join the transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

type pgTransactor struct {
	db DB
}

func NewTransactor(db DB) Transactor {
	return &pgTransactor{db: db}
}

func (t *pgTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		// no-op after a successful commit
		_ = tx.Rollback(ctx)
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(ctx), "commit tx")
}

// conn returns the transaction bound to ctx, or db.
func conn(ctx context.Context, db DB) DB {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db
}
