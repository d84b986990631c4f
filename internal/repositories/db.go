package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// DB is satisfied by *pgxpool.Pool and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// NewUniqueViolation builds the error a Postgres unique index would raise.
// Non-Postgres stores use it so callers have a single error shape to match.
func NewUniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraint, Message: "duplicate key value violates unique constraint"}
}

func NewForeignKeyViolation(constraint string) error {
	return &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: constraint, Message: "violates foreign key constraint"}
}
