// Package store implements the relational repositories over PostgreSQL.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
)

// Sentinel errors for conditions handlers translate to HTTP statuses.
// Everything else coming out of the store is an internal failure.
var (
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a unique-constraint violation (duplicate email).
	ErrConflict = errors.New("already exists")
	// ErrMissingReference reports a foreign-key violation: the row being
	// written points at a doctor, service or user that does not exist.
	ErrMissingReference = errors.New("referenced row does not exist")
)

// DB is the subset of pgxpool.Pool the store uses. Declared as an
// interface so tests can substitute a pgxmock pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Store struct {
	db DB
}

func New(db DB) *Store {
	return &Store{db: db}
}

// classify maps driver errors onto the store's sentinels, keeping the
// original error in the chain for logging.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return oops.With("operation", op).Wrap(ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return oops.With("operation", op).With("constraint", pgErr.ConstraintName).Wrap(ErrConflict)
		case pgerrcode.ForeignKeyViolation:
			return oops.With("operation", op).With("constraint", pgErr.ConstraintName).Wrap(ErrMissingReference)
		}
	}
	return oops.With("operation", op).Wrap(err)
}
