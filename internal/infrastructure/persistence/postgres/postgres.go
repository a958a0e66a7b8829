// Package postgres implements the repository ports over a shared pgx pool.
//
// Shared contract: keyed lookups return (nil, nil) on zero rows and an
// IntegrityError on more than one; list reads fail closed when any row fails
// decoding; multi-statement writes run in a transaction that rolls back on
// any failure, so partial writes are never observable.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/him-Tech/web2-backend-sub000/internal/decode"
	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func queryOne[T any](ctx context.Context, q querier, entity string, dec func(decode.Row) (*T, error), sql string, args ...any) (*T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, classify(err)
	}
	switch len(collected) {
	case 0:
		return nil, nil
	case 1:
		return dec(collected[0])
	default:
		return nil, domerrors.NewIntegrityError(entity, len(collected))
	}
}

func queryAll[T any](ctx context.Context, q querier, dec func(decode.Row) (*T, error), sql string, args ...any) ([]*T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, classify(err)
	}
	out := make([]*T, 0, len(collected))
	for _, row := range collected {
		entity, err := dec(row)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

func exec(ctx context.Context, q querier, sql string, args ...any) error {
	_, err := q.Exec(ctx, sql, args...)
	return classify(err)
}

// withTx runs fn inside a transaction. The deferred rollback is a no-op after
// a successful commit; the connection goes back to the pool on every path.
func withTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return classify(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := fn(tx); err != nil {
		return err
	}
	return classify(tx.Commit(ctx))
}

// classify maps constraint-violation SQLSTATEs onto the explicit error
// taxonomy; anything else passes through untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	var kind domerrors.ConstraintKind
	switch pgErr.Code {
	case "23503":
		kind = domerrors.ConstraintForeignKey
	case "23505":
		kind = domerrors.ConstraintUnique
	case "23514":
		kind = domerrors.ConstraintCheck
	case "23502":
		kind = domerrors.ConstraintNotNull
	default:
		return err
	}
	return &domerrors.ConstraintError{
		Kind:       kind,
		Table:      pgErr.TableName,
		Constraint: pgErr.ConstraintName,
		Err:        err,
	}
}
