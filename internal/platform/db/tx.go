package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrTxConflict is returned when Postgres aborted a transaction that lost a
// serialization or deadlock race. The caller may retry the request.
var ErrTxConflict = errors.New("platform/db: transaction conflict")

// txOptions runs transactions at ReadCommitted so concurrent relative updates
// such as quantity = quantity + $1 queue on the row lock instead of failing.
var txOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

// WithTx executes fn within a transaction. The transaction is rolled back
// when fn returns an error.
func WithTx(ctx context.Context, pool *Pool, fn func(pgx.Tx) error) error {
	conn, err := pool.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, txOptions)
	if err != nil {
		return fmt.Errorf("platform/db: begin tx: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(tx); err != nil {
		return classifyTxError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return classifyTxError(fmt.Errorf("platform/db: commit tx: %w", err))
	}

	return nil
}

func classifyTxError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return fmt.Errorf("%w: %w", ErrTxConflict, err)
		}
	}
	return err
}
