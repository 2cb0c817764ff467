package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"storefront-sync/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrTransactionBegin   = errs.New("failed to begin transaction")
	ErrTransactionCommit  = errs.New("failed to commit transaction")
	ErrMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

func RunInTx[T any](ctx context.Context, db TxBeginner, fn func(tx DBTX) (T, error)) (T, error) {
	var zero T

	tx, err := db.Begin(ctx)
	if err != nil {
		return zero, errs.Mark(err, ErrTransactionBegin)
	}

	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback transaction", "error", rollbackErr)
			}
		}
	}()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	if err = tx.Commit(ctx); err != nil {
		return zero, errs.Mark(err, ErrTransactionCommit)
	}

	return result, nil
}

func RunInTxWithRetry[T any](ctx context.Context, db TxBeginner, maxRetries int, fn func(tx DBTX) (T, error)) (T, error) {
	var zero T

	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, err := RunInTx(ctx, db, fn)
		if err == nil {
			return result, nil
		}

		if !IsRetryable(err) {
			return zero, err
		}

		if attempt == maxRetries {
			slog.Error("transaction failed after max retries",
				"attempts", attempt+1,
				"error", err)
			return zero, errs.Mark(err, ErrMaxRetriesExceeded)
		}

		waitTime := time.Duration(attempt+1) * 100 * time.Millisecond
		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_time", waitTime,
			"error", err)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return zero, ErrMaxRetriesExceeded
}

func WithDefaultRetry[T any](ctx context.Context, db TxBeginner, fn func(tx DBTX) (T, error)) (T, error) {
	return RunInTxWithRetry(ctx, db, 3, fn)
}

// IsRetryable reports serialization failures (40001) and deadlocks (40P01).
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01":
		return true
	default:
		return false
	}
}

// IsUniqueViolation reports a 23505 error, optionally restricted to one constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
