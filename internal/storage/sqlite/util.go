package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
)

// execResult is captured inside the transaction so it survives commit.
type execResult struct {
	lastInsertID int64
	rowsAffected int64
}

// withTx executes a function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// Otherwise, the transaction is committed.
func (m *Manager) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

// retryBusy runs fn, retrying with exponential backoff while it fails with
// SQLITE_BUSY. Any other error is returned immediately.
func (m *Manager) retryBusy(ctx context.Context, fn func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = m.opts.retryBackoff
	eb.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(eb, m.opts.busyRetries), ctx)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if IsBusyError(err) {
			m.opts.logger.Debug("database busy, retrying", zap.Int("attempt", attempt))
			return err
		}
		return backoff.Permanent(err)
	}, b)
}

// execute runs one mutating statement in its own transaction. Failures are
// logged together with the statement text and returned wrapped; they are
// never swallowed.
func (m *Manager) execute(ctx context.Context, op, stmt string, args []any) (execResult, error) {
	if m.IsClosed() {
		return execResult{}, storage.ErrClosed
	}

	var res execResult
	err := m.retryBusy(ctx, func() error {
		return m.withTx(ctx, func(tx *sql.Tx) error {
			r, err := tx.ExecContext(ctx, stmt, args...)
			if err != nil {
				return err
			}
			res.lastInsertID, _ = r.LastInsertId()
			res.rowsAffected, _ = r.RowsAffected()
			return nil
		})
	})
	if err != nil {
		m.logFailure(op, stmt, err)
		return execResult{}, wrapDBError(op, err)
	}

	m.opts.logger.Debug("statement executed",
		zap.String("op", op),
		zap.String("statement", stmt),
		zap.Int64("rows_affected", res.rowsAffected),
	)
	return res, nil
}

// query runs a SELECT and hands back the open rows.
func (m *Manager) query(ctx context.Context, op, stmt string, args []any) (*sql.Rows, error) {
	if m.IsClosed() {
		return nil, storage.ErrClosed
	}

	var rows *sql.Rows
	err := m.retryBusy(ctx, func() error {
		r, err := m.db.QueryContext(ctx, stmt, args...)
		if err != nil {
			return err
		}
		rows = r
		return nil
	})
	if err != nil {
		m.logFailure(op, stmt, err)
		return nil, wrapDBError(op, err)
	}
	m.opts.logger.Debug("query started", zap.String("op", op), zap.String("statement", stmt))
	return rows, nil
}

func (m *Manager) logFailure(op, stmt string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	m.opts.logger.Error("something went wrong with the following statement",
		zap.String("op", op),
		zap.String("statement", stmt),
		zap.Error(err),
	)
}
