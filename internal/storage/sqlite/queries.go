package sqlite

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

// CreateTable issues CREATE TABLE IF NOT EXISTS. Safe to call on every start.
func (m *Manager) CreateTable(ctx context.Context, table types.Table, columns []storage.ColumnDef) error {
	stmt, err := buildCreateTable(table, columns)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	_, err = m.execute(ctx, "create table "+string(table), stmt, nil)
	return err
}

// DropTable issues DROP TABLE. It fails if the table does not exist.
func (m *Manager) DropTable(ctx context.Context, table types.Table) error {
	stmt, err := buildDropTable(table)
	if err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	_, err = m.execute(ctx, "drop table "+string(table), stmt, nil)
	return err
}

// Add inserts one row and returns its rowid.
func (m *Manager) Add(ctx context.Context, table types.Table, data storage.Fields) (int64, error) {
	stmt, args, err := buildInsert(table, data)
	if err != nil {
		return 0, fmt.Errorf("insert: %w", err)
	}
	res, err := m.execute(ctx, "insert into "+string(table), stmt, args)
	if err != nil {
		return 0, err
	}
	return res.lastInsertID, nil
}

// Select starts a query and returns a lazy cursor over its rows. The
// Manager holds a single connection, so the cursor must be closed before
// the next statement is issued; FetchOne and FetchAll do that themselves.
func (m *Manager) Select(ctx context.Context, table types.Table, q storage.Query) (storage.Cursor, error) {
	stmt, args, err := buildSelect(table, q)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	rows, err := m.query(ctx, "select from "+string(table), stmt, args)
	if err != nil {
		return nil, err
	}
	return &cursor{rows: rows}, nil
}

// Update sets data on every row matching criteria and returns the number of
// rows changed. Matching nothing is not an error.
func (m *Manager) Update(ctx context.Context, table types.Table, criteria, data storage.Fields) (int64, error) {
	stmt, args, err := buildUpdate(table, criteria, data)
	if err != nil {
		m.rejected("update", table, err)
		return 0, fmt.Errorf("update %s: %w", table, err)
	}
	res, err := m.execute(ctx, "update "+string(table), stmt, args)
	if err != nil {
		return 0, err
	}
	return res.rowsAffected, nil
}

// Delete removes every row matching criteria and returns the number of rows
// removed. Matching nothing is not an error.
func (m *Manager) Delete(ctx context.Context, table types.Table, criteria storage.Fields) (int64, error) {
	stmt, args, err := buildDelete(table, criteria)
	if err != nil {
		m.rejected("delete", table, err)
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}
	res, err := m.execute(ctx, "delete from "+string(table), stmt, args)
	if err != nil {
		return 0, err
	}
	return res.rowsAffected, nil
}

func (m *Manager) rejected(op string, table types.Table, err error) {
	if errors.Is(err, storage.ErrEmptyCriteria) {
		m.opts.logger.Warn("statement rejected", zap.String("op", op), zap.String("table", string(table)), zap.Error(err))
	}
}
