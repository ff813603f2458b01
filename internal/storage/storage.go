// Package storage provides the table-agnostic persistence contract.
//
// The concrete implementation lives in the sqlite sub-package. This package
// holds the interface and value types referenced by both the implementation
// and its consumers (internal/catalog, internal/telemetry, cmd/catalog).
package storage

import (
	"context"
	"errors"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

// Sentinel errors for common database conditions.
var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConstraint indicates a NOT NULL, UNIQUE or type constraint violation.
	ErrConstraint = errors.New("constraint violation")

	// ErrBusy indicates the database file stayed locked after retrying.
	ErrBusy = errors.New("database is busy")

	// ErrInvalidIdentifier is returned for a table or column name that is
	// not a plain SQL identifier.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrEmptyCriteria guards Update and Delete against touching every row.
	ErrEmptyCriteria = errors.New("refusing to modify without criteria")

	// ErrEmptyData is returned by Update when there is nothing to set.
	ErrEmptyData = errors.New("no columns to update")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("store is closed")
)

// Field pairs a column with a value. Statements keep Field order.
type Field struct {
	Column types.Column
	Value  any
}

// Fields is an ordered column → value mapping.
type Fields []Field

// Columns returns the column names in order.
func (f Fields) Columns() []types.Column {
	cols := make([]types.Column, len(f))
	for i, field := range f {
		cols[i] = field.Column
	}
	return cols
}

// Values returns the bound values in order.
func (f Fields) Values() []any {
	vals := make([]any, len(f))
	for i, field := range f {
		vals[i] = field.Value
	}
	return vals
}

// Has reports whether col is present (case-insensitively).
func (f Fields) Has(col types.Column) bool {
	for _, field := range f {
		if types.SameColumn(field.Column, col) {
			return true
		}
	}
	return false
}

// Get returns the value for col (case-insensitively).
func (f Fields) Get(col types.Column) (any, bool) {
	for _, field := range f {
		if types.SameColumn(field.Column, col) {
			return field.Value, true
		}
	}
	return nil, false
}

// ColumnDef is one column of a CREATE TABLE statement.
type ColumnDef struct {
	Name types.Column
	Type string // e.g. "integer primary key autoincrement"
}

// Query describes a SELECT.
type Query struct {
	Criteria   Fields
	OrderBy    types.Column // empty means database order
	Descending bool
}

// Row is one result row in column order.
type Row []any

// Cursor is a lazy, forward-only view over a SELECT result. Nothing is
// fetched until the caller asks for it. Callers must Close it.
type Cursor interface {
	Columns() ([]string, error)
	Next() bool
	Row() (Row, error)
	FetchOne() (Row, error) // ErrNotFound when the result is empty
	FetchAll() ([]Row, error)
	Err() error
	Close() error
}

// Store is the interface satisfied by *sqlite.Manager.
// Consumers depend on this interface rather than on the concrete type so that
// alternative implementations (telemetry wrappers, fakes) can be substituted.
type Store interface {
	CreateTable(ctx context.Context, table types.Table, columns []ColumnDef) error
	DropTable(ctx context.Context, table types.Table) error
	Add(ctx context.Context, table types.Table, data Fields) (int64, error)
	Select(ctx context.Context, table types.Table, q Query) (Cursor, error)
	Update(ctx context.Context, table types.Table, criteria, data Fields) (int64, error)
	Delete(ctx context.Context, table types.Table, criteria Fields) (int64, error)

	// Lifecycle
	Close() error
}
