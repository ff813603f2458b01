package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlite3 "github.com/ncruces/go-sqlite3"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
)

// wrapDBError wraps a database error with operation context.
// It attaches the storage sentinel that matches the SQLite result code so
// callers can use errors.Is without knowing the driver.
func wrapDBError(op string, err error) error {
	if err == nil {
		return nil
	}
	if sentinel := classify(err); sentinel != nil {
		return fmt.Errorf("%s: %w: %w", op, sentinel, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// wrapDBErrorf wraps a database error with formatted operation context
func wrapDBErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return wrapDBError(fmt.Sprintf(format, args...), err)
}

// classify maps a driver error onto a storage sentinel, or nil.
func classify(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return storage.ErrNotFound
	case IsConstraintError(err):
		return storage.ErrConstraint
	case IsBusyError(err):
		return storage.ErrBusy
	}
	return nil
}

// IsConstraintError checks if an error is a constraint violation
// (NOT NULL, UNIQUE, CHECK, FOREIGN KEY).
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sqlite3.CONSTRAINT) {
		return true
	}
	return strings.Contains(err.Error(), "constraint failed")
}

// IsBusyError checks if an error is SQLITE_BUSY or SQLITE_LOCKED.
func IsBusyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sqlite3.BUSY) || errors.Is(err, sqlite3.LOCKED) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database is busy")
}
