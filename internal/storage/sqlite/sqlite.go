// Package sqlite implements the storage interface using SQLite.
//
// The package is split into focused files:
//
//   - store.go: Manager struct, New() constructor, connection setup and Close
//   - options.go: functional options (logger, busy retry budget)
//   - queries_helpers.go: pure statement builders; no database access
//   - queries.go: CreateTable, DropTable, Add, Select, Update, Delete
//   - cursor.go: lazy row cursor returned by Select
//   - util.go: transaction and busy-retry helpers
//   - errors.go: error wrapping and classification
package sqlite
