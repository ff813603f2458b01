// Package teststore provides SQLite-backed test helpers for packages that
// sit above storage.
//
// Each store lives in its own temp file and is closed when the test ends.
// Helpers go through the storage.Store interface.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    env := teststore.NewEnv(t, catalog.Schema())
//	    env.Insert(storage.Fields{{Column: types.ColumnSubject, Value: "Math"}, ...})
//	    env.AssertCount(1)
//	}
package teststore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage/sqlite"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

// New creates an isolated temp-file SQLite store for a single test.
func New(t testing.TB) *sqlite.Manager {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.db")
	store, err := sqlite.New(context.Background(), path)
	if err != nil {
		t.Fatalf("teststore: failed to open %s: %v", path, err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("teststore: close: %v", err)
		}
	})
	return store
}

// Env is a store with the catalog table created plus assertion helpers.
type Env struct {
	t     testing.TB
	Store storage.Store
	Ctx   context.Context
}

// NewEnv creates the catalog table with schema in a fresh store.
func NewEnv(t testing.TB, schema []storage.ColumnDef) *Env {
	t.Helper()
	store := New(t)
	ctx := context.Background()
	if err := store.CreateTable(ctx, types.TableCatalog, schema); err != nil {
		t.Fatalf("teststore: create table: %v", err)
	}
	return &Env{t: t, Store: store, Ctx: ctx}
}

// Insert adds a raw row, bypassing any validation above the store.
func (e *Env) Insert(data storage.Fields) int64 {
	e.t.Helper()
	id, err := e.Store.Add(e.Ctx, types.TableCatalog, data)
	if err != nil {
		e.t.Fatalf("Insert failed: %v", err)
	}
	return id
}

// Rows returns every catalog row in id order.
func (e *Env) Rows() []types.Record {
	e.t.Helper()
	cur, err := e.Store.Select(e.Ctx, types.TableCatalog, storage.Query{OrderBy: types.ColumnID})
	if err != nil {
		e.t.Fatalf("Select failed: %v", err)
	}
	rows, err := cur.FetchAll()
	if err != nil {
		e.t.Fatalf("FetchAll failed: %v", err)
	}
	recs := make([]types.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := types.RecordFromRow(row)
		if err != nil {
			e.t.Fatalf("RecordFromRow failed: %v", err)
		}
		recs = append(recs, rec)
	}
	return recs
}

// AssertCount fails the test unless the catalog holds exactly n rows.
func (e *Env) AssertCount(n int) {
	e.t.Helper()
	if got := len(e.Rows()); got != n {
		e.t.Errorf("catalog has %d rows, want %d", got, n)
	}
}
