package sqlite

import (
	"context"
	"testing"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

// newTestStore creates a Manager backed by a temp file for test isolation.
// Pass a custom dbPath (for example ":memory:") to override.
func newTestStore(t *testing.T, dbPath string, opts ...Option) *Manager {
	t.Helper()

	if dbPath == "" {
		dbPath = t.TempDir() + "/test.db"
	}

	store, err := New(context.Background(), dbPath, opts...)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		if cerr := store.Close(); cerr != nil {
			t.Fatalf("Failed to close test database: %v", cerr)
		}
	})

	return store
}

// testColumns mirrors the catalog schema.
var testColumns = []storage.ColumnDef{
	{Name: types.ColumnID, Type: "integer primary key autoincrement"},
	{Name: types.ColumnSubject, Type: "text not null"},
	{Name: types.ColumnGrade1, Type: "integer not null"},
	{Name: types.ColumnDateAdded, Type: "text not null"},
}

// newCatalogStore is newTestStore with the catalog table created.
func newCatalogStore(t *testing.T) *Manager {
	t.Helper()
	store := newTestStore(t, "")
	if err := store.CreateTable(context.Background(), types.TableCatalog, testColumns); err != nil {
		t.Fatalf("Failed to create catalog table: %v", err)
	}
	return store
}
