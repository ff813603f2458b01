package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

func addRow(t *testing.T, m *Manager, subject string, grade int64, date string) int64 {
	t.Helper()
	id, err := m.Add(context.Background(), types.TableCatalog, storage.Fields{
		{Column: types.ColumnSubject, Value: subject},
		{Column: types.ColumnGrade1, Value: grade},
		{Column: types.ColumnDateAdded, Value: date},
	})
	require.NoError(t, err)
	return id
}

func countRows(t *testing.T, m *Manager) int {
	t.Helper()
	cur, err := m.Select(context.Background(), types.TableCatalog, storage.Query{})
	require.NoError(t, err)
	rows, err := cur.FetchAll()
	require.NoError(t, err)
	return len(rows)
}

func TestCreateTableIsIdempotent(t *testing.T) {
	m := newCatalogStore(t)
	require.NoError(t, m.CreateTable(context.Background(), types.TableCatalog, testColumns))
	assert.Equal(t, 0, countRows(t, m))
}

func TestDropTable(t *testing.T) {
	ctx := context.Background()
	m := newCatalogStore(t)

	require.NoError(t, m.DropTable(ctx, types.TableCatalog))

	// A second drop fails with the underlying database error.
	err := m.DropTable(ctx, types.TableCatalog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such table")
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	m := newCatalogStore(t)
	assert.Equal(t, int64(1), addRow(t, m, "Math", 90, "2024-01-01T00:00:00.000000"))
	assert.Equal(t, int64(2), addRow(t, m, "Art", 70, "2024-01-02T00:00:00.000000"))
}

func TestAddMissingRequiredColumnIsConstraintError(t *testing.T) {
	m := newCatalogStore(t)
	_, err := m.Add(context.Background(), types.TableCatalog, storage.Fields{
		{Column: types.ColumnSubject, Value: "Math"},
		{Column: types.ColumnDateAdded, Value: "2024-01-01T00:00:00.000000"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrConstraint), "got %v", err)
	assert.Equal(t, 0, countRows(t, m), "failed insert must roll back")
}

func TestAddToMissingTableFails(t *testing.T) {
	m := newTestStore(t, "")
	_, err := m.Add(context.Background(), types.TableCatalog, storage.Fields{{Column: types.ColumnSubject, Value: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such table")
}

func TestSelectCriteriaAndOrdering(t *testing.T) {
	ctx := context.Background()
	m := newCatalogStore(t)
	addRow(t, m, "Physics", 80, "2024-01-03T00:00:00.000000")
	addRow(t, m, "Art", 70, "2024-01-01T00:00:00.000000")
	addRow(t, m, "Math", 90, "2024-01-02T00:00:00.000000")

	cur, err := m.Select(ctx, types.TableCatalog, storage.Query{OrderBy: types.ColumnSubject})
	require.NoError(t, err)
	rows, err := cur.FetchAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	var subjects []string
	for _, row := range rows {
		rec, err := types.RecordFromRow(row)
		require.NoError(t, err)
		subjects = append(subjects, rec.Subject)
	}
	assert.Equal(t, []string{"Art", "Math", "Physics"}, subjects)

	cur, err = m.Select(ctx, types.TableCatalog, storage.Query{OrderBy: "date_added", Descending: true})
	require.NoError(t, err)
	first, err := cur.FetchOne()
	require.NoError(t, err)
	rec, err := types.RecordFromRow(first)
	require.NoError(t, err)
	assert.Equal(t, "Physics", rec.Subject)

	cur, err = m.Select(ctx, types.TableCatalog, storage.Query{
		Criteria: storage.Fields{{Column: types.ColumnGrade1, Value: int64(90)}},
	})
	require.NoError(t, err)
	row, err := cur.FetchOne()
	require.NoError(t, err)
	rec, err = types.RecordFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, "Math", rec.Subject)
}

func TestSelectDefaultsToInsertionOrder(t *testing.T) {
	m := newCatalogStore(t)
	addRow(t, m, "B", 1, "2024-01-02T00:00:00.000000")
	addRow(t, m, "A", 2, "2024-01-01T00:00:00.000000")

	cur, err := m.Select(context.Background(), types.TableCatalog, storage.Query{})
	require.NoError(t, err)
	cols, err := cur.Columns()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "Subject", "Grade1", "Date_added"}, cols)

	var ids []int64
	for cur.Next() {
		row, err := cur.Row()
		require.NoError(t, err)
		rec, err := types.RecordFromRow(row)
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}
	require.NoError(t, cur.Err())
	require.NoError(t, cur.Close())
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestFetchOneOnEmptyResultIsNotFound(t *testing.T) {
	m := newCatalogStore(t)
	cur, err := m.Select(context.Background(), types.TableCatalog, storage.Query{
		Criteria: storage.Fields{{Column: types.ColumnID, Value: int64(42)}},
	})
	require.NoError(t, err)
	_, err = cur.FetchOne()
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	m := newCatalogStore(t)
	id := addRow(t, m, "Math", 90, "2024-01-01T00:00:00.000000")

	n, err := m.Update(ctx, types.TableCatalog,
		storage.Fields{{Column: types.ColumnID, Value: id}},
		storage.Fields{{Column: types.ColumnSubject, Value: "Physics"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	cur, err := m.Select(ctx, types.TableCatalog, storage.Query{Criteria: storage.Fields{{Column: types.ColumnID, Value: id}}})
	require.NoError(t, err)
	row, err := cur.FetchOne()
	require.NoError(t, err)
	rec, err := types.RecordFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, types.Record{ID: id, Subject: "Physics", Grade1: 90, DateAdded: "2024-01-01T00:00:00.000000"}, rec)

	n, err = m.Update(ctx, types.TableCatalog,
		storage.Fields{{Column: types.ColumnID, Value: int64(999)}},
		storage.Fields{{Column: types.ColumnSubject, Value: "Nothing"}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	m := newCatalogStore(t)
	addRow(t, m, "Math", 90, "2024-01-01T00:00:00.000000")
	id := addRow(t, m, "Art", 70, "2024-01-02T00:00:00.000000")

	n, err := m.Delete(ctx, types.TableCatalog, storage.Fields{{Column: types.ColumnID, Value: id}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, countRows(t, m))

	n, err = m.Delete(ctx, types.TableCatalog, storage.Fields{{Column: types.ColumnID, Value: id}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, 1, countRows(t, m))
}

func TestDeleteWithoutCriteriaIsRejected(t *testing.T) {
	m := newCatalogStore(t)
	addRow(t, m, "Math", 90, "2024-01-01T00:00:00.000000")

	_, err := m.Delete(context.Background(), types.TableCatalog, nil)
	assert.ErrorIs(t, err, storage.ErrEmptyCriteria)
	_, err = m.Update(context.Background(), types.TableCatalog, nil, storage.Fields{{Column: types.ColumnSubject, Value: "x"}})
	assert.ErrorIs(t, err, storage.ErrEmptyCriteria)
	assert.Equal(t, 1, countRows(t, m))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := newTestStore(t, ":memory:")
	require.NoError(t, m.CreateTable(ctx, types.TableCatalog, testColumns))
	addRow(t, m, "Math", 90, "2024-01-01T00:00:00.000000")
	assert.Equal(t, 1, countRows(t, m))
}

func TestDataPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/nested/dir/catalog.db"

	m, err := New(ctx, path)
	require.NoError(t, err)
	require.NoError(t, m.CreateTable(ctx, types.TableCatalog, testColumns))
	addRow(t, m, "Math", 90, "2024-01-01T00:00:00.000000")
	require.NoError(t, m.Close())

	m2 := newTestStore(t, path)
	assert.Equal(t, 1, countRows(t, m2))
	assert.Equal(t, path, m2.Path())
}

func TestCloseIsIdempotentAndBlocksFurtherUse(t *testing.T) {
	ctx := context.Background()
	m, err := New(ctx, t.TempDir()+"/test.db")
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.True(t, m.IsClosed())

	err = m.CreateTable(ctx, types.TableCatalog, testColumns)
	assert.ErrorIs(t, err, storage.ErrClosed)
	_, err = m.Select(ctx, types.TableCatalog, storage.Query{})
	assert.ErrorIs(t, err, storage.ErrClosed)
}

func TestWithBusyRetries(t *testing.T) {
	m, err := New(context.Background(), ":memory:", WithBusyRetries(2, time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	assert.Equal(t, uint64(2), m.opts.busyRetries)
	assert.Equal(t, time.Millisecond, m.opts.retryBackoff)
}
