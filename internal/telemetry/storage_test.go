package telemetry

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

type fakeStore struct {
	calls []string
	err   error
}

func (f *fakeStore) CreateTable(context.Context, types.Table, []storage.ColumnDef) error {
	f.calls = append(f.calls, "CreateTable")
	return f.err
}

func (f *fakeStore) DropTable(context.Context, types.Table) error {
	f.calls = append(f.calls, "DropTable")
	return f.err
}

func (f *fakeStore) Add(context.Context, types.Table, storage.Fields) (int64, error) {
	f.calls = append(f.calls, "Add")
	return 7, f.err
}

func (f *fakeStore) Select(context.Context, types.Table, storage.Query) (storage.Cursor, error) {
	f.calls = append(f.calls, "Select")
	return nil, f.err
}

func (f *fakeStore) Update(context.Context, types.Table, storage.Fields, storage.Fields) (int64, error) {
	f.calls = append(f.calls, "Update")
	return 1, f.err
}

func (f *fakeStore) Delete(context.Context, types.Table, storage.Fields) (int64, error) {
	f.calls = append(f.calls, "Delete")
	return 1, f.err
}

func (f *fakeStore) Close() error {
	f.calls = append(f.calls, "Close")
	return nil
}

func TestWrapStoreDisabledReturnsInner(t *testing.T) {
	require.NoError(t, Init(context.Background(), "catalog", "test", Options{}))
	inner := &fakeStore{}
	assert.Same(t, inner, WrapStore(inner))
	assert.False(t, Enabled())
}

func TestWrapStoreRecordsSpans(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()
	require.NoError(t, Init(ctx, "catalog", "test", Options{Enabled: true, Stdout: true, Writer: &buf}))
	t.Cleanup(func() {
		Shutdown(context.Background())
		_ = Init(context.Background(), "catalog", "test", Options{})
	})

	inner := &fakeStore{}
	s := WrapStore(inner)
	_, ok := s.(*InstrumentedStore)
	require.True(t, ok, "enabled telemetry should wrap the store")

	id, err := s.Add(ctx, types.TableCatalog, storage.Fields{{Column: types.ColumnSubject, Value: "Math"}})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	n, err := s.Delete(ctx, types.TableCatalog, storage.Fields{{Column: types.ColumnID, Value: 7}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, s.Close())
	assert.Equal(t, []string{"Add", "Delete", "Close"}, inner.calls)
	assert.Contains(t, buf.String(), "storage.Add")
	assert.Contains(t, buf.String(), "storage.Delete")
}

func TestInstrumentedStorePropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	inner := &fakeStore{err: boom}
	s := newInstrumentedStore(inner)

	err := s.CreateTable(context.Background(), types.TableCatalog, nil)
	assert.ErrorIs(t, err, boom)
	_, err = s.Update(context.Background(), types.TableCatalog, nil, nil)
	assert.ErrorIs(t, err, boom)
}
