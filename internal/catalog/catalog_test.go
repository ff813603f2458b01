package catalog

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/testutil/teststore"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

func newStore(t *testing.T) storage.Store {
	t.Helper()
	return teststore.NewEnv(t, Schema()).Store
}

func subject(name, grade any) storage.Fields {
	return storage.Fields{
		{Column: types.ColumnSubject, Value: name},
		{Column: types.ColumnGrade1, Value: grade},
	}
}

func mustAdd(t *testing.T, store storage.Store, name string, grade any, ts string) int64 {
	t.Helper()
	id, err := NewAdd(store).Add(context.Background(), subject(name, grade), ts)
	require.NoError(t, err)
	return id
}

func TestAddThenList(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	res, err := NewAdd(store).Execute(ctx, Fields{Data: subject("Math", 90)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Subject added!"}, res.Lines())

	recs, err := NewList(store, "", false).List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(1), recs[0].ID)
	assert.Equal(t, "Math", recs[0].Subject)
	assert.Equal(t, int64(90), recs[0].Grade1)
	assert.NotEmpty(t, recs[0].DateAdded)
}

func TestAddDefaultsTimestampToNow(t *testing.T) {
	store := newStore(t)
	add := NewAdd(store)
	fixed := time.Date(2024, 3, 1, 12, 30, 0, 0, time.FixedZone("EET", 2*3600))
	add.now = func() time.Time { return fixed }

	id, err := add.Add(context.Background(), subject("Chemistry", "75"), "")
	require.NoError(t, err)

	rec, found, err := NewGetByID(store).Get(context.Background(), id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "2024-03-01T10:30:00.000000", rec.DateAdded)
	assert.Equal(t, int64(75), rec.Grade1)
}

func TestAddTimestampPrecedence(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	add := NewAdd(store)

	data := append(subject("Art", 60), storage.Field{Column: types.ColumnDateAdded, Value: "2020-01-01T00:00:00.000000"})
	id, err := add.Add(ctx, data, "")
	require.NoError(t, err)
	rec, _, err := NewGetByID(store).Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01T00:00:00.000000", rec.DateAdded)

	id, err = add.Add(ctx, data, "2021-06-15T08:00:00.000000")
	require.NoError(t, err)
	rec, _, err = NewGetByID(store).Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2021-06-15T08:00:00.000000", rec.DateAdded)
}

func TestAddValidation(t *testing.T) {
	store := newStore(t)
	add := NewAdd(store)
	ctx := context.Background()

	tests := []struct {
		name string
		data storage.Fields
	}{
		{"blank subject", subject("   ", 10)},
		{"nil subject", subject(nil, 90)},
		{"oversized subject", subject(strings.Repeat("x", types.MaxSubjectLength+1), 90)},
		{"non-numeric grade", subject("Math", "ninety")},
		{"missing grade", storage.Fields{{Column: types.ColumnSubject, Value: "Math"}}},
		{"unknown column", append(subject("Math", 1), storage.Field{Column: "Teacher", Value: "x"})},
		{"id column", append(subject("Math", 1), storage.Field{Column: types.ColumnID, Value: 9})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := add.Add(ctx, tt.data, "")
			assert.ErrorIs(t, err, types.ErrValidation)
		})
	}

	recs, err := NewList(store, "", false).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestListOrdering(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	mustAdd(t, store, "Physics", 80, "2024-01-03T00:00:00.000000")
	mustAdd(t, store, "Biology", 70, "2024-01-01T00:00:00.000000")
	mustAdd(t, store, "Math", 90, "2024-01-02T00:00:00.000000")

	byDate, err := NewList(store, "", false).List(ctx)
	require.NoError(t, err)
	require.Len(t, byDate, 3)
	assert.True(t, sort.SliceIsSorted(byDate, func(i, j int) bool {
		return byDate[i].DateAdded < byDate[j].DateAdded
	}))

	bySubject, err := NewList(store, types.ColumnSubject, false).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Biology", bySubject[0].Subject)
	assert.Equal(t, "Math", bySubject[1].Subject)
	assert.Equal(t, "Physics", bySubject[2].Subject)

	desc, err := NewList(store, types.ColumnGrade1, true).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(90), desc[0].Grade1)
	assert.Equal(t, int64(70), desc[2].Grade1)
}

func TestGetByID(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	id := mustAdd(t, store, "History", 85, "")

	res, err := NewGetByID(store).Execute(ctx, ID(id))
	require.NoError(t, err)
	require.True(t, res.Found)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "History", res.Records[0].Subject)
	assert.Equal(t, int64(85), res.Records[0].Grade1)

	res, err = NewGetByID(store).Execute(ctx, ID(999))
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Records)
}

func TestEditSingleField(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	first := mustAdd(t, store, "Math", 90, "2024-01-01T00:00:00.000000")
	mustAdd(t, store, "English", 70, "")

	res, err := NewEdit(store).Execute(ctx, Edit{
		ID:     first,
		Update: storage.Fields{{Column: types.ColumnSubject, Value: "Physics"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Catalog updated!", res.Message)

	rec, found, err := NewGetByID(store).Get(ctx, first)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Physics", rec.Subject)
	assert.Equal(t, int64(90), rec.Grade1)
	assert.Equal(t, "2024-01-01T00:00:00.000000", rec.DateAdded)
}

func TestEditNormalizesColumnAndGrade(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	id := mustAdd(t, store, "Math", 50, "")

	n, err := NewEdit(store).Edit(ctx, id, storage.Fields{{Column: "grade", Value: "95"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rec, _, err := NewGetByID(store).Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(95), rec.Grade1)

	_, err = NewEdit(store).Edit(ctx, id, storage.Fields{{Column: types.ColumnID, Value: 5}})
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestDelete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	keep := mustAdd(t, store, "Math", 90, "")
	drop := mustAdd(t, store, "Art", 60, "")

	res, err := NewDelete(store).Execute(ctx, ID(drop))
	require.NoError(t, err)
	assert.Equal(t, "Subject deleted!", res.Message)

	_, found, err := NewGetByID(store).Get(ctx, drop)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = NewGetByID(store).Get(ctx, keep)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestMissingIDIsNoOp(t *testing.T) {
	env := teststore.NewEnv(t, Schema())
	store := env.Store
	ctx := context.Background()
	mustAdd(t, store, "Math", 90, "")

	_, err := NewDelete(store).Execute(ctx, ID(42))
	require.NoError(t, err)
	_, err = NewEdit(store).Execute(ctx, Edit{
		ID:     42,
		Update: storage.Fields{{Column: types.ColumnSubject, Value: "Ghost"}},
	})
	require.NoError(t, err)

	env.AssertCount(1)
	assert.Equal(t, "Math", env.Rows()[0].Subject)
}

func TestBadInputVariant(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	cmds := []struct {
		cmd Command
		in  Input
	}{
		{NewCreateTable(store), ID(1)},
		{NewAdd(store), NoInput{}},
		{NewList(store, "", false), FileName("x")},
		{NewGetByID(store), NoInput{}},
		{NewEdit(store), ID(1)},
		{NewDelete(store), Fields{}},
		{NewExport(store, t.TempDir()), ID(1)},
	}
	for _, tc := range cmds {
		t.Run(tc.cmd.Name(), func(t *testing.T) {
			_, err := tc.cmd.Execute(ctx, tc.in)
			assert.ErrorIs(t, err, ErrBadInput)
		})
	}
}

func TestQuit(t *testing.T) {
	_, err := Quit{}.Execute(context.Background(), NoInput{})
	assert.ErrorIs(t, err, ErrQuit)
}

func TestResultLines(t *testing.T) {
	r := Result{Records: []types.Record{{ID: 1, Subject: "Math", Grade1: 90, DateAdded: "d"}}}
	assert.Equal(t, []string{`(1, "Math", 90, "d")`}, r.Lines())
	assert.Empty(t, Result{}.Lines())
}

func TestCreateTableIsIdempotent(t *testing.T) {
	store := teststore.New(t)
	ctx := context.Background()
	for range 2 {
		res, err := NewCreateTable(store).Execute(ctx, NoInput{})
		require.NoError(t, err)
		assert.Empty(t, res.Lines())
	}
	mustAdd(t, store, "Math", 90, "")
	_, err := NewCreateTable(store).Execute(ctx, NoInput{})
	require.NoError(t, err)

	recs, err := NewList(store, "", false).List(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestEditRejectsInvalidSubject(t *testing.T) {
	env := teststore.NewEnv(t, Schema())
	ctx := context.Background()
	id := mustAdd(t, env.Store, "Math", 90, "")

	tests := []struct {
		name  string
		value any
	}{
		{"blank", "  "},
		{"nil", nil},
		{"oversized", strings.Repeat("x", types.MaxSubjectLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEdit(env.Store).Edit(ctx, id,
				storage.Fields{{Column: types.ColumnSubject, Value: tt.value}})
			assert.ErrorIs(t, err, types.ErrValidation)
		})
	}
	assert.Equal(t, "Math", env.Rows()[0].Subject)

	_, err := NewEdit(env.Store).Edit(ctx, id,
		storage.Fields{{Column: types.ColumnSubject, Value: strings.Repeat("y", types.MaxSubjectLength)}})
	require.NoError(t, err)
	assert.Len(t, env.Rows()[0].Subject, types.MaxSubjectLength)
}

func TestEditRejectsRepeatedColumn(t *testing.T) {
	env := teststore.NewEnv(t, Schema())
	id := mustAdd(t, env.Store, "Math", 90, "")

	_, err := NewEdit(env.Store).Edit(context.Background(), id, storage.Fields{
		{Column: types.ColumnGrade1, Value: 70},
		{Column: "grade1", Value: 80},
	})
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, int64(90), env.Rows()[0].Grade1)
}
