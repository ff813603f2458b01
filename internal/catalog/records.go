package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

// Add inserts a record, stamping Date_added with the current UTC time
// unless a timestamp is supplied.
type Add struct {
	store storage.Store
	now   func() time.Time
}

func NewAdd(store storage.Store) *Add {
	return &Add{store: store, now: time.Now}
}

func (c *Add) Name() string { return "add" }

func (c *Add) Execute(ctx context.Context, in Input) (Result, error) {
	f, ok := in.(Fields)
	if !ok {
		return Result{}, badInput(c.Name(), in)
	}
	if _, err := c.Add(ctx, f.Data, f.Timestamp); err != nil {
		return Result{}, err
	}
	return Result{Message: "Subject added!"}, nil
}

// Add validates data and inserts it, returning the new id.
func (c *Add) Add(ctx context.Context, data storage.Fields, timestamp string) (int64, error) {
	rec, err := recordFromFields(data)
	if err != nil {
		return 0, err
	}
	switch {
	case strings.TrimSpace(timestamp) != "":
		rec.DateAdded = timestamp
	case rec.DateAdded == "":
		rec.DateAdded = types.FormatTimestamp(c.now())
	}
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	return c.store.Add(ctx, types.TableCatalog, storage.Fields{
		{Column: types.ColumnSubject, Value: rec.Subject},
		{Column: types.ColumnGrade1, Value: rec.Grade1},
		{Column: types.ColumnDateAdded, Value: rec.DateAdded},
	})
}

func recordFromFields(data storage.Fields) (types.Record, error) {
	var rec types.Record
	var hasGrade bool
	for _, f := range data {
		col, err := types.ParseEditableColumn(string(f.Column))
		if err != nil {
			return rec, err
		}
		switch col {
		case types.ColumnSubject:
			rec.Subject = subjectValue(f.Value)
		case types.ColumnGrade1:
			if rec.Grade1, err = gradeValue(f.Value); err != nil {
				return rec, err
			}
			hasGrade = true
		case types.ColumnDateAdded:
			if f.Value != nil {
				rec.DateAdded = fmt.Sprint(f.Value)
			}
		}
	}
	if !hasGrade {
		return rec, fmt.Errorf("%w: grade is required", types.ErrValidation)
	}
	return rec, nil
}

// subjectValue treats nil as missing so validation rejects it.
func subjectValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func gradeValue(v any) (int64, error) {
	switch g := v.(type) {
	case int64:
		return g, nil
	case int:
		return int64(g), nil
	case string:
		return types.ParseGrade(g)
	default:
		return 0, fmt.Errorf("%w: grade must be an integer (got %T)", types.ErrValidation, v)
	}
}

// List returns every record ordered by one column.
type List struct {
	store      storage.Store
	orderBy    types.Column
	descending bool
}

// NewList builds a List ordered by orderBy, or by Date_added when empty.
func NewList(store storage.Store, orderBy types.Column, descending bool) *List {
	if orderBy == "" {
		orderBy = types.ColumnDateAdded
	}
	return &List{store: store, orderBy: orderBy, descending: descending}
}

func (c *List) Name() string {
	return fmt.Sprintf("list by %s", strings.ToLower(string(c.orderBy)))
}

func (c *List) Execute(ctx context.Context, in Input) (Result, error) {
	if _, ok := in.(NoInput); !ok {
		return Result{}, badInput(c.Name(), in)
	}
	recs, err := c.List(ctx)
	if err != nil {
		return Result{}, err
	}
	return Result{Records: recs}, nil
}

// List fetches all records in order.
func (c *List) List(ctx context.Context) ([]types.Record, error) {
	cur, err := c.store.Select(ctx, types.TableCatalog, storage.Query{
		OrderBy:    c.orderBy,
		Descending: c.descending,
	})
	if err != nil {
		return nil, err
	}
	rows, err := cur.FetchAll()
	if err != nil {
		return nil, err
	}
	return toRecords(rows)
}

func toRecords(rows []storage.Row) ([]types.Record, error) {
	recs := make([]types.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := types.RecordFromRow(row)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// GetByID looks up one record.
type GetByID struct {
	store storage.Store
}

func NewGetByID(store storage.Store) *GetByID {
	return &GetByID{store: store}
}

func (c *GetByID) Name() string { return "get by id" }

func (c *GetByID) Execute(ctx context.Context, in Input) (Result, error) {
	id, ok := in.(ID)
	if !ok {
		return Result{}, badInput(c.Name(), in)
	}
	rec, found, err := c.Get(ctx, int64(id))
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{Message: fmt.Sprintf("No subject with id %d", id)}, nil
	}
	return Result{Records: []types.Record{rec}, Found: true}, nil
}

// Get returns the record with the given id. found is false when no row matches.
func (c *GetByID) Get(ctx context.Context, id int64) (rec types.Record, found bool, err error) {
	cur, err := c.store.Select(ctx, types.TableCatalog, storage.Query{
		Criteria: storage.Fields{{Column: types.ColumnID, Value: id}},
	})
	if err != nil {
		return rec, false, err
	}
	row, err := cur.FetchOne()
	if errors.Is(err, storage.ErrNotFound) {
		return rec, false, nil
	}
	if err != nil {
		return rec, false, err
	}
	rec, err = types.RecordFromRow(row)
	if err != nil {
		return rec, false, err
	}
	return rec, true, nil
}

// EditRecord changes columns of one record. A missing id is not an error.
type EditRecord struct {
	store storage.Store
}

func NewEdit(store storage.Store) *EditRecord {
	return &EditRecord{store: store}
}

func (c *EditRecord) Name() string { return "edit" }

func (c *EditRecord) Execute(ctx context.Context, in Input) (Result, error) {
	e, ok := in.(Edit)
	if !ok {
		return Result{}, badInput(c.Name(), in)
	}
	if _, err := c.Edit(ctx, e.ID, e.Update); err != nil {
		return Result{}, err
	}
	return Result{Message: "Catalog updated!"}, nil
}

// Edit applies update to the record with id and returns the rows changed.
func (c *EditRecord) Edit(ctx context.Context, id int64, update storage.Fields) (int64, error) {
	data := make(storage.Fields, 0, len(update))
	for _, f := range update {
		col, err := types.ParseEditableColumn(string(f.Column))
		if err != nil {
			return 0, err
		}
		if data.Has(col) {
			return 0, fmt.Errorf("%w: column %s given twice", types.ErrValidation, col)
		}
		value := f.Value
		switch col {
		case types.ColumnGrade1:
			if value, err = gradeValue(value); err != nil {
				return 0, err
			}
		case types.ColumnSubject:
			subject := subjectValue(value)
			if err := types.ValidateSubject(subject); err != nil {
				return 0, err
			}
			value = subject
		}
		data = append(data, storage.Field{Column: col, Value: value})
	}
	return c.store.Update(ctx, types.TableCatalog,
		storage.Fields{{Column: types.ColumnID, Value: id}}, data)
}

// Delete removes one record. A missing id is not an error.
type Delete struct {
	store storage.Store
}

func NewDelete(store storage.Store) *Delete {
	return &Delete{store: store}
}

func (c *Delete) Name() string { return "delete" }

func (c *Delete) Execute(ctx context.Context, in Input) (Result, error) {
	id, ok := in.(ID)
	if !ok {
		return Result{}, badInput(c.Name(), in)
	}
	if _, err := c.Delete(ctx, int64(id)); err != nil {
		return Result{}, err
	}
	return Result{Message: "Subject deleted!"}, nil
}

// Delete removes the record with id and returns the rows removed.
func (c *Delete) Delete(ctx context.Context, id int64) (int64, error) {
	return c.store.Delete(ctx, types.TableCatalog,
		storage.Fields{{Column: types.ColumnID, Value: id}})
}
