package sqlite

import (
	"database/sql"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
)

var _ storage.Cursor = (*cursor)(nil)

// cursor adapts *sql.Rows to storage.Cursor.
type cursor struct {
	rows *sql.Rows
	cols []string
}

func (c *cursor) Columns() ([]string, error) {
	if c.cols != nil {
		return c.cols, nil
	}
	cols, err := c.rows.Columns()
	if err != nil {
		return nil, wrapDBError("read columns", err)
	}
	c.cols = cols
	return cols, nil
}

func (c *cursor) Next() bool {
	return c.rows.Next()
}

// Row scans the current row. Call it after Next returns true.
func (c *cursor) Row() (storage.Row, error) {
	cols, err := c.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := c.rows.Scan(ptrs...); err != nil {
		return nil, wrapDBErrorf(err, "scan row of %d columns", len(cols))
	}
	return storage.Row(values), nil
}

// FetchOne returns the first row and closes the cursor.
func (c *cursor) FetchOne() (storage.Row, error) {
	defer func() { _ = c.rows.Close() }()
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			return nil, wrapDBError("fetch row", err)
		}
		return nil, wrapDBError("fetch row", sql.ErrNoRows)
	}
	return c.Row()
}

// FetchAll drains the cursor and closes it.
func (c *cursor) FetchAll() ([]storage.Row, error) {
	defer func() { _ = c.rows.Close() }()
	var out []storage.Row
	for c.rows.Next() {
		row, err := c.Row()
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := c.rows.Err(); err != nil {
		return nil, wrapDBError("fetch rows", err)
	}
	return out, nil
}

func (c *cursor) Err() error {
	return wrapDBError("iterate rows", c.rows.Err())
}

func (c *cursor) Close() error {
	return c.rows.Close()
}
