package sqlite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

// Identifiers come from internal call sites only; this is a second line of
// defence in case one ever does not.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkIdent(kind, name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("%w: %s %q", storage.ErrInvalidIdentifier, kind, name)
	}
	return nil
}

func checkColumns(cols []types.Column) error {
	for _, c := range cols {
		if err := checkIdent("column", string(c)); err != nil {
			return err
		}
	}
	return nil
}

func joinColumns(cols []types.Column) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// placeholders renders "a = ?" terms joined by sep.
func placeholders(cols []types.Column, sep string) string {
	terms := make([]string, len(cols))
	for i, c := range cols {
		terms[i] = string(c) + " = ?"
	}
	return strings.Join(terms, sep)
}

func buildCreateTable(table types.Table, columns []storage.ColumnDef) (string, error) {
	if err := checkIdent("table", string(table)); err != nil {
		return "", err
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("create table %s: no columns", table)
	}
	defs := make([]string, len(columns))
	for i, col := range columns {
		if err := checkIdent("column", string(col.Name)); err != nil {
			return "", err
		}
		defs[i] = fmt.Sprintf("%s %s", col.Name, strings.ToUpper(strings.TrimSpace(col.Type)))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s);", table, strings.Join(defs, ", ")), nil
}

func buildDropTable(table types.Table) (string, error) {
	if err := checkIdent("table", string(table)); err != nil {
		return "", err
	}
	return fmt.Sprintf("DROP TABLE %s;", table), nil
}

func buildInsert(table types.Table, data storage.Fields) (string, []any, error) {
	if err := checkIdent("table", string(table)); err != nil {
		return "", nil, err
	}
	cols := data.Columns()
	if err := checkColumns(cols); err != nil {
		return "", nil, err
	}
	if len(cols) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES;", table), nil, nil
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", table, joinColumns(cols), marks)
	return stmt, data.Values(), nil
}

func buildSelect(table types.Table, q storage.Query) (string, []any, error) {
	if err := checkIdent("table", string(table)); err != nil {
		return "", nil, err
	}
	cols := q.Criteria.Columns()
	if err := checkColumns(cols); err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT * FROM %s", table)
	if len(cols) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(placeholders(cols, " AND "))
	}
	if q.OrderBy != "" {
		if err := checkIdent("column", string(q.OrderBy)); err != nil {
			return "", nil, err
		}
		fmt.Fprintf(&sb, " ORDER BY %s", q.OrderBy)
		if q.Descending {
			sb.WriteString(" DESC")
		}
	}
	sb.WriteString(";")
	return sb.String(), q.Criteria.Values(), nil
}

// buildUpdate binds the SET values first, then the WHERE values.
func buildUpdate(table types.Table, criteria, data storage.Fields) (string, []any, error) {
	if err := checkIdent("table", string(table)); err != nil {
		return "", nil, err
	}
	if len(criteria) == 0 {
		return "", nil, storage.ErrEmptyCriteria
	}
	if len(data) == 0 {
		return "", nil, storage.ErrEmptyData
	}
	if err := checkColumns(data.Columns()); err != nil {
		return "", nil, err
	}
	if err := checkColumns(criteria.Columns()); err != nil {
		return "", nil, err
	}
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s;",
		table, placeholders(data.Columns(), ", "), placeholders(criteria.Columns(), " AND "))
	args := append(data.Values(), criteria.Values()...)
	return stmt, args, nil
}

func buildDelete(table types.Table, criteria storage.Fields) (string, []any, error) {
	if err := checkIdent("table", string(table)); err != nil {
		return "", nil, err
	}
	if len(criteria) == 0 {
		return "", nil, storage.ErrEmptyCriteria
	}
	if err := checkColumns(criteria.Columns()); err != nil {
		return "", nil, err
	}
	stmt := fmt.Sprintf("DELETE FROM %s WHERE %s;", table, placeholders(criteria.Columns(), " AND "))
	return stmt, criteria.Values(), nil
}
