package types

import (
	"fmt"
	"strings"
)

// Columns returns the catalog columns in storage order.
func Columns() []Column {
	return []Column{ColumnID, ColumnSubject, ColumnGrade1, ColumnDateAdded}
}

// EditableColumns are the columns an Edit may change. id is immutable.
func EditableColumns() []Column {
	return []Column{ColumnSubject, ColumnGrade1, ColumnDateAdded}
}

// ParseColumn maps user text onto the column whitelist. Matching is
// case-insensitive and accepts a few spellings ("date", "date-added", "grade").
func ParseColumn(raw string) (Column, error) {
	token := strings.ToLower(strings.TrimSpace(raw))
	token = strings.ReplaceAll(token, "-", "_")
	switch token {
	case "id":
		return ColumnID, nil
	case "subject":
		return ColumnSubject, nil
	case "grade1", "grade":
		return ColumnGrade1, nil
	case "date_added", "date", "dateadded":
		return ColumnDateAdded, nil
	}
	return "", fmt.Errorf("%w: unknown column %q", ErrValidation, raw)
}

// ParseEditableColumn is ParseColumn restricted to EditableColumns.
func ParseEditableColumn(raw string) (Column, error) {
	col, err := ParseColumn(raw)
	if err != nil {
		return "", err
	}
	for _, editable := range EditableColumns() {
		if col == editable {
			return col, nil
		}
	}
	return "", fmt.Errorf("%w: %s cannot be edited", ErrValidation, col)
}

// EditableColumnList joins EditableColumns for prompts and help text.
func EditableColumnList() string {
	names := make([]string, 0, 3)
	for _, col := range EditableColumns() {
		names = append(names, string(col))
	}
	return strings.Join(names, ", ")
}

// SameColumn reports whether a and b name the same column. SQLite
// identifiers are case-insensitive.
func SameColumn(a, b Column) bool {
	return strings.EqualFold(string(a), string(b))
}
