// Package types defines core data structures for the catalog.
package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrValidation is wrapped by every record validation failure.
var ErrValidation = errors.New("validation failed")

// Table is a table identifier. Only the constants below are ever
// interpolated into SQL text.
type Table string

// TableCatalog holds one row per catalog record.
const TableCatalog Table = "catalog"

// Column is a column identifier drawn from a closed whitelist.
type Column string

const (
	ColumnID        Column = "id"
	ColumnSubject   Column = "Subject"
	ColumnGrade1    Column = "Grade1"
	ColumnDateAdded Column = "Date_added"
)

// TimestampLayout is the canonical Date_added representation: UTC, fixed
// width, so lexicographic order matches chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// FormatTimestamp renders t in TimestampLayout after converting it to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Record is one row of the catalog table.
type Record struct {
	ID        int64  `json:"id" yaml:"id"`
	Subject   string `json:"subject" yaml:"subject"`
	Grade1    int64  `json:"grade1" yaml:"grade1"`
	DateAdded string `json:"date_added" yaml:"date_added"`
}

// MaxSubjectLength caps Subject in bytes.
const MaxSubjectLength = 500

// Validate checks the fields that the schema declares NOT NULL.
func (r *Record) Validate() error {
	return ValidateSubject(r.Subject)
}

// ValidateSubject rejects a blank or oversized subject.
func ValidateSubject(subject string) error {
	if strings.TrimSpace(subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrValidation)
	}
	if len(subject) > MaxSubjectLength {
		return fmt.Errorf("%w: subject must be %d characters or less (got %d)", ErrValidation, MaxSubjectLength, len(subject))
	}
	return nil
}

// Values returns the record in storage column order.
func (r Record) Values() []any {
	return []any{r.ID, r.Subject, r.Grade1, r.DateAdded}
}

// String renders the record the way the menu prints a row.
func (r Record) String() string {
	return fmt.Sprintf("(%d, %q, %d, %q)", r.ID, r.Subject, r.Grade1, r.DateAdded)
}

// ParseGrade converts user text into a Grade1 value.
func ParseGrade(s string) (int64, error) {
	g, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: grade must be an integer (got %q)", ErrValidation, s)
	}
	return g, nil
}

// RecordFromRow builds a Record from a row in storage column order.
// Values are accepted in the shapes database/sql drivers hand back.
func RecordFromRow(values []any) (Record, error) {
	if len(values) != 4 {
		return Record{}, fmt.Errorf("catalog row has %d columns, want 4", len(values))
	}
	var r Record
	var err error
	if r.ID, err = asInt(values[0]); err != nil {
		return Record{}, fmt.Errorf("id: %w", err)
	}
	r.Subject = asString(values[1])
	if r.Grade1, err = asInt(values[2]); err != nil {
		return Record{}, fmt.Errorf("Grade1: %w", err)
	}
	r.DateAdded = asString(values[3])
	return r, nil
}

func asInt(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	case string:
		return strconv.ParseInt(n, 10, 64)
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	case time.Time:
		return FormatTimestamp(s)
	default:
		return fmt.Sprint(s)
	}
}
