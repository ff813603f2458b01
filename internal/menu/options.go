package menu

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/catalog"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/timeparsing"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/ui"
)

// DefaultOptions builds the standard menu over store.
func DefaultOptions(store storage.Store, exportDir string, exportOpts ...catalog.ExportOption) []Option {
	return []Option{
		{Key: "A", Name: "Add a subject", Command: catalog.NewAdd(store), Prep: PrepAdd(time.Now)},
		{Key: "S", Name: "Show a subject by id", Command: catalog.NewGetByID(store), Prep: PrepID},
		{Key: "B", Name: "List subjects by date", Command: catalog.NewList(store, types.ColumnDateAdded, false)},
		{Key: "T", Name: "List subjects by name", Command: catalog.NewList(store, types.ColumnSubject, false)},
		{Key: "E", Name: "Edit a subject", Command: catalog.NewEdit(store), Prep: PrepEdit(time.Now)},
		{Key: "D", Name: "Delete a subject", Command: catalog.NewDelete(store), Prep: PrepID},
		{Key: "X", Name: "Export catalog to Excel", Command: catalog.NewExport(store, exportDir, exportOpts...), Prep: PrepFileName},
		{Key: "Q", Name: "Quit", Command: catalog.Quit{}},
	}
}

func warn(out io.Writer, err error) {
	fmt.Fprintf(out, "%s %v\n", ui.RenderWarn(ui.IconWarn), err)
}

func askID(p Prompter, out io.Writer) (int64, error) {
	for {
		raw, err := p.Ask("Subject id", true)
		if err != nil {
			return 0, err
		}
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err == nil {
			return id, nil
		}
		warn(out, fmt.Errorf("%q is not a number", raw))
	}
}

func askGrade(p Prompter, out io.Writer, label string) (int64, error) {
	for {
		raw, err := p.Ask(label, true)
		if err != nil {
			return 0, err
		}
		g, err := types.ParseGrade(raw)
		if err == nil {
			return g, nil
		}
		warn(out, err)
	}
}

// askDate returns "" for a blank answer.
func askDate(p Prompter, out io.Writer, now func() time.Time, required bool) (string, error) {
	for {
		raw, err := p.Ask("Date added (e.g. yesterday, -2d, 2024-01-31)", required)
		if err != nil {
			return "", err
		}
		if raw == "" {
			return "", nil
		}
		ts, err := timeparsing.NormalizeDateAdded(raw, now())
		if err == nil {
			return ts, nil
		}
		warn(out, err)
	}
}

// PrepID asks for a numeric id until one is given.
func PrepID(p Prompter, out io.Writer) (catalog.Input, error) {
	id, err := askID(p, out)
	if err != nil {
		return nil, err
	}
	return catalog.ID(id), nil
}

// PrepAdd asks for subject, grade and an optional date.
func PrepAdd(now func() time.Time) Prep {
	return func(p Prompter, out io.Writer) (catalog.Input, error) {
		subject, err := p.Ask("Subject", true)
		if err != nil {
			return nil, err
		}
		grade, err := askGrade(p, out, "Grade")
		if err != nil {
			return nil, err
		}
		ts, err := askDate(p, out, now, false)
		if err != nil {
			return nil, err
		}
		return catalog.Fields{
			Data: storage.Fields{
				{Column: types.ColumnSubject, Value: subject},
				{Column: types.ColumnGrade1, Value: grade},
			},
			Timestamp: ts,
		}, nil
	}
}

// PrepEdit asks for an id, a column and its new value.
func PrepEdit(now func() time.Time) Prep {
	return func(p Prompter, out io.Writer) (catalog.Input, error) {
		id, err := askID(p, out)
		if err != nil {
			return nil, err
		}
		var col types.Column
		for {
			raw, err := p.Ask("Field to edit ("+types.EditableColumnList()+")", true)
			if err != nil {
				return nil, err
			}
			if col, err = types.ParseEditableColumn(raw); err == nil {
				break
			}
			warn(out, err)
		}

		var value any
		switch col {
		case types.ColumnGrade1:
			value, err = askGrade(p, out, "New grade")
		case types.ColumnDateAdded:
			value, err = askDate(p, out, now, true)
		default:
			value, err = p.Ask("New subject", true)
		}
		if err != nil {
			return nil, err
		}
		return catalog.Edit{ID: id, Update: storage.Fields{{Column: col, Value: value}}}, nil
	}
}

// PrepFileName asks for an export name. Blank picks a random one.
func PrepFileName(p Prompter, _ io.Writer) (catalog.Input, error) {
	name, err := p.Ask("File name (blank for a random name)", false)
	if err != nil {
		return nil, err
	}
	return catalog.FileName(name), nil
}
