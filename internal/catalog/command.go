// Package catalog implements the catalog operations as Command objects.
//
// Every command is built around a storage.Store handed in at construction
// and exposes a uniform Execute method, so the interactive menu and the
// one-shot CLI can drive them the same way. Each command also has a typed
// method (Add.Add, GetByID.Get, List.List, ...) for direct Go callers.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

var (
	// ErrQuit is returned by Quit to end an interactive session.
	ErrQuit = errors.New("quit")

	// ErrBadInput is returned when a command receives the wrong Input variant.
	ErrBadInput = errors.New("bad input")
)

// Command is one catalog operation.
type Command interface {
	Name() string
	Execute(ctx context.Context, in Input) (Result, error)
}

// Input is the argument of Execute. The set of variants is closed.
type Input interface {
	isInput()
}

// NoInput is passed to commands that take no argument.
type NoInput struct{}

// ID identifies one record.
type ID int64

// Fields carries the values of a new record. Data holds Subject and Grade1
// and may hold Date_added. A non-empty Timestamp overrides Date_added.
type Fields struct {
	Data      storage.Fields
	Timestamp string
}

// Edit names a record and the columns to change on it.
type Edit struct {
	ID     int64
	Update storage.Fields
}

// FileName is the base name of an export file, without extension.
type FileName string

func (NoInput) isInput()  {}
func (ID) isInput()       {}
func (Fields) isInput()   {}
func (Edit) isInput()     {}
func (FileName) isInput() {}

// Result is what a command hands back for display.
type Result struct {
	Message string         `json:"message,omitempty" yaml:"message,omitempty"`
	Records []types.Record `json:"records,omitempty" yaml:"records,omitempty"`
	Found   bool           `json:"found,omitempty" yaml:"found,omitempty"`
	Path    string         `json:"path,omitempty" yaml:"path,omitempty"`
}

// Lines renders the result one printable line at a time.
func (r Result) Lines() []string {
	lines := make([]string, 0, len(r.Records)+1)
	for _, rec := range r.Records {
		lines = append(lines, rec.String())
	}
	if r.Message != "" {
		lines = append(lines, r.Message)
	}
	return lines
}

func badInput(cmd string, in Input) error {
	return fmt.Errorf("%s: %w: %T", cmd, ErrBadInput, in)
}

// Schema is the catalog table definition.
func Schema() []storage.ColumnDef {
	return []storage.ColumnDef{
		{Name: types.ColumnID, Type: "integer primary key autoincrement"},
		{Name: types.ColumnSubject, Type: "text not null"},
		{Name: types.ColumnGrade1, Type: "integer not null"},
		{Name: types.ColumnDateAdded, Type: "text not null"},
	}
}

// CreateTable ensures the catalog table exists.
type CreateTable struct {
	store storage.Store
}

func NewCreateTable(store storage.Store) *CreateTable {
	return &CreateTable{store: store}
}

func (c *CreateTable) Name() string { return "create table" }

func (c *CreateTable) Execute(ctx context.Context, in Input) (Result, error) {
	if _, ok := in.(NoInput); !ok {
		return Result{}, badInput(c.Name(), in)
	}
	return Result{}, c.store.CreateTable(ctx, types.TableCatalog, Schema())
}

// Quit ends the session.
type Quit struct{}

func (Quit) Name() string { return "quit" }

func (Quit) Execute(context.Context, Input) (Result, error) {
	return Result{}, ErrQuit
}
