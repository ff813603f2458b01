package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
)

// ExportSheet is the name of the single worksheet in an export.
const ExportSheet = "Catalog"

// ExportOption configures an Export.
type ExportOption func(*Export)

// WithHeader writes a column-name row above the records.
func WithHeader(on bool) ExportOption {
	return func(e *Export) { e.header = on }
}

// WithOrder sets the column the exported rows are sorted by.
func WithOrder(col types.Column, descending bool) ExportOption {
	return func(e *Export) { e.list = NewList(e.list.store, col, descending) }
}

// Export writes the full catalog to <dir>/<name>.xlsx.
type Export struct {
	dir    string
	header bool
	list   *List
}

func NewExport(store storage.Store, dir string, opts ...ExportOption) *Export {
	e := &Export{dir: dir, list: NewList(store, "", false)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (c *Export) Name() string { return "export" }

func (c *Export) Execute(ctx context.Context, in Input) (Result, error) {
	name, ok := in.(FileName)
	if !ok {
		return Result{}, badInput(c.Name(), in)
	}
	base, path, err := c.Export(ctx, string(name))
	if err != nil {
		return Result{}, err
	}
	return Result{Message: "Exported to file " + base, Path: path}, nil
}

// Export writes the workbook and returns the base name used and the file
// path. An empty name gets a random one.
func (c *Export) Export(ctx context.Context, name string) (base, path string, err error) {
	base, err = exportBase(name)
	if err != nil {
		return "", "", err
	}
	recs, err := c.list.List(ctx)
	if err != nil {
		return "", "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return "", "", fmt.Errorf("export: %w", err)
	}

	row := 1
	if c.header {
		for i, col := range types.Columns() {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(ExportSheet, cell, string(col)); err != nil {
				return "", "", fmt.Errorf("export: %w", err)
			}
		}
		row++
	}
	for _, rec := range recs {
		for i, v := range rec.Values() {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(ExportSheet, cell, v); err != nil {
				return "", "", fmt.Errorf("export: %w", err)
			}
		}
		row++
	}

	if err := os.MkdirAll(c.dir, 0o750); err != nil {
		return "", "", fmt.Errorf("export: create directory: %w", err)
	}
	path = filepath.Join(c.dir, base+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return base, path, nil
}

func exportBase(name string) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".xlsx")
	if name == "" {
		return uuid.NewString(), nil
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: export name %q must not contain a path", types.ErrValidation, name)
	}
	return name, nil
}
