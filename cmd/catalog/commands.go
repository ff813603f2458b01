package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/catalog"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/config"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/menu"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/timeparsing"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/ui"
)

func (a *app) exportOptions() ([]catalog.ExportOption, error) {
	col, err := types.ParseColumn(config.GetString(config.KeyExportOrderBy))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.KeyExportOrderBy, err)
	}
	return []catalog.ExportOption{
		catalog.WithHeader(config.GetBool(config.KeyExportHeader)),
		catalog.WithOrder(col, false),
	}, nil
}

func (a *app) runMenu(cmd *cobra.Command) error {
	var p menu.Prompter = menu.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if f, ok := cmd.InOrStdin().(*os.File); ok && f == os.Stdin && ui.IsInputTerminal() {
		p = menu.FormPrompter{}
	}
	exportOpts, err := a.exportOptions()
	if err != nil {
		return err
	}
	options := menu.DefaultOptions(a.store, a.exportDir, exportOpts...)
	return menu.Loop(cmd.Context(), options, p, cmd.OutOrStdout())
}

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMenu(cmd)
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be a number (got %q)", types.ErrValidation, arg)
	}
	return id, nil
}

func newAddCmd(a *app) *cobra.Command {
	var subject, grade, date string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a subject",
		Example: `  catalog add --subject Math --grade 90
  catalog add --subject History --grade 75 --date yesterday`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ts := ""
			if date != "" {
				var err error
				if ts, err = timeparsing.NormalizeDateAdded(date, time.Now()); err != nil {
					return err
				}
			}
			add := catalog.NewAdd(a.store)
			id, err := add.Add(cmd.Context(), storage.Fields{
				{Column: types.ColumnSubject, Value: subject},
				{Column: types.ColumnGrade1, Value: grade},
			}, ts)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), map[string]any{"id": id, "message": "Subject added!"})
			}
			printMessage("Subject added!")
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Subject name (required)")
	cmd.Flags().StringVar(&grade, "grade", "", "Grade (integer, required)")
	cmd.Flags().StringVar(&date, "date", "", "Date added: natural language, compact duration or timestamp (default: now)")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("grade")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var (
		orderBy string
		desc    bool
		format  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindPFlag(config.KeyListOrderBy, cmd.Flags().Lookup("order-by")); err != nil {
				return err
			}
			col, err := types.ParseColumn(config.GetString(config.KeyListOrderBy))
			if err != nil {
				return err
			}
			recs, err := catalog.NewList(a.store, col, desc).List(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				format = formatJSON
			}
			return writeRecords(cmd.OutOrStdout(), format, recs)
		},
	}
	cmd.Flags().StringVar(&orderBy, "order-by", "date_added", "Column to sort by (id, subject, grade1, date_added)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort in descending order")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table, json, yaml, markdown")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rec, found, err := catalog.NewGetByID(a.store).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("subject %d: %w", id, storage.ErrNotFound)
			}
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), rec)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rec.String())
			return err
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	var field, value string
	cmd := &cobra.Command{
		Use:     "edit <id>",
		Short:   "Change one field of a subject",
		Example: `  catalog edit 1 --field subject --value Physics`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			col, err := types.ParseEditableColumn(field)
			if err != nil {
				return err
			}
			v := value
			if col == types.ColumnDateAdded {
				if v, err = timeparsing.NormalizeDateAdded(value, time.Now()); err != nil {
					return err
				}
			}
			n, err := catalog.NewEdit(a.store).Edit(cmd.Context(), id, storage.Fields{{Column: col, Value: v}})
			if err != nil {
				return err
			}
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), map[string]any{"id": id, "updated": n, "message": "Catalog updated!"})
			}
			printMessage("Catalog updated!")
			return nil
		},
	}
	cmd.Flags().StringVar(&field, "field", "", "Column to change ("+types.EditableColumnList()+")")
	cmd.Flags().StringVar(&value, "value", "", "New value")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			n, err := catalog.NewDelete(a.store).Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), map[string]any{"id": id, "deleted": n, "message": "Subject deleted!"})
			}
			printMessage("Subject deleted!")
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [name]",
		Short: "Export the catalog to an Excel workbook",
		Long: `Export every subject, ordered by export.order-by (date added unless
configured), to <export.dir>/<name>.xlsx.
Without a name a random one is generated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			opts, err := a.exportOptions()
			if err != nil {
				return err
			}
			res, err := catalog.NewExport(a.store, a.exportDir, opts...).
				Execute(cmd.Context(), catalog.FileName(name))
			if err != nil {
				return err
			}
			if a.jsonOut {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			printMessage(res.Message)
			return nil
		},
	}
}

var errDropNotConfirmed = errors.New("refusing to drop the catalog table without --yes")

func newDropCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop the catalog table and every record in it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errDropNotConfirmed
			}
			if err := a.store.DropTable(cmd.Context(), types.TableCatalog); err != nil {
				return err
			}
			printMessage("Catalog dropped.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm dropping the table")
	return cmd
}
