// Command catalog manages a small SQLite-backed catalog of subjects and
// grades, either through an interactive menu or one-shot subcommands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/catalog"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/config"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/debug"
	catlog "github.com/Silvia-Panaite/Finalproject-Catalog/internal/log"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/storage/sqlite"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/telemetry"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/ui"
)

// app holds what the root command sets up for its subcommands.
type app struct {
	store     storage.Store
	logger    *zap.Logger
	cleanups  []func()
	jsonOut   bool
	verbose   bool
	quiet     bool
	dbPath    string
	exportDir string
}

// noDBCommands skip opening the database.
var noDBCommands = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
}

// newRootCmd builds the command tree. The returned func releases what the
// command opened and must run after Execute, whether or not it failed.
func newRootCmd() (*cobra.Command, func()) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "catalog",
		Short:         "catalog - subjects and grades in a local SQLite file",
		Long:          `A small catalog manager. Run without arguments for the interactive menu.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMenu(cmd)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "Database path (default: $CATALOG_DB or catalog.db)")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Suppress non-essential output (errors only)")

	rootCmd.AddCommand(
		newMenuCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
		newDropCmd(a),
		newVersionCmd(a),
	)
	return rootCmd, a.teardown
}

// setup loads configuration, builds the logger and opens the store.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.Initialize(); err != nil {
		return err
	}
	flags := cmd.Root().PersistentFlags()
	if err := config.BindPFlag(config.KeyDB, flags.Lookup("db")); err != nil {
		return err
	}
	if err := config.BindPFlag(config.KeyJSON, flags.Lookup("json")); err != nil {
		return err
	}
	a.jsonOut = config.GetBool(config.KeyJSON)
	a.exportDir = config.GetString(config.KeyExportDir)

	debug.SetVerbose(a.verbose)
	debug.SetQuiet(a.quiet)
	restore := debug.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	a.cleanups = append(a.cleanups, restore)

	level := config.GetString(config.KeyLogLevel)
	if a.verbose {
		level = "debug"
	}
	logger, syncLog, err := catlog.New(catlog.Config{
		Level:  level,
		File:   config.GetString(config.KeyLogFile),
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.logger = logger
	a.cleanups = append(a.cleanups, syncLog)

	if noDBCommands[cmd.Name()] {
		return nil
	}

	ctx := cmd.Context()
	err = telemetry.Init(ctx, "catalog", Version, telemetry.Options{
		Enabled: config.GetBool(config.KeyTelemetryEnabled),
		Stdout:  config.GetBool(config.KeyTelemetryStdout),
		Writer:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.cleanups = append(a.cleanups, func() { telemetry.Shutdown(context.Background()) })

	dbPath := config.GetString(config.KeyDB)
	debug.Logf("using database %s\n", dbPath)
	mgr, err := sqlite.New(ctx, dbPath,
		sqlite.WithLogger(logger),
		sqlite.WithBusyTimeout(config.GetDuration(config.KeyBusyTimeout)),
		sqlite.WithBusyRetries(busyRetries(), 10*time.Millisecond),
	)
	if err != nil {
		return fmt.Errorf("open %s: %w", dbPath, err)
	}
	a.store = telemetry.WrapStore(mgr)

	if _, err := catalog.NewCreateTable(a.store).Execute(ctx, catalog.NoInput{}); err != nil {
		_ = a.store.Close()
		a.store = nil
		return err
	}
	return nil
}

// teardown runs in reverse order of setup.
func (a *app) teardown() {
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.logger != nil {
			a.logger.Warn("close database", zap.Error(err))
		}
		a.store = nil
	}
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd, teardown := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	teardown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.RenderFail("Error:"), err)
		stop()
		os.Exit(1)
	}
}

func busyRetries() uint64 {
	n := config.GetInt(config.KeyBusyRetries)
	if n < 0 {
		return 0
	}
	return uint64(n)
}
