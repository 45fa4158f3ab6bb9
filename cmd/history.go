package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/internal/iocache"
	"github.com/huangsam/bikedash/internal/outwriter"
	"github.com/huangsam/bikedash/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackend reads the history backend settings. An empty backend means none.
func historyBackend() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("history-backend")))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	backend, connStr, err := historyBackend()
	if err != nil {
		return err
	}

	// Initialize stores with the loaded config (no dataset caching for history commands)
	if err := iocache.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Output = schema.TextOut
	cfg.Width = viper.GetInt("width")
	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup is a specialized setup that does NOT initialize stores or
// create tables, allowing migrations to run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyBackend()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyCmd focused on interaction history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by dashboard commands.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage interaction history tracking and exports",
	Long: `Manage the history of dashboard runs.

When a history backend is configured, every dashboard command records:
- Run metadata (command, dataset path, timestamps, duration)
- The selection that was applied (date range and seasons)
- The key metrics of the selection

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show tracking statistics and recent runs
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Enable tracking for a run
  bikedash dashboard --history-backend sqlite

  # Check tracking status
  bikedash history status --history-backend sqlite`,
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all interaction history",
	Long: `Delete all stored runs and their metrics.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  bikedash history export --output-file backup
  bikedash history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Release the SQLite handle before removing its file
		iocache.CloseStores()
		if err := iocache.ClearHistory(cfg.HistoryBackend, contract.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and the most recent runs",
	Long: `Show detailed information about interaction history tracking.

Displays:
- Backend type and connection status
- Total number of runs stored
- Last and oldest run timestamps
- Total records viewed across all runs
- Database table sizes
- The most recent runs (see --recent)

Examples:
  bikedash history status --history-backend sqlite
  bikedash history status --recent 20`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetHistoryStore()
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(status)

		recent := viper.GetInt("recent")
		if recent <= 0 || status.TotalRuns == 0 {
			return
		}
		runs, err := store.GetRecentRuns(recent)
		if err != nil {
			contract.LogFatal("Failed to list recent runs", err)
		}
		fmt.Println()
		if err := outwriter.PrintRecentRuns(runs, cfg); err != nil {
			contract.LogFatal("Failed to print recent runs", err)
		}
	},
}

// historyExportCmd exports history data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export interaction history to Parquet for BI tools and analytics",
	Long: `Export all stored runs and run metrics to Parquet files.

Writes <output-file>.runs.parquet and <output-file>.run_metrics.parquet.

Requires: --output-file parameter

Examples:
  bikedash history export --output-file bikedash-history
  duckdb -c "SELECT * FROM read_parquet('bikedash-history.runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  bikedash history migrate --history-backend sqlite

  # Migrate to specific version
  bikedash history migrate --target-version 1

  # Rollback everything
  bikedash history migrate --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
