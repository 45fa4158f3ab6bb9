package iocache

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/bikedash/internal/parquet"
)

// ExecuteHistoryExport writes the interaction history to two Parquet files
// named after outputFile: one for runs and one for run metrics.
func ExecuteHistoryExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("history store is not configured. Set --history-backend")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no history data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %s\n", humanize.Comma(int64(status.TotalRuns)))
	fmt.Printf("Total summaries: %s\n", humanize.Comma(status.TableSizes[runMetricsTable]))

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	metrics, err := store.GetAllRunMetrics()
	if err != nil {
		return fmt.Errorf("failed to retrieve run metrics: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	parquetRuns := parquet.ConvertHistoryRunRecords(runs)
	if err := parquet.WriteHistoryRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	metricsFile := outputFile + ".run_metrics.parquet"
	parquetMetrics := parquet.ConvertRunMetricsRecords(metrics)
	if err := parquet.WriteRunMetricsParquet(parquetMetrics, metricsFile); err != nil {
		return fmt.Errorf("failed to write run metrics: %w", err)
	}
	fmt.Printf("Exported %d summaries to: %s\n", len(parquetMetrics), metricsFile)

	fmt.Println("\nExport complete! The Parquet files can be read with DuckDB, Pandas, Spark or Arrow.")
	return nil
}
