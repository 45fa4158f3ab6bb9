// Package parquet reads rental datasets from Parquet files and exports
// interaction history using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/bikedash/schema"
	"github.com/parquet-go/parquet-go"
)

// RentalRow is one record of a rental dataset stored as Parquet.
// Column names match the CSV header so both formats share one schema.
type RentalRow struct {
	Dteday         string  `parquet:"dteday,snappy"`
	Hr             int64   `parquet:"hr,snappy"`
	SeasonHour     string  `parquet:"season_hour,snappy"`
	SeasonDay      string  `parquet:"season_day,snappy"`
	WorkingDayHour string  `parquet:"workingday_hour,snappy"`
	WeatherHour    string  `parquet:"weathersit_hour,snappy"`
	WeatherDay     string  `parquet:"weathersit_day,snappy"`
	TempHour       float64 `parquet:"temp_hour,snappy"`
	CntHour        int64   `parquet:"cnt_hour,snappy"`
	CntDay         int64   `parquet:"cnt_day,snappy"`
	DemandCluster  string  `parquet:"demand_cluster,snappy"`
}

// HistoryRun represents a single dashboard interaction with metadata.
// This struct maps to the bikedash_runs database table.
type HistoryRun struct {
	// RunID is the unique identifier for this interaction
	RunID int64 `parquet:"run_id,snappy"`

	// Command is the CLI command or MCP tool that ran
	Command string `parquet:"command,snappy"`

	// DatasetPath is the source file the interaction read
	DatasetPath string `parquet:"dataset_path,snappy"`

	// StartTime is when the interaction began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the interaction completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the interaction in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// RecordCount is the number of records in the filtered view (nullable)
	RecordCount *int32 `parquet:"record_count,optional,snappy"`

	// Criteria contains the JSON-encoded filter criteria (nullable)
	Criteria *string `parquet:"criteria,optional,snappy"`
}

// RunMetrics represents the summary metrics of one interaction.
// This struct maps to the bikedash_run_metrics database table.
type RunMetrics struct {
	RunID             int64     `parquet:"run_id,snappy"`
	RecordTime        time.Time `parquet:"record_time,snappy"`
	TotalRentals      int64     `parquet:"total_rentals,snappy"`
	MeanHourlyRentals int64     `parquet:"mean_hourly_rentals,snappy"`
	MeanTemperature   float64   `parquet:"mean_temperature,snappy"`
	DistinctDays      int32     `parquet:"distinct_days,snappy"`
}

// ReadRentalRows reads every row of a rental Parquet file. A required column
// absent from the file schema yields a *schema.SchemaError before any row is read.
func ReadRentalRows(path string) ([]RentalRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet metadata: %w", err)
	}
	for _, col := range schema.RequiredColumns {
		if _, ok := pf.Schema().Lookup(string(col)); !ok {
			return nil, &schema.SchemaError{Column: col, Source: path}
		}
	}

	rows, err := parquet.Read[RentalRow](file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}
	return rows, nil
}

// writeParquet writes rows of any tagged struct type to outputPath.
func writeParquet[T any](data []T, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteRentalRowsParquet writes rental rows to a Parquet file.
func WriteRentalRowsParquet(data []RentalRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteHistoryRunsParquet writes a slice of HistoryRun structs to a Parquet file.
func WriteHistoryRunsParquet(data []HistoryRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRunMetricsParquet writes a slice of RunMetrics structs to a Parquet file.
func WriteRunMetricsParquet(data []RunMetrics, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertRentalRecords converts loaded records back into Parquet rows.
func ConvertRentalRecords(records []schema.RentalRecord) []RentalRow {
	result := make([]RentalRow, len(records))
	for i, r := range records {
		result[i] = RentalRow{
			Dteday:         r.Date.Format(schema.DateFormat),
			Hr:             int64(r.Hour),
			SeasonHour:     r.SeasonHour,
			SeasonDay:      r.SeasonDay,
			WorkingDayHour: r.WorkingDayHour,
			WeatherHour:    r.WeatherHour,
			WeatherDay:     r.WeatherDay,
			TempHour:       r.TempHour,
			CntHour:        int64(r.CntHour),
			CntDay:         int64(r.CntDay),
			DemandCluster:  r.DemandCluster,
		}
	}
	return result
}

// ConvertHistoryRunRecords converts schema.HistoryRunRecord to HistoryRun for Parquet export.
func ConvertHistoryRunRecords(records []schema.HistoryRunRecord) []HistoryRun {
	result := make([]HistoryRun, len(records))
	for i, record := range records {
		result[i] = HistoryRun{
			RunID:         record.RunID,
			Command:       record.Command,
			DatasetPath:   record.DatasetPath,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			RecordCount:   record.RecordCount,
			Criteria:      record.Criteria,
		}
	}
	return result
}

// ConvertRunMetricsRecords converts schema.RunMetricsRecord to RunMetrics for Parquet export.
func ConvertRunMetricsRecords(records []schema.RunMetricsRecord) []RunMetrics {
	result := make([]RunMetrics, len(records))
	for i, record := range records {
		result[i] = RunMetrics{
			RunID:             record.RunID,
			RecordTime:        record.RecordTime,
			TotalRentals:      record.TotalRentals,
			MeanHourlyRentals: record.MeanHourlyRentals,
			MeanTemperature:   record.MeanTemperature,
			DistinctDays:      record.DistinctDays,
		}
	}
	return result
}
