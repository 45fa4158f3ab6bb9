package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/bikedash/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRentalRowStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(RentalRow))
	require.NotNil(t, s)

	for _, col := range schema.RequiredColumns {
		_, ok := s.Lookup(string(col))
		assert.True(t, ok, "Column %s should exist in schema", col)
	}
}

func TestHistoryStructTags(t *testing.T) {
	runSchema := parquet.SchemaOf(new(HistoryRun))
	for _, colName := range []string{"run_id", "command", "dataset_path", "start_time", "end_time", "run_duration_ms", "record_count", "criteria"} {
		_, ok := runSchema.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}

	metricsSchema := parquet.SchemaOf(new(RunMetrics))
	for _, colName := range []string{"run_id", "record_time", "total_rentals", "mean_hourly_rentals", "mean_temperature", "distinct_days"} {
		_, ok := metricsSchema.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func sampleRecords() []schema.RentalRecord {
	return []schema.RentalRecord{
		{
			Date: time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC), Hour: 0,
			SeasonHour: schema.Winter, SeasonDay: schema.Winter,
			WorkingDayHour: schema.WeekendHoliday, WeatherHour: "Clear", WeatherDay: "Mist",
			TempHour: 3.28, CntHour: 16, CntDay: 985, DemandCluster: schema.LowDemand,
		},
		{
			Date: time.Date(2011, 6, 15, 0, 0, 0, 0, time.UTC), Hour: 17,
			SeasonHour: schema.Summer, SeasonDay: schema.Summer,
			WorkingDayHour: schema.WorkingDay, WeatherHour: "Clear", WeatherDay: "Clear",
			TempHour: 29.5, CntHour: 612, CntDay: 5515, DemandCluster: schema.HighDemand,
		},
	}
}

func TestRentalRowsRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "rentals.parquet")
	rows := ConvertRentalRecords(sampleRecords())
	require.NoError(t, WriteRentalRowsParquet(rows, outputPath))

	got, err := ReadRentalRows(outputPath)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2011-01-01", got[0].Dteday)
	assert.Equal(t, int64(17), got[1].Hr)
	assert.Equal(t, int64(612), got[1].CntHour)
	assert.InDelta(t, 29.5, got[1].TempHour, 1e-9)
	assert.Equal(t, schema.HighDemand, got[1].DemandCluster)
}

// partialRow lacks the demand_cluster column.
type partialRow struct {
	Dteday string `parquet:"dteday"`
	Hr     int64  `parquet:"hr"`
}

func TestReadRentalRowsMissingColumn(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "partial.parquet")
	require.NoError(t, parquet.WriteFile(outputPath, []partialRow{{Dteday: "2011-01-01", Hr: 1}}))

	_, err := ReadRentalRows(outputPath)
	require.Error(t, err)

	var schemaErr *schema.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, schema.ColSeasonHour, schemaErr.Column)
}

func TestReadRentalRowsErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadRentalRows(filepath.Join(t.TempDir(), "absent.parquet"))
		assert.Error(t, err)
	})

	t.Run("not parquet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bogus.parquet")
		require.NoError(t, os.WriteFile(path, []byte("dteday,hr\n2011-01-01,1\n"), 0o644))
		_, err := ReadRentalRows(path)
		assert.Error(t, err)
	})
}

func TestWriteHistoryParquet(t *testing.T) {
	tmpDir := t.TempDir()
	start := time.Now().Add(-time.Minute).UTC()
	end := start.Add(1500 * time.Millisecond)
	duration := int32(1500)
	count := int32(42)
	criteria := `{"date_from":"2011-01-01","date_to":"2011-12-31","seasons":["Summer"]}`

	runs := ConvertHistoryRunRecords([]schema.HistoryRunRecord{
		{RunID: 1, Command: "dashboard", DatasetPath: "main_data.csv", StartTime: start, EndTime: &end, RunDurationMs: &duration, RecordCount: &count, Criteria: &criteria},
		{RunID: 2, Command: "summary", DatasetPath: "main_data.csv", StartTime: end},
	})
	runsPath := filepath.Join(tmpDir, "runs.parquet")
	require.NoError(t, WriteHistoryRunsParquet(runs, runsPath))

	got, err := parquet.ReadFile[HistoryRun](runsPath)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "dashboard", got[0].Command)
	require.NotNil(t, got[0].RecordCount)
	assert.Equal(t, count, *got[0].RecordCount)
	assert.Nil(t, got[1].EndTime)
	assert.Nil(t, got[1].Criteria)

	metrics := ConvertRunMetricsRecords([]schema.RunMetricsRecord{
		{RunID: 1, RecordTime: end, TotalRentals: 30, MeanHourlyRentals: 15, MeanTemperature: 12.5, DistinctDays: 1},
	})
	metricsPath := filepath.Join(tmpDir, "metrics.parquet")
	require.NoError(t, WriteRunMetricsParquet(metrics, metricsPath))

	gotMetrics, err := parquet.ReadFile[RunMetrics](metricsPath)
	require.NoError(t, err)
	require.Len(t, gotMetrics, 1)
	assert.Equal(t, int64(30), gotMetrics[0].TotalRentals)
	assert.Equal(t, int32(1), gotMetrics[0].DistinctDays)
}

func TestWriteParquetInvalidPath(t *testing.T) {
	err := WriteRentalRowsParquet(nil, filepath.Join(t.TempDir(), "missing", "dir", "out.parquet"))
	assert.Error(t, err)
}
