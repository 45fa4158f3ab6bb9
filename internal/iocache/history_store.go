package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"time"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
)

// Table names for interaction history.
const (
	runsTable       = "bikedash_runs"
	runMetricsTable = "bikedash_run_metrics"
	migrationsTable = "bikedash_schema_migrations"
)

// runColumns is the column list shared by every run query.
const runColumns = "run_id, command, dataset_path, start_time, end_time, run_duration_ms, record_count, criteria"

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// No-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}
	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}
	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables runs every embedded up migration for the backend.
// The statements are idempotent, so a database managed by `history migrate` is left alone.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	dir := path.Join("migrations", string(backend))
	files, err := fs.Glob(migrationsFS, path.Join(dir, "*.up.sql"))
	if err != nil {
		return err
	}
	slices.Sort(files)
	for _, file := range files {
		ddl, err := fs.ReadFile(migrationsFS, file)
		if err != nil {
			return err
		}
		if _, err := db.Exec(string(ddl)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", path.Base(file), err)
		}
	}
	return nil
}

func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginRun creates a new run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(command, datasetPath string, startTime time.Time, criteria map[string]any) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}

	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal criteria: %w", err)
	}

	quoted := quoteTableName(runsTable, hs.backend)
	args := []any{command, datasetPath, formatTime(startTime, hs.backend), string(criteriaJSON)}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (command, dataset_path, start_time, criteria) VALUES ($1, $2, $3, $4) RETURNING run_id`, quoted)
		err = hs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (command, dataset_path, start_time, criteria) VALUES (?, ?, ?, ?)`, quoted)
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, recordCount int) error {
	if hs.disabled() {
		return nil
	}

	quoted := quoteTableName(runsTable, hs.backend)
	var start sqlTime
	query := bind(fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quoted), hs.backend)
	if err := hs.db.QueryRow(query, runID).Scan(&start); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(start.Time).Milliseconds()
	update := bind(fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, record_count = ? WHERE run_id = ?`, quoted), hs.backend)
	if _, err := hs.db.Exec(update, formatTime(endTime, hs.backend), durationMs, recordCount, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordSummary stores the scalar metrics of a run.
func (hs *HistoryStoreImpl) RecordSummary(runID int64, metrics schema.RunMetrics) error {
	if hs.disabled() {
		return nil
	}

	query := bind(fmt.Sprintf(`
		INSERT INTO %s (run_id, record_time, total_rentals, mean_hourly_rentals, mean_temperature, distinct_days)
		VALUES (?, ?, ?, ?, ?, ?)
	`, quoteTableName(runMetricsTable, hs.backend)), hs.backend)
	_, err := hs.db.Exec(query, runID, formatTime(metrics.RecordTime, hs.backend),
		metrics.TotalRentals, metrics.MeanHourlyRentals, metrics.MeanTemperature, metrics.DistinctDays)
	if err != nil {
		return fmt.Errorf("failed to insert run metrics: %w", err)
	}
	return nil
}

// GetRecentRuns returns up to limit runs, newest first.
func (hs *HistoryStoreImpl) GetRecentRuns(limit int) ([]schema.HistoryRunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive (received %d)", limit)
	}
	return hs.queryRuns(fmt.Sprintf("SELECT %s FROM %s ORDER BY run_id DESC LIMIT %d",
		runColumns, quoteTableName(runsTable, hs.backend), limit))
}

// GetAllRuns retrieves all runs from the store, oldest first.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.HistoryRunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}
	return hs.queryRuns(fmt.Sprintf("SELECT %s FROM %s ORDER BY run_id", runColumns, quoteTableName(runsTable, hs.backend)))
}

func (hs *HistoryStoreImpl) queryRuns(query string) ([]schema.HistoryRunRecord, error) {
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.HistoryRunRecord
	for rows.Next() {
		var record schema.HistoryRunRecord
		var start, end sqlTime
		if err := rows.Scan(&record.RunID, &record.Command, &record.DatasetPath, &start, &end,
			&record.RunDurationMs, &record.RecordCount, &record.Criteria); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		record.StartTime = start.Time
		record.EndTime = end.ptr()
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllRunMetrics retrieves every stored summary, oldest first.
func (hs *HistoryStoreImpl) GetAllRunMetrics() ([]schema.RunMetricsRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, record_time, total_rentals, mean_hourly_rentals, mean_temperature, distinct_days
		FROM %s ORDER BY run_id`, quoteTableName(runMetricsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query run metrics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunMetricsRecord
	for rows.Next() {
		var record schema.RunMetricsRecord
		var recordTime sqlTime
		if err := rows.Scan(&record.RunID, &recordTime, &record.TotalRentals, &record.MeanHourlyRentals,
			&record.MeanTemperature, &record.DistinctDays); err != nil {
			return nil, fmt.Errorf("failed to scan run metrics: %w", err)
		}
		record.RecordTime = recordTime.Time
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run metrics: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.disabled() {
		return status, nil
	}

	quoted := quoteTableName(runsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoted)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var last, oldest sqlTime
		row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoted))
		if err := row.Scan(&status.LastRunID, &last); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunTime = last.Time

		row = hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoted))
		if err := row.Scan(&oldest); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldest.Time

		row = hs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(record_count), 0) FROM %s", quoted))
		if err := row.Scan(&status.TotalRecordsViewed); err != nil {
			return status, fmt.Errorf("failed to get total records viewed: %w", err)
		}
	}

	for _, table := range []string{runsTable, runMetricsTable} {
		var count int64
		if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}
