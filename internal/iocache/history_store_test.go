package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/bikedash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteHistory(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl)
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun("summary", "main_data.csv", time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), runID)
	assert.NoError(t, store.EndRun(runID, time.Now(), 10))
	assert.NoError(t, store.RecordSummary(runID, schema.RunMetrics{}))

	runs, err := store.GetRecentRuns(5)
	require.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestHistoryStore_BeginEndRun(t *testing.T) {
	store := newSQLiteHistory(t)
	start := time.Date(2011, 3, 1, 12, 0, 0, 0, time.UTC)
	criteria := map[string]any{"from": "2011-01-01", "seasons": []string{"Spring"}}

	runID, err := store.BeginRun("dashboard", "/data/main_data.csv", start, criteria)
	require.NoError(t, err)
	assert.Positive(t, runID)

	require.NoError(t, store.EndRun(runID, start.Add(1500*time.Millisecond), 42))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, "dashboard", run.Command)
	assert.Equal(t, "/data/main_data.csv", run.DatasetPath)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	assert.True(t, start.Add(1500*time.Millisecond).Equal(*run.EndTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	require.NotNil(t, run.RecordCount)
	assert.Equal(t, int32(42), *run.RecordCount)
	require.NotNil(t, run.Criteria)
	assert.JSONEq(t, `{"from":"2011-01-01","seasons":["Spring"]}`, *run.Criteria)
}

func TestHistoryStore_UnfinishedRun(t *testing.T) {
	store := newSQLiteHistory(t)
	_, err := store.BeginRun("summary", "main_data.csv", time.Now(), map[string]any{})
	require.NoError(t, err)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
	assert.Nil(t, runs[0].RecordCount)
}

func TestHistoryStore_EndRunUnknown(t *testing.T) {
	store := newSQLiteHistory(t)
	assert.Error(t, store.EndRun(999, time.Now(), 1))
}

func TestHistoryStore_RecordSummary(t *testing.T) {
	store := newSQLiteHistory(t)
	at := time.Date(2012, 6, 1, 9, 0, 0, 0, time.UTC)

	runID, err := store.BeginRun("summary", "main_data.csv", at, nil)
	require.NoError(t, err)
	summary := schema.Summary{TotalRentals: 30, MeanHourlyRentals: 15, MeanTemperature: 12.35, DistinctDays: 1}
	require.NoError(t, store.RecordSummary(runID, schema.NewRunMetrics(summary, at)))

	metrics, err := store.GetAllRunMetrics()
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, runID, metrics[0].RunID)
	assert.True(t, at.Equal(metrics[0].RecordTime))
	assert.Equal(t, int64(30), metrics[0].TotalRentals)
	assert.Equal(t, int64(15), metrics[0].MeanHourlyRentals)
	assert.InDelta(t, 12.35, metrics[0].MeanTemperature, 1e-9)
	assert.Equal(t, int32(1), metrics[0].DistinctDays)

	// One summary per run
	assert.Error(t, store.RecordSummary(runID, schema.NewRunMetrics(summary, at)))
}

func TestHistoryStore_GetRecentRuns(t *testing.T) {
	store := newSQLiteHistory(t)
	base := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []int64
	for i := range 5 {
		id, err := store.BeginRun("hourly", "main_data.csv", base.Add(time.Duration(i)*time.Minute), nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	recent, err := store.GetRecentRuns(3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, ids[4], recent[0].RunID)
	assert.Equal(t, ids[2], recent[2].RunID)

	_, err = store.GetRecentRuns(0)
	assert.Error(t, err)
}

func TestHistoryStore_GetStatus(t *testing.T) {
	store := newSQLiteHistory(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[runsTable])

	first := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	last := first.Add(time.Hour)
	id1, err := store.BeginRun("summary", "a.csv", first, nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(id1, first.Add(time.Second), 100))
	id2, err := store.BeginRun("summary", "a.csv", last, nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(id2, last.Add(time.Second), 23))
	require.NoError(t, store.RecordSummary(id2, schema.RunMetrics{RecordTime: last}))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, id2, status.LastRunID)
	assert.True(t, last.Equal(status.LastRunTime))
	assert.True(t, first.Equal(status.OldestRunTime))
	assert.Equal(t, int64(123), status.TotalRecordsViewed)
	assert.Equal(t, int64(2), status.TableSizes[runsTable])
	assert.Equal(t, int64(1), status.TableSizes[runMetricsTable])
}

func TestHistoryStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	_, err = store.BeginRun("bounds", "main_data.csv", time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Table creation is idempotent on reopen
	store, err = NewHistoryStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestClearHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearHistory(schema.SQLiteBackend, path, ""))
	assert.NoFileExists(t, path)
}
