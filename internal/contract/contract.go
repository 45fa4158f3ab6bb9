// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/bikedash/schema"
)

// DatasetLoader loads the full rental record set for a source path.
// Implementations memoize by source identity so repeated interactions reuse one load.
type DatasetLoader interface {
	Load(ctx context.Context, path string) (*schema.Dataset, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetDatasetStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking dashboard interactions.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(command, datasetPath string, startTime time.Time, criteria map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, recordCount int) error

	// RecordSummary stores the scalar metrics of the run
	RecordSummary(runID int64, metrics schema.RunMetrics) error

	// GetRecentRuns returns up to limit runs, newest first
	GetRecentRuns(limit int) ([]schema.HistoryRunRecord, error)

	// GetAllRuns returns every run, oldest first
	GetAllRuns() ([]schema.HistoryRunRecord, error)

	// GetAllRunMetrics returns every stored summary, oldest first
	GetAllRunMetrics() ([]schema.RunMetricsRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}

// ResultWriter renders the results of an interaction in the configured output mode.
// This allows core logic to be tested without touching stdout.
type ResultWriter interface {
	WriteSummary(summary schema.Summary, cfg *Config, duration time.Duration) error
	WriteHourly(result schema.HourlyResult, cfg *Config, duration time.Duration) error
	WriteCategories(results []schema.CategoryResult, cfg *Config, duration time.Duration) error
	WriteDistribution(result schema.DistributionResult, cfg *Config, duration time.Duration) error
	WriteClusters(result schema.ScatterResult, cfg *Config, duration time.Duration) error
	WriteDashboard(result schema.DashboardResult, cfg *Config, duration time.Duration) error
	WriteBounds(bounds schema.DatasetBounds, cfg *Config) error
}
