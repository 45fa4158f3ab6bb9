package schema

import "time"

// RunMetrics is the summary of one dashboard interaction as stored in history.
type RunMetrics struct {
	RecordTime        time.Time
	TotalRentals      int
	MeanHourlyRentals int
	MeanTemperature   float64
	DistinctDays      int
}

// NewRunMetrics converts a Summary into the stored representation.
func NewRunMetrics(s Summary, at time.Time) RunMetrics {
	return RunMetrics{
		RecordTime:        at,
		TotalRentals:      s.TotalRentals,
		MeanHourlyRentals: s.MeanHourlyRentals,
		MeanTemperature:   s.MeanTemperature,
		DistinctDays:      s.DistinctDays,
	}
}

// HistoryRunRecord represents a row from the bikedash_runs table.
type HistoryRunRecord struct {
	RunID         int64
	Command       string
	DatasetPath   string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	RecordCount   *int32
	Criteria      *string
}

// RunMetricsRecord represents a row from the bikedash_run_metrics table.
type RunMetricsRecord struct {
	RunID             int64
	RecordTime        time.Time
	TotalRentals      int64
	MeanHourlyRentals int64
	MeanTemperature   float64
	DistinctDays      int32
}
