// Package outwriter renders dashboard results as tables, JSON or CSV.
package outwriter

import (
	"time"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
)

// OutWriter writes results to the configured output file, or stdout.
type OutWriter struct{}

var _ contract.ResultWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints the scalar metrics.
func (ow *OutWriter) WriteSummary(summary schema.Summary, cfg *contract.Config, duration time.Duration) error {
	return PrintSummary(summary, cfg, duration)
}

// WriteHourly prints the hour-of-day profiles.
func (ow *OutWriter) WriteHourly(result schema.HourlyResult, cfg *contract.Config, duration time.Duration) error {
	return PrintHourly(result, cfg, duration)
}

// WriteCategories prints grouped means.
func (ow *OutWriter) WriteCategories(results []schema.CategoryResult, cfg *contract.Config, duration time.Duration) error {
	return PrintCategories(results, cfg, duration)
}

// WriteDistribution prints box-plot statistics.
func (ow *OutWriter) WriteDistribution(result schema.DistributionResult, cfg *contract.Config, duration time.Duration) error {
	return PrintDistribution(result, cfg, duration)
}

// WriteClusters prints the demand cluster groups.
func (ow *OutWriter) WriteClusters(result schema.ScatterResult, cfg *contract.Config, duration time.Duration) error {
	return PrintClusters(result, cfg, duration)
}

// WriteDashboard prints every view of one interaction.
func (ow *OutWriter) WriteDashboard(result schema.DashboardResult, cfg *contract.Config, duration time.Duration) error {
	return PrintDashboard(result, cfg, duration)
}

// WriteBounds prints the selector domains.
func (ow *OutWriter) WriteBounds(bounds schema.DatasetBounds, cfg *contract.Config) error {
	return PrintBounds(bounds, cfg)
}
