package mcp

import (
	"time"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
)

// captureWriter keeps the last result handed to it so handlers can return it as JSON.
type captureWriter struct {
	result any
}

var _ contract.ResultWriter = &captureWriter{} // Compile-time check

func (c *captureWriter) WriteSummary(summary schema.Summary, _ *contract.Config, _ time.Duration) error {
	c.result = summary
	return nil
}

func (c *captureWriter) WriteHourly(result schema.HourlyResult, _ *contract.Config, _ time.Duration) error {
	c.result = result
	return nil
}

func (c *captureWriter) WriteCategories(results []schema.CategoryResult, _ *contract.Config, _ time.Duration) error {
	c.result = results
	return nil
}

func (c *captureWriter) WriteDistribution(result schema.DistributionResult, _ *contract.Config, _ time.Duration) error {
	c.result = result
	return nil
}

func (c *captureWriter) WriteClusters(result schema.ScatterResult, _ *contract.Config, _ time.Duration) error {
	c.result = result
	return nil
}

func (c *captureWriter) WriteDashboard(result schema.DashboardResult, _ *contract.Config, _ time.Duration) error {
	c.result = result
	return nil
}

func (c *captureWriter) WriteBounds(bounds schema.DatasetBounds, _ *contract.Config) error {
	c.result = bounds
	return nil
}
