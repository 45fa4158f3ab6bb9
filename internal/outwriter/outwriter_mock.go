package outwriter

import (
	"time"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
	"github.com/stretchr/testify/mock"
)

// MockResultWriter is a mock implementation of contract.ResultWriter.
type MockResultWriter struct {
	mock.Mock
}

var _ contract.ResultWriter = &MockResultWriter{} // Compile-time check

// WriteSummary mocks the WriteSummary method.
func (m *MockResultWriter) WriteSummary(summary schema.Summary, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(summary, cfg, duration)
	return args.Error(0)
}

// WriteHourly mocks the WriteHourly method.
func (m *MockResultWriter) WriteHourly(result schema.HourlyResult, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(result, cfg, duration)
	return args.Error(0)
}

// WriteCategories mocks the WriteCategories method.
func (m *MockResultWriter) WriteCategories(results []schema.CategoryResult, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(results, cfg, duration)
	return args.Error(0)
}

// WriteDistribution mocks the WriteDistribution method.
func (m *MockResultWriter) WriteDistribution(result schema.DistributionResult, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(result, cfg, duration)
	return args.Error(0)
}

// WriteClusters mocks the WriteClusters method.
func (m *MockResultWriter) WriteClusters(result schema.ScatterResult, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(result, cfg, duration)
	return args.Error(0)
}

// WriteDashboard mocks the WriteDashboard method.
func (m *MockResultWriter) WriteDashboard(result schema.DashboardResult, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(result, cfg, duration)
	return args.Error(0)
}

// WriteBounds mocks the WriteBounds method.
func (m *MockResultWriter) WriteBounds(bounds schema.DatasetBounds, cfg *contract.Config) error {
	args := m.Called(bounds, cfg)
	return args.Error(0)
}
