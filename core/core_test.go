package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/bikedash/internal/dataset"
	"github.com/huangsam/bikedash/internal/iocache"
	"github.com/huangsam/bikedash/internal/outwriter"
	"github.com/huangsam/bikedash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testDataset wraps the two-record scenario in a loaded dataset.
func testDataset() *schema.Dataset {
	return &schema.Dataset{Path: "day_hour.csv", Records: twoRecords()}
}

// noHistory returns a manager without a history store.
func noHistory() *iocache.MockCacheManager {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetHistoryStore").Return(nil)
	return mgr
}

func TestExecuteViews(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := contractConfig{}.build()

	tests := []struct {
		name   string
		exec   ExecutorFunc
		method string
		check  func(t *testing.T, arg any)
	}{
		{"summary", ExecuteSummary, "WriteSummary", func(t *testing.T, arg any) {
			summary := arg.(schema.Summary)
			assert.Equal(t, 30, summary.TotalRentals)
			assert.Equal(t, 15, summary.MeanHourlyRentals)
			assert.Equal(t, 2, summary.DistinctDays)
		}},
		{"hourly", ExecuteHourly, "WriteHourly", func(t *testing.T, arg any) {
			assert.Len(t, arg.(schema.HourlyResult).Series, 2)
		}},
		{"seasons", ExecuteSeasons, "WriteCategories", func(t *testing.T, arg any) {
			results := arg.([]schema.CategoryResult)
			require.Len(t, results, 1)
			assert.Equal(t, schema.ColSeasonDay, results[0].GroupBy)
		}},
		{"weather", ExecuteWeather, "WriteCategories", func(t *testing.T, arg any) {
			results := arg.([]schema.CategoryResult)
			require.Len(t, results, 2)
			assert.Equal(t, schema.ColWeatherHour, results[0].GroupBy)
			assert.Equal(t, schema.ColWeatherDay, results[1].GroupBy)
		}},
		{"distribution", ExecuteDistribution, "WriteDistribution", func(t *testing.T, arg any) {
			assert.Len(t, arg.(schema.DistributionResult).Groups, 2)
		}},
		{"clusters", ExecuteClusters, "WriteClusters", func(t *testing.T, arg any) {
			assert.Len(t, arg.(schema.ScatterResult).Groups, 3)
		}},
		{"dashboard", ExecuteDashboard, "WriteDashboard", func(t *testing.T, arg any) {
			assert.Equal(t, 30, arg.(schema.DashboardResult).Summary.TotalRentals)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &dataset.MockLoader{}
			loader.On("Load", mock.Anything, cfg.DataPath).Return(testDataset(), nil)
			out := &outwriter.MockResultWriter{}
			out.On(tt.method, mock.Anything, cfg, mock.Anything).Return(nil)

			require.NoError(t, tt.exec(ctx, cfg, loader, noHistory(), out))
			out.AssertExpectations(t)
			tt.check(t, out.Calls[0].Arguments.Get(0))
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())

	t.Run("load failure", func(t *testing.T) {
		cfg := contractConfig{}.build()
		loader := &dataset.MockLoader{}
		loader.On("Load", mock.Anything, cfg.DataPath).Return(nil, errors.New("boom"))
		out := &outwriter.MockResultWriter{}

		err := ExecuteSummary(ctx, cfg, loader, noHistory(), out)
		assert.ErrorContains(t, err, "boom")
		out.AssertNotCalled(t, "WriteSummary", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("inverted range", func(t *testing.T) {
		cfg := contractConfig{from: day(2023, 1, 2), to: day(2023, 1, 1)}.build()
		loader := &dataset.MockLoader{}
		loader.On("Load", mock.Anything, cfg.DataPath).Return(testDataset(), nil)
		mgr := &iocache.MockCacheManager{}
		out := &outwriter.MockResultWriter{}

		err := ExecuteDashboard(ctx, cfg, loader, mgr, out)
		var rangeErr *schema.InvalidRangeError
		require.ErrorAs(t, err, &rangeErr)
		mgr.AssertNotCalled(t, "GetHistoryStore")
	})

	t.Run("writer failure", func(t *testing.T) {
		cfg := contractConfig{}.build()
		loader := &dataset.MockLoader{}
		loader.On("Load", mock.Anything, cfg.DataPath).Return(testDataset(), nil)
		out := &outwriter.MockResultWriter{}
		out.On("WriteClusters", mock.Anything, cfg, mock.Anything).Return(errors.New("disk full"))

		assert.ErrorContains(t, ExecuteClusters(ctx, cfg, loader, noHistory(), out), "disk full")
	})
}

func TestExecuteTracksHistory(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := contractConfig{seasons: []string{schema.Spring}, seasonsSet: true}.build()

	loader := &dataset.MockLoader{}
	loader.On("Load", mock.Anything, cfg.DataPath).Return(testDataset(), nil)

	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", "summary", "day_hour.csv", mock.Anything, mock.MatchedBy(func(c map[string]any) bool {
		return c["from"] == "2023-01-01" && c["to"] == "2023-01-02"
	})).Return(int64(7), nil)
	history.On("RecordSummary", int64(7), mock.MatchedBy(func(m schema.RunMetrics) bool {
		return m.TotalRentals == 10 && m.DistinctDays == 1
	})).Return(nil)
	history.On("EndRun", int64(7), mock.Anything, 1).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetHistoryStore").Return(history)

	out := &outwriter.MockResultWriter{}
	out.On("WriteSummary", mock.Anything, cfg, mock.Anything).Return(nil)

	require.NoError(t, ExecuteSummary(ctx, cfg, loader, mgr, out))
	history.AssertExpectations(t)
}

func TestExecuteHistoryFailureIsNotFatal(t *testing.T) {
	ctx := WithCommand(WithSuppressHeader(context.Background()), "mcp")
	cfg := contractConfig{}.build()

	loader := &dataset.MockLoader{}
	loader.On("Load", mock.Anything, cfg.DataPath).Return(testDataset(), nil)

	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", "mcp", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), errors.New("locked"))

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetHistoryStore").Return(history)

	out := &outwriter.MockResultWriter{}
	out.On("WriteDashboard", mock.Anything, cfg, mock.Anything).Return(nil)

	require.NoError(t, ExecuteDashboard(ctx, cfg, loader, mgr, out))
	history.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
	out.AssertExpectations(t)
}

func TestExecuteBounds(t *testing.T) {
	cfg := contractConfig{}.build()
	loader := &dataset.MockLoader{}
	loader.On("Load", mock.Anything, cfg.DataPath).Return(testDataset(), nil)

	out := &outwriter.MockResultWriter{}
	out.On("WriteBounds", schema.DatasetBounds{
		MinDate: day(2023, 1, 1),
		MaxDate: day(2023, 1, 2),
		Seasons: []string{schema.Spring, schema.Winter},
		Records: 2,
	}, cfg).Return(nil)

	require.NoError(t, ExecuteBounds(context.Background(), cfg, loader, nil, out))
	out.AssertExpectations(t)
}

func TestExecuteRender(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := contractConfig{}.build()
	cfg.ChartDir = t.TempDir()
	cfg.ChartFormat = schema.SVGChart
	cfg.ChartWidth = 640
	cfg.ChartHeight = 320

	loader := &dataset.MockLoader{}
	loader.On("Load", mock.Anything, cfg.DataPath).Return(testDataset(), nil)

	require.NoError(t, ExecuteRender(ctx, cfg, loader, noHistory(), nil))

	files, err := filepath.Glob(filepath.Join(cfg.ChartDir, "*.svg"))
	require.NoError(t, err)
	assert.Len(t, files, 6)
}

func TestExecuteWatch(t *testing.T) {
	dir := t.TempDir()
	cfg := contractConfig{}.build()
	cfg.DataPath = filepath.Join(dir, "day_hour.csv")
	cfg.WatchDebounce = 20 * time.Millisecond
	require.NoError(t, os.WriteFile(cfg.DataPath, []byte("v1"), 0o644))

	ctx, cancel := context.WithCancel(WithSuppressHeader(context.Background()))
	defer cancel()

	loader := &dataset.MockLoader{}
	loader.On("Load", mock.Anything, cfg.DataPath).Return(testDataset(), nil)

	refreshed := make(chan struct{}, 4)
	out := &outwriter.MockResultWriter{}
	out.On("WriteDashboard", mock.Anything, cfg, mock.Anything).Return(nil).Run(func(mock.Arguments) {
		refreshed <- struct{}{}
	})

	errCh := make(chan error, 1)
	go func() { errCh <- ExecuteWatch(ctx, cfg, loader, noHistory(), out) }()

	select {
	case <-refreshed:
	case <-time.After(5 * time.Second):
		t.Fatal("initial dashboard was not written")
	}

	// Give the watcher a moment to register the directory before touching the file
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
waitForRefresh:
	for {
		select {
		case <-refreshed:
			break waitForRefresh
		case <-tick.C:
			require.NoError(t, os.WriteFile(cfg.DataPath, []byte("v2"), 0o644))
		case <-deadline:
			t.Fatal("dashboard was not refreshed after the file changed")
		}
	}

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestReportWatchError(t *testing.T) {
	// Both kinds only warn; neither may panic or exit.
	reportWatchError(&schema.InvalidRangeError{From: day(2023, 1, 2), To: day(2023, 1, 1)})
	reportWatchError(errors.New("parse failure"))
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))
	assert.True(t, shouldSuppressHeader(WithSuppressHeader(ctx)))

	assert.Equal(t, "dashboard", commandFromContext(ctx))
	assert.Equal(t, "summary", commandFromContext(ensureCommand(ctx, "summary")))
	assert.Equal(t, "mcp", commandFromContext(ensureCommand(WithCommand(ctx, "mcp"), "summary")))
}
