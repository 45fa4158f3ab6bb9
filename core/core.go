// Package core has the filter and aggregation pipeline behind every dashboard view.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/bikedash/internal/charts"
	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
)

// ExecutorFunc defines the function signature for executing a dashboard view.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, loader contract.DatasetLoader, mgr contract.CacheManager, out contract.ResultWriter) error

// ExecuteSummary computes the scalar metrics of the current selection.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, loader contract.DatasetLoader, mgr contract.CacheManager, out contract.ResultWriter) error {
	start := time.Now()
	it, err := StartInteraction(ensureCommand(ctx, "summary"), cfg, loader, mgr)
	if err != nil {
		return err
	}
	summary := Summarize(it.View)
	it.Finish(summary)
	return out.WriteSummary(summary, cfg, time.Since(start))
}

// ExecuteHourly computes the hour-of-day profile per day type.
func ExecuteHourly(ctx context.Context, cfg *contract.Config, loader contract.DatasetLoader, mgr contract.CacheManager, out contract.ResultWriter) error {
	start := time.Now()
	it, err := StartInteraction(ensureCommand(ctx, "hourly"), cfg, loader, mgr)
	if err != nil {
		return err
	}
	result := HourlyByWorkingDay(it.View)
	it.Finish(Summarize(it.View))
	return out.WriteHourly(result, cfg, time.Since(start))
}

// ExecuteSeasons computes mean daily rentals per season.
func ExecuteSeasons(ctx context.Context, cfg *contract.Config, loader contract.DatasetLoader, mgr contract.CacheManager, out contract.ResultWriter) error {
	start := time.Now()
	it, err := StartInteraction(ensureCommand(ctx, "seasons"), cfg, loader, mgr)
	if err != nil {
		return err
	}
	results := []schema.CategoryResult{SeasonDayMeans(it.View)}
	it.Finish(Summarize(it.View))
	return out.WriteCategories(results, cfg, time.Since(start))
}

// ExecuteWeather computes mean rentals per hourly and per daily weather condition.
func ExecuteWeather(ctx context.Context, cfg *contract.Config, loader contract.DatasetLoader, mgr contract.CacheManager, out contract.ResultWriter) error {
	start := time.Now()
	it, err := StartInteraction(ensureCommand(ctx, "weather"), cfg, loader, mgr)
	if err != nil {
		return err
	}
	results := []schema.CategoryResult{WeatherHourMeans(it.View), WeatherDayMeans(it.View)}
	it.Finish(Summarize(it.View))
	return out.WriteCategories(results, cfg, time.Since(start))
}

// ExecuteDistribution computes the box-plot statistics of daily rentals per season.
func ExecuteDistribution(ctx context.Context, cfg *contract.Config, loader contract.DatasetLoader, mgr contract.CacheManager, out contract.ResultWriter) error {
	start := time.Now()
	it, err := StartInteraction(ensureCommand(ctx, "distribution"), cfg, loader, mgr)
	if err != nil {
		return err
	}
	result := SeasonDayDistribution(it.View)
	it.Finish(Summarize(it.View))
	return out.WriteDistribution(result, cfg, time.Since(start))
}

// ExecuteClusters groups temperature and hourly rentals by demand cluster.
func ExecuteClusters(ctx context.Context, cfg *contract.Config, loader contract.DatasetLoader, mgr contract.CacheManager, out contract.ResultWriter) error {
	start := time.Now()
	it, err := StartInteraction(ensureCommand(ctx, "clusters"), cfg, loader, mgr)
	if err != nil {
		return err
	}
	result := ScatterByCluster(it.View)
	it.Finish(Summarize(it.View))
	return out.WriteClusters(result, cfg, time.Since(start))
}

// ExecuteDashboard computes every view of the dashboard in one interaction.
func ExecuteDashboard(ctx context.Context, cfg *contract.Config, loader contract.DatasetLoader, mgr contract.CacheManager, out contract.ResultWriter) error {
	start := time.Now()
	it, err := StartInteraction(ensureCommand(ctx, "dashboard"), cfg, loader, mgr)
	if err != nil {
		return err
	}
	result := BuildDashboard(it.View)
	it.Finish(result.Summary)
	return out.WriteDashboard(result, cfg, time.Since(start))
}

// ExecuteRender computes the dashboard and writes its charts into cfg.ChartDir.
// The ResultWriter is unused; chart paths are printed unless headers are suppressed.
func ExecuteRender(ctx context.Context, cfg *contract.Config, loader contract.DatasetLoader, mgr contract.CacheManager, _ contract.ResultWriter) error {
	start := time.Now()
	it, err := StartInteraction(ensureCommand(ctx, "render"), cfg, loader, mgr)
	if err != nil {
		return err
	}
	result := BuildDashboard(it.View)
	it.Finish(result.Summary)

	opts := charts.Options{Format: cfg.ChartFormat, Width: cfg.ChartWidth, Height: cfg.ChartHeight}
	paths, err := charts.RenderDashboard(result, cfg.ChartDir, opts)
	if err != nil {
		return err
	}
	if !shouldSuppressHeader(ctx) {
		for _, path := range paths {
			fmt.Printf("🖼️  Wrote %s\n", path)
		}
		fmt.Printf("Rendered %d charts in %v.\n", len(paths), time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// ExecuteBounds reports the selector domains of the dataset. Nothing is filtered or recorded.
func ExecuteBounds(ctx context.Context, cfg *contract.Config, loader contract.DatasetLoader, _ contract.CacheManager, out contract.ResultWriter) error {
	ds, err := loader.Load(ctx, cfg.DataPath)
	if err != nil {
		return err
	}
	return out.WriteBounds(ds.Bounds(), cfg)
}
