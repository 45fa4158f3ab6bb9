package core

import (
	"context"
	"time"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
)

// Interaction is one filter pass over the loaded dataset, tracked in history when configured.
type Interaction struct {
	Dataset *schema.Dataset
	Bounds  schema.DatasetBounds
	View    schema.FilteredView

	store contract.HistoryStore
	runID int64
}

// StartInteraction loads the dataset, resolves the criteria against its bounds and applies them.
// An inverted date range fails with *schema.InvalidRangeError before anything is recorded.
func StartInteraction(ctx context.Context, cfg *contract.Config, loader contract.DatasetLoader, mgr contract.CacheManager) (*Interaction, error) {
	ds, err := loader.Load(ctx, cfg.DataPath)
	if err != nil {
		return nil, err
	}

	bounds := ds.Bounds()
	view, err := Apply(ds.Records, ResolveCriteria(cfg, bounds))
	if err != nil {
		return nil, err
	}

	// JSON and CSV on stdout must stay parseable
	if !shouldSuppressHeader(ctx) && (cfg.Output == schema.TextOut || cfg.OutputFile != "") {
		LogDashboardHeader(cfg, ds, view)
	}

	it := &Interaction{Dataset: ds, Bounds: bounds, View: view}
	it.begin(ctx, mgr)
	return it, nil
}

// begin records the run when a history store is configured. Tracking failures only warn.
func (it *Interaction) begin(ctx context.Context, mgr contract.CacheManager) {
	if mgr == nil {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}

	criteria := map[string]any{
		"from":    it.View.Criteria.DateFrom.Format(schema.DateFormat),
		"to":      it.View.Criteria.DateTo.Format(schema.DateFormat),
		"seasons": it.View.Criteria.Seasons,
	}
	runID, err := store.BeginRun(commandFromContext(ctx), it.Dataset.Path, time.Now(), criteria)
	if err != nil {
		contract.LogWarn("History tracking initialization failed", err)
		return
	}
	it.store, it.runID = store, runID
}

// Finish stores the summary of the view and closes the run.
func (it *Interaction) Finish(summary schema.Summary) {
	if it.store == nil || it.runID <= 0 {
		return
	}
	now := time.Now()
	if err := it.store.RecordSummary(it.runID, schema.NewRunMetrics(summary, now)); err != nil {
		contract.LogWarn("Failed to record run summary", err)
	}
	if err := it.store.EndRun(it.runID, now, it.View.Len()); err != nil {
		contract.LogWarn("Failed to finalize history tracking", err)
	}
}
