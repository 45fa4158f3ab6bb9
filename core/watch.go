package core

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/internal/dataset"
	"github.com/huangsam/bikedash/schema"
	"go.uber.org/zap"
)

// invalidator is implemented by loaders that memoize, such as dataset.Memo.
type invalidator interface {
	Invalidate(path string)
}

// ExecuteWatch renders the dashboard, then renders it again whenever the data file changes.
// It blocks until ctx is cancelled. Errors after the first render are reported and the watch goes on.
func ExecuteWatch(ctx context.Context, cfg *contract.Config, loader contract.DatasetLoader, mgr contract.CacheManager, out contract.ResultWriter) error {
	ctx = ensureCommand(ctx, "watch")
	if err := ExecuteDashboard(ctx, cfg, loader, mgr, out); err != nil {
		return err
	}

	watcher, err := dataset.NewWatcher(cfg.DataPath, cfg.WatchDebounce, func(ctx context.Context) {
		if inv, ok := loader.(invalidator); ok {
			inv.Invalidate(cfg.DataPath)
		}
		if !shouldSuppressHeader(ctx) {
			fmt.Fprintln(os.Stderr, "\n🔄 Data changed, refreshing dashboard...")
		}
		if err := ExecuteDashboard(ctx, cfg, loader, mgr, out); err != nil {
			reportWatchError(err)
		}
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.DataPath, err)
	}
	defer watcher.Stop()

	if !shouldSuppressHeader(ctx) {
		fmt.Fprintf(os.Stderr, "👀 Watching %s for changes (Ctrl-C to stop)\n", cfg.DataPath)
	}

	select {
	case <-ctx.Done():
	case <-watcher.Done():
	}

	stats := watcher.Stats()
	contract.Logger().Debug("watch stopped",
		zap.Int("events", stats.Events),
		zap.Int("triggers", stats.Triggers),
		zap.Int("errors", stats.Errors))
	return nil
}

// reportWatchError keeps the watch alive: a bad range asks for new input, anything else is a warning.
func reportWatchError(err error) {
	var rangeErr *schema.InvalidRangeError
	if errors.As(err, &rangeErr) {
		contract.LogWarn("Adjust --from/--to and save again", err)
		return
	}
	contract.LogWarn("Refresh failed, still watching", err)
}
