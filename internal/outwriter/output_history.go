package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
)

// PrintRecentRuns prints a table of recorded interactions, newest first.
func PrintRecentRuns(runs []schema.HistoryRunRecord, cfg *contract.Config) error {
	return WriteRecentRuns(os.Stdout, runs, cfg)
}

// WriteRecentRuns writes a table of recorded interactions to w.
func WriteRecentRuns(w io.Writer, runs []schema.HistoryRunRecord, cfg *contract.Config) error {
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	pathWidth := getMaxTableLabelWidth(cfg, 60)
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		duration, records := "", ""
		if run.RunDurationMs != nil {
			duration = (time.Duration(*run.RunDurationMs) * time.Millisecond).String()
		}
		if run.RecordCount != nil {
			records = humanize.Comma(int64(*run.RecordCount))
		}
		rows = append(rows, []string{
			strconv.FormatInt(run.RunID, 10),
			run.Command,
			contract.TruncateLabel(run.DatasetPath, pathWidth),
			humanize.Time(run.StartTime),
			duration,
			records,
		})
	}

	table := newTable(w, "Run", "Command", "Dataset", "Started", "Duration", "Records")
	return renderTable(table, rows)
}
