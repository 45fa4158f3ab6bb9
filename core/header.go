package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
)

// LogDashboardHeader prints a concise, 2-line header for each interaction.
func LogDashboardHeader(cfg *contract.Config, ds *schema.Dataset, view schema.FilteredView) {
	// Line 1: The data source and how much of it matched
	fmt.Printf("🔎 Data: %s (%s of %s records)\n",
		filepath.Base(ds.Path), humanize.Comma(int64(view.Len())), humanize.Comma(int64(len(ds.Records))))

	// Line 2: The selection actually applied, noting bounds filled from the data
	from := view.Criteria.DateFrom.Format(schema.DateFormat)
	if cfg.DateFrom.IsZero() {
		from += " (first)"
	}
	to := view.Criteria.DateTo.Format(schema.DateFormat)
	if cfg.DateTo.IsZero() {
		to += " (last)"
	}
	seasons := strings.Join(view.Criteria.Seasons, ", ")
	if len(view.Criteria.Seasons) == 0 {
		seasons = "none selected"
	}
	fmt.Printf("📅 Range: %s → %s | Seasons: %s\n", from, to, seasons)
}
