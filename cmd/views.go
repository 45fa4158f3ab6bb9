package cmd

import (
	"github.com/huangsam/bikedash/core"
	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/internal/outwriter"
	"github.com/spf13/cobra"
)

// runView adapts a core executor to a cobra Run function.
func runView(exec core.ExecutorFunc, failure string) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := exec(rootCtx, cfg, datasetLoader, cacheManager, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal(failure, err)
		}
	}
}

// summaryCmd shows the scalar metrics.
var summaryCmd = &cobra.Command{
	Use:   "summary [data-path]",
	Short: "Show total rentals, mean hourly rentals, mean temperature and distinct days.",
	Long: `Filter the dataset and print the key metrics of the selection.

Metrics:
- Total rentals (sum of hourly counts)
- Mean hourly rentals (rounded half to even)
- Mean temperature (two decimals)
- Distinct days in the selection

Examples:
  # Metrics for the whole dataset
  bikedash summary main_data.csv

  # Metrics for the summer of 2011
  bikedash summary --from 2011-06-01 --to 2011-08-31 --seasons summer

  # Machine-readable output
  bikedash summary --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteSummary, "Cannot compute summary"),
}

// hourlyCmd shows the hour-of-day profile.
var hourlyCmd = &cobra.Command{
	Use:   "hourly [data-path]",
	Short: "Show mean hourly rentals by hour of day for working days and weekends.",
	Long: `Average hourly rentals for every hour of the day, one column per day type.

Hours with no rows in the selection are left blank.

Examples:
  bikedash hourly --seasons spring,summer
  bikedash hourly --output csv --output-file hourly.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteHourly, "Cannot compute hourly profile"),
}

// seasonsCmd shows the mean daily rentals per season.
var seasonsCmd = &cobra.Command{
	Use:   "seasons [data-path]",
	Short: "Show mean daily rentals by season.",
	Long: `Average the daily rental count per daily season label.

Examples:
  bikedash seasons
  bikedash seasons --from 2012-01-01`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteSeasons, "Cannot compute season means"),
}

// weatherCmd shows the mean rentals per weather condition.
var weatherCmd = &cobra.Command{
	Use:   "weather [data-path]",
	Short: "Show mean rentals by hourly and daily weather condition.",
	Long: `Average hourly rentals per hourly weather condition and daily rentals
per daily weather condition. Conditions are ordered from mildest to most severe.

Examples:
  bikedash weather
  bikedash weather --seasons winter --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteWeather, "Cannot compute weather means"),
}

// distributionCmd shows box-plot statistics of daily rentals.
var distributionCmd = &cobra.Command{
	Use:   "distribution [data-path]",
	Short: "Show min, quartiles and max of daily rentals by season.",
	Long: `Summarize the spread of daily rentals per season with a five-number summary.

Examples:
  bikedash distribution
  bikedash distribution --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteDistribution, "Cannot compute distribution"),
}

// clustersCmd shows the demand cluster groups.
var clustersCmd = &cobra.Command{
	Use:   "clusters [data-path]",
	Short: "Show temperature and hourly rentals grouped by demand cluster.",
	Long: `Group the (temperature, hourly rentals) points of the selection by demand cluster.

Text output prints per-cluster point counts and ranges; CSV and JSON carry every point.

Examples:
  bikedash clusters
  bikedash clusters --output csv --output-file points.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteClusters, "Cannot compute demand clusters"),
}

// dashboardCmd shows every view at once.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard [data-path]",
	Short: "Show the full rental dashboard.",
	Long: `Print every metric and aggregate of the dashboard for the selection:
key metrics, hourly profile, season and weather means, distribution and demand clusters.

Examples:
  bikedash dashboard main_data.csv
  bikedash dashboard --from 2011-03-01 --to 2011-05-31 --seasons spring
  bikedash dashboard --output json --output-file dashboard.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteDashboard, "Cannot build dashboard"),
}

// renderCmd writes the dashboard charts as images.
var renderCmd = &cobra.Command{
	Use:   "render [data-path]",
	Short: "Render the dashboard charts as PNG or SVG files.",
	Long: `Render the dashboard charts for the selection into a directory:
hourly profile, season means, weather means, distribution and demand clusters.

Examples:
  bikedash render --chart-dir charts
  bikedash render --chart-format svg --chart-width 1280 --chart-height 640`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteRender, "Cannot render charts"),
}

// boundsCmd shows the selector domains.
var boundsCmd = &cobra.Command{
	Use:   "bounds [data-path]",
	Short: "Show the date range and seasons available in the dataset.",
	Long: `Print the first and last date, the seasons present and the record count.
These are the defaults used when --from, --to or --seasons are omitted.

Examples:
  bikedash bounds main_data.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runView(core.ExecuteBounds, "Cannot read dataset bounds"),
}
