package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
)

// PrintSummary outputs the scalar metrics, dispatching based on the output format configured.
func PrintSummary(summary schema.Summary, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSummary(w, summary, cfg, duration)
	}, "Wrote summary")
}

// WriteSummary writes the scalar metrics to w in the configured output format.
func WriteSummary(w io.Writer, summary schema.Summary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtCount := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, summary); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVWithHeader(w, []string{"metric", "value"}, func(cw *csv.Writer) error {
			return writeSummaryCSVRows(cw, summary, fmtFloat)
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := writeSummaryTable(w, summary, fmtFloat, fmtCount); err != nil {
			return fmt.Errorf("error writing summary table output: %w", err)
		}
		writeFooter(w, "Summary", summary.Records, duration)
	}
	return nil
}

func writeSummaryCSVRows(cw *csv.Writer, s schema.Summary, fmtFloat func(float64) string) error {
	rows := [][]string{
		{"total_rentals", strconv.Itoa(s.TotalRentals)},
		{"mean_hourly_rentals", strconv.Itoa(s.MeanHourlyRentals)},
		{"mean_temperature", fmtFloat(s.MeanTemperature)},
		{"distinct_days", strconv.Itoa(s.DistinctDays)},
		{"records", strconv.Itoa(s.Records)},
	}
	return cw.WriteAll(rows)
}

// summaryRows holds the four displayed metrics. Means of an empty view are shown as n/a.
func summaryRows(s schema.Summary, fmtFloat func(float64) string, fmtCount func(int) string) [][]string {
	meanHourly, meanTemp := notAvailable, notAvailable
	if s.Records > 0 {
		meanHourly = fmtCount(s.MeanHourlyRentals)
		meanTemp = formatTemp(fmtFloat, s.MeanTemperature)
	}
	return [][]string{
		{"Total Rentals", fmtCount(s.TotalRentals)},
		{"Mean Hourly Rentals", meanHourly},
		{"Mean Temperature", meanTemp},
		{"Distinct Days", fmtCount(s.DistinctDays)},
	}
}

func writeSummaryTable(w io.Writer, s schema.Summary, fmtFloat func(float64) string, fmtCount func(int) string) error {
	table := newTable(w, "Metric", "Value")
	return renderTable(table, summaryRows(s, fmtFloat, fmtCount))
}
