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

// DashboardTitle heads the text rendering of the full dashboard.
const DashboardTitle = "Bicycle Rental Dashboard"

// PrintDashboard outputs every view of one interaction, dispatching based on the output format configured.
func PrintDashboard(result schema.DashboardResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteDashboard(w, result, cfg, duration)
	}, "Wrote dashboard")
}

// WriteDashboard writes every view of one interaction to w in the configured output format.
// CSV output uses a long layout with one value per row.
func WriteDashboard(w io.Writer, result schema.DashboardResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtCount := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		header := []string{"section", "group", "key", "value"}
		if err := writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			return writeDashboardCSVRows(cw, result, fmtFloat)
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := writeDashboardText(w, result, cfg, fmtFloat, fmtCount); err != nil {
			return fmt.Errorf("error writing dashboard table output: %w", err)
		}
		writeFooter(w, "Dashboard", result.Summary.Records, duration)
	}
	return nil
}

func writeDashboardText(w io.Writer, result schema.DashboardResult, cfg *contract.Config, fmtFloat func(float64) string, fmtCount func(int) string) error {
	_, _ = fmt.Fprintf(w, "🚲 %s\n\n", DashboardTitle)

	sections := []struct {
		title  string
		render func() error
	}{
		{"📈 Key Metrics", func() error {
			return writeSummaryTable(w, result.Summary, fmtFloat, fmtCount)
		}},
		{"🕒 Mean Hourly Rentals by Day Type", func() error {
			return writeHourlyTable(w, result.Hourly, fmtFloat)
		}},
		{"🍂 Mean Daily Rentals by Season", func() error {
			return writeCategoryTable(w, result.SeasonMeans, fmtFloat, fmtCount)
		}},
		{"🌦️  Mean Hourly Rentals by Hourly Weather", func() error {
			return writeCategoryTable(w, result.WeatherHourMeans, fmtFloat, fmtCount)
		}},
		{"☁️  Mean Daily Rentals by Daily Weather", func() error {
			return writeCategoryTable(w, result.WeatherDayMeans, fmtFloat, fmtCount)
		}},
		{"📦 Daily Rentals Distribution by Season", func() error {
			return writeDistributionTable(w, result.Distribution, fmtFloat, fmtCount)
		}},
		{"🎯 Temperature vs Hourly Rentals by Demand Cluster", func() error {
			return writeClusterTable(w, result.Clusters, cfg, fmtFloat, fmtCount)
		}},
	}
	for i, section := range sections {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintln(w, section.title)
		if err := section.render(); err != nil {
			return err
		}
	}
	return nil
}

func writeDashboardCSVRows(cw *csv.Writer, result schema.DashboardResult, fmtFloat func(float64) string) error {
	var rows [][]string
	add := func(section, group, key, value string) {
		rows = append(rows, []string{section, group, key, value})
	}

	s := result.Summary
	add("summary", "", "total_rentals", strconv.Itoa(s.TotalRentals))
	add("summary", "", "mean_hourly_rentals", strconv.Itoa(s.MeanHourlyRentals))
	add("summary", "", "mean_temperature", fmtFloat(s.MeanTemperature))
	add("summary", "", "distinct_days", strconv.Itoa(s.DistinctDays))
	add("summary", "", "records", strconv.Itoa(s.Records))

	for _, series := range result.Hourly.Series {
		for _, p := range series.Points {
			add("hourly", series.WorkingDay, strconv.Itoa(p.Hour), fmtFloat(p.MeanCnt))
		}
	}

	for _, cat := range []schema.CategoryResult{result.SeasonMeans, result.WeatherHourMeans, result.WeatherDayMeans} {
		section := fmt.Sprintf("mean_%s_by_%s", cat.Value, cat.GroupBy)
		for _, g := range cat.Groups {
			add(section, g.Category, "mean", fmtFloat(g.Mean))
		}
	}

	for _, g := range result.Distribution.Groups {
		for _, kv := range []struct {
			key string
			v   float64
		}{{"min", g.Min}, {"q1", g.Q1}, {"median", g.Median}, {"q3", g.Q3}, {"max", g.Max}} {
			add("distribution", g.Category, kv.key, fmtFloat(kv.v))
		}
	}

	for _, g := range result.Clusters.Groups {
		add("clusters", g.Cluster, "points", strconv.Itoa(g.Count))
	}

	return cw.WriteAll(rows)
}
