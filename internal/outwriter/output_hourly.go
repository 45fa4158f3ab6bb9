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

// PrintHourly outputs the hour-of-day profiles, dispatching based on the output format configured.
func PrintHourly(result schema.HourlyResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteHourly(w, result, cfg, duration)
	}, "Wrote hourly profile")
}

// WriteHourly writes the hour-of-day profiles to w in the configured output format.
func WriteHourly(w io.Writer, result schema.HourlyResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		header := []string{"workingday_hour", "hour", "mean_cnt_hour", "count"}
		if err := writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			return writeHourlyCSVRows(cw, result, fmtFloat)
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := writeHourlyTable(w, result, fmtFloat); err != nil {
			return fmt.Errorf("error writing hourly table output: %w", err)
		}
		writeFooter(w, "Hourly profile", hourlyRecords(result), duration)
	}
	return nil
}

func hourlyRecords(result schema.HourlyResult) int {
	total := 0
	for _, s := range result.Series {
		total += s.Count
	}
	return total
}

func writeHourlyCSVRows(cw *csv.Writer, result schema.HourlyResult, fmtFloat func(float64) string) error {
	for _, series := range result.Series {
		for _, p := range series.Points {
			row := []string{series.WorkingDay, strconv.Itoa(p.Hour), fmtFloat(p.MeanCnt), strconv.Itoa(p.Count)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// hourlyRows pivots the series into one row per hour, one column per series.
// An hour missing from a series leaves its cell blank.
func hourlyRows(result schema.HourlyResult, fmtFloat func(float64) string) [][]string {
	cells := make(map[int][]string)
	var hours []int
	for i, series := range result.Series {
		for _, p := range series.Points {
			row, ok := cells[p.Hour]
			if !ok {
				row = make([]string, len(result.Series))
				cells[p.Hour] = row
			}
			row[i] = fmtFloat(p.MeanCnt)
		}
	}
	for h := range 24 {
		if _, ok := cells[h]; ok {
			hours = append(hours, h)
		}
	}

	rows := make([][]string, 0, len(hours))
	for _, h := range hours {
		rows = append(rows, append([]string{fmt.Sprintf("%02d:00", h)}, cells[h]...))
	}
	return rows
}

func writeHourlyTable(w io.Writer, result schema.HourlyResult, fmtFloat func(float64) string) error {
	headers := []string{"Hour"}
	for _, series := range result.Series {
		headers = append(headers, series.WorkingDay)
	}
	return renderTable(newTable(w, headers...), hourlyRows(result, fmtFloat))
}
