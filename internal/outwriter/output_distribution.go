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

// PrintDistribution outputs box-plot statistics, dispatching based on the output format configured.
func PrintDistribution(result schema.DistributionResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteDistribution(w, result, cfg, duration)
	}, "Wrote distribution")
}

// WriteDistribution writes box-plot statistics to w in the configured output format.
func WriteDistribution(w io.Writer, result schema.DistributionResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtCount := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		header := []string{string(result.GroupBy), "min", "q1", "median", "q3", "max", "count"}
		if err := writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			return writeDistributionCSVRows(cw, result, fmtFloat)
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := writeDistributionTable(w, result, fmtFloat, fmtCount); err != nil {
			return fmt.Errorf("error writing distribution table output: %w", err)
		}
		records := 0
		for _, g := range result.Groups {
			records += g.Count
		}
		writeFooter(w, "Distribution", records, duration)
	}
	return nil
}

func writeDistributionCSVRows(cw *csv.Writer, result schema.DistributionResult, fmtFloat func(float64) string) error {
	for _, g := range result.Groups {
		row := []string{
			g.Category,
			fmtFloat(g.Min), fmtFloat(g.Q1), fmtFloat(g.Median), fmtFloat(g.Q3), fmtFloat(g.Max),
			strconv.Itoa(g.Count),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func distributionRows(result schema.DistributionResult, fmtFloat func(float64) string, fmtCount func(int) string) [][]string {
	rows := make([][]string, 0, len(result.Groups))
	for _, g := range result.Groups {
		rows = append(rows, []string{
			g.Category,
			fmtFloat(g.Min), fmtFloat(g.Q1), fmtFloat(g.Median), fmtFloat(g.Q3), fmtFloat(g.Max),
			fmtCount(g.Count),
		})
	}
	return rows
}

func writeDistributionTable(w io.Writer, result schema.DistributionResult, fmtFloat func(float64) string, fmtCount func(int) string) error {
	table := newTable(w, string(result.GroupBy), "Min", "Q1", "Median", "Q3", "Max", "Rows")
	return renderTable(table, distributionRows(result, fmtFloat, fmtCount))
}
