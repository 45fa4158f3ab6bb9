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

// PrintCategories outputs grouped means, dispatching based on the output format configured.
func PrintCategories(results []schema.CategoryResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteCategories(w, results, cfg, duration)
	}, "Wrote category means")
}

// WriteCategories writes grouped means to w in the configured output format.
func WriteCategories(w io.Writer, results []schema.CategoryResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtCount := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, results); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		header := []string{"group_by", "value", "category", "mean", "count"}
		if err := writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			return writeCategoryCSVRows(cw, results, fmtFloat)
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		records := 0
		for i, result := range results {
			if i > 0 {
				_, _ = fmt.Fprintln(w)
			}
			_, _ = fmt.Fprintf(w, "📊 Mean %s by %s\n", result.Value, result.GroupBy)
			if err := writeCategoryTable(w, result, fmtFloat, fmtCount); err != nil {
				return fmt.Errorf("error writing category table output: %w", err)
			}
			records = max(records, categoryRecords(result))
		}
		writeFooter(w, "Category means", records, duration)
	}
	return nil
}

func categoryRecords(result schema.CategoryResult) int {
	total := 0
	for _, g := range result.Groups {
		total += g.Count
	}
	return total
}

func writeCategoryCSVRows(cw *csv.Writer, results []schema.CategoryResult, fmtFloat func(float64) string) error {
	for _, result := range results {
		for _, g := range result.Groups {
			row := []string{string(result.GroupBy), string(result.Value), g.Category, fmtFloat(g.Mean), strconv.Itoa(g.Count)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func categoryRows(result schema.CategoryResult, fmtFloat func(float64) string, fmtCount func(int) string) [][]string {
	rows := make([][]string, 0, len(result.Groups))
	for _, g := range result.Groups {
		rows = append(rows, []string{g.Category, fmtFloat(g.Mean), fmtCount(g.Count)})
	}
	return rows
}

func writeCategoryTable(w io.Writer, result schema.CategoryResult, fmtFloat func(float64) string, fmtCount func(int) string) error {
	table := newTable(w, string(result.GroupBy), "Mean "+string(result.Value), "Rows")
	return renderTable(table, categoryRows(result, fmtFloat, fmtCount))
}
