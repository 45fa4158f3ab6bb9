package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
)

// PrintBounds outputs the selector domains of the dataset.
func PrintBounds(bounds schema.DatasetBounds, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteBounds(w, bounds, cfg)
	}, "Wrote dataset bounds")
}

// WriteBounds writes the selector domains of the dataset to w in the configured output format.
func WriteBounds(w io.Writer, bounds schema.DatasetBounds, cfg *contract.Config) error {
	_, fmtCount := createFormatters(cfg.Precision)
	minDate, maxDate := "", ""
	if bounds.Records > 0 {
		minDate = bounds.MinDate.Format(schema.DateFormat)
		maxDate = bounds.MaxDate.Format(schema.DateFormat)
	}

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, bounds); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVWithHeader(w, []string{"field", "value"}, func(cw *csv.Writer) error {
			return cw.WriteAll([][]string{
				{"min_date", minDate},
				{"max_date", maxDate},
				{"seasons", strings.Join(bounds.Seasons, "|")},
				{"records", strconv.Itoa(bounds.Records)},
			})
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		table := newTable(w, "Field", "Value")
		rows := [][]string{
			{"First Date", minDate},
			{"Last Date", maxDate},
			{"Seasons", strings.Join(bounds.Seasons, ", ")},
			{"Records", fmtCount(bounds.Records)},
		}
		if err := renderTable(table, rows); err != nil {
			return fmt.Errorf("error writing bounds table output: %w", err)
		}
	}
	return nil
}
