package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/huangsam/bikedash/schema"
)

// readCSV reads a delimited file with a header row. Every column is kept as text
// so validation can report the offending raw value.
func readCSV(path string) (rawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rawTable{}, fmt.Errorf("failed to open dataset: %w", err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		// gota refuses a file with no data rows, which is still a valid empty dataset
		if names, ok := headerOnly(data); ok {
			return emptyTable(names, path)
		}
		return rawTable{}, fmt.Errorf("failed to read csv %s: %w", path, df.Err)
	}

	names := df.Names()
	table := rawTable{rows: df.Nrow(), cols: make(map[schema.Column][]string, len(schema.RequiredColumns))}
	for _, col := range schema.RequiredColumns {
		if !slices.Contains(names, string(col)) {
			return rawTable{}, &schema.SchemaError{Column: col, Source: path}
		}
		table.cols[col] = df.Col(string(col)).Records()
	}
	return table, nil
}

// headerOnly returns the column names when data holds a header and nothing else.
func headerOnly(data []byte) ([]string, bool) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

// emptyTable checks the header of a file without rows.
func emptyTable(names []string, path string) (rawTable, error) {
	table := rawTable{cols: make(map[schema.Column][]string, len(schema.RequiredColumns))}
	for _, col := range schema.RequiredColumns {
		if !slices.Contains(names, string(col)) {
			return rawTable{}, &schema.SchemaError{Column: col, Source: path}
		}
		table.cols[col] = []string{}
	}
	return table, nil
}
