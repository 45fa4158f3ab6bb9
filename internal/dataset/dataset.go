// Package dataset loads rental record sets from CSV or Parquet files,
// memoizes them by source identity and watches sources for changes.
package dataset

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
	"go.uber.org/zap"
)

// rawTable is a column-oriented view of an input file before validation.
type rawTable struct {
	rows int
	cols map[schema.Column][]string
}

// value returns the trimmed cell of a column at a 0-based row.
func (t rawTable) value(col schema.Column, row int) string {
	return strings.TrimSpace(t.cols[col][row])
}

// Load reads and validates every record of the file at path.
// The format is chosen by extension; anything other than .parquet is read as CSV.
func Load(ctx context.Context, path string) (*schema.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dataset path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat dataset: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("dataset path %s is a directory", absPath)
	}

	start := time.Now()
	var table rawTable
	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".parquet":
		table, err = readParquet(absPath)
	default:
		table, err = readCSV(absPath)
	}
	if err != nil {
		return nil, err
	}

	records, err := parseTable(table)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", absPath, err)
	}

	contract.Logger().Debug("Loaded dataset",
		zap.String("path", absPath),
		zap.Int("records", len(records)),
		zap.Duration("elapsed", time.Since(start)))

	return &schema.Dataset{
		Path:     absPath,
		ModTime:  info.ModTime(),
		Size:     info.Size(),
		Records:  records,
		LoadedAt: time.Now(),
	}, nil
}

// parseTable validates every row and converts it into a RentalRecord.
// The first invalid row aborts the load.
func parseTable(t rawTable) ([]schema.RentalRecord, error) {
	records := make([]schema.RentalRecord, 0, t.rows)
	for i := range t.rows {
		r, err := parseRow(t, i)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// parseRow converts the row at 0-based index i. Errors report 1-based data row numbers.
func parseRow(t rawTable, i int) (schema.RentalRecord, error) {
	row := i + 1
	fail := func(col schema.Column, reason string) error {
		return &schema.RecordError{Row: row, Column: col, Value: t.value(col, i), Reason: reason}
	}

	date, err := contract.ParseDate(t.value(schema.ColDate, i))
	if err != nil {
		return schema.RentalRecord{}, fail(schema.ColDate, "not a calendar date")
	}

	hour, err := parseCount(t.value(schema.ColHour, i))
	if err != nil || hour > 23 {
		return schema.RentalRecord{}, fail(schema.ColHour, "hour must be an integer in [0,23]")
	}

	temp, err := strconv.ParseFloat(t.value(schema.ColTempHour, i), 64)
	if err != nil || math.IsNaN(temp) || math.IsInf(temp, 0) {
		return schema.RentalRecord{}, fail(schema.ColTempHour, "not a finite number")
	}

	cntHour, err := parseCount(t.value(schema.ColCntHour, i))
	if err != nil {
		return schema.RentalRecord{}, fail(schema.ColCntHour, err.Error())
	}
	cntDay, err := parseCount(t.value(schema.ColCntDay, i))
	if err != nil {
		return schema.RentalRecord{}, fail(schema.ColCntDay, err.Error())
	}

	workingDay := t.value(schema.ColWorkingDay, i)
	if !schema.WorkingDayOrder.Known(workingDay) {
		return schema.RentalRecord{}, fail(schema.ColWorkingDay, "not a known day type")
	}

	cluster := t.value(schema.ColDemandCluster, i)
	if !schema.DemandOrder.Known(cluster) {
		return schema.RentalRecord{}, fail(schema.ColDemandCluster, "not a known demand cluster")
	}

	return schema.RentalRecord{
		Date:           date,
		Hour:           hour,
		SeasonHour:     t.value(schema.ColSeasonHour, i),
		SeasonDay:      t.value(schema.ColSeasonDay, i),
		WorkingDayHour: workingDay,
		WeatherHour:    t.value(schema.ColWeatherHour, i),
		WeatherDay:     t.value(schema.ColWeatherDay, i),
		TempHour:       temp,
		CntHour:        cntHour,
		CntDay:         cntDay,
		DemandCluster:  cluster,
	}, nil
}

// parseCount parses a non-negative integer. Integral floats such as "12.0" are accepted.
func parseCount(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("must not be negative")
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not an integer")
	}
	if f < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int cannot hold
	if f >= math.MaxInt64 {
		return 0, fmt.Errorf("out of range")
	}
	return int(f), nil
}
