package core

import (
	"time"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
)

// day returns midnight UTC of the given calendar date.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// rec builds a record with sensible defaults for the columns a test does not care about.
func rec(date time.Time, hour int, season string, cntHour int) schema.RentalRecord {
	return schema.RentalRecord{
		Date:           date,
		Hour:           hour,
		SeasonHour:     season,
		SeasonDay:      season,
		WorkingDayHour: schema.WorkingDay,
		WeatherHour:    "Clear",
		WeatherDay:     "Clear",
		TempHour:       10,
		CntHour:        cntHour,
		CntDay:         cntHour * 10,
		DemandCluster:  schema.LowDemand,
	}
}

// twoRecords is the two-record dataset used throughout the filter scenarios.
func twoRecords() []schema.RentalRecord {
	return []schema.RentalRecord{
		rec(day(2023, 1, 1), 8, schema.Spring, 10),
		rec(day(2023, 1, 2), 9, schema.Winter, 20),
	}
}

// contractConfig keeps the table tests short.
type contractConfig struct {
	from, to   time.Time
	seasons    []string
	seasonsSet bool
}

func (c contractConfig) build() *contract.Config {
	return &contract.Config{
		DateFrom:   c.from,
		DateTo:     c.to,
		Seasons:    c.seasons,
		SeasonsSet: c.seasonsSet,
		DataPath:   "day_hour.csv",
		Precision:  contract.DefaultPrecision,
	}
}
