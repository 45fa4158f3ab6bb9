package schema

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSortCategories(t *testing.T) {
	tests := []struct {
		name     string
		labels   []string
		order    CategoryOrder
		expected []string
	}{
		{
			name:     "seasons follow calendar order",
			labels:   []string{Winter, Fall, Spring, Summer},
			order:    SeasonOrder,
			expected: []string{Spring, Summer, Fall, Winter},
		},
		{
			name:     "weather follows severity",
			labels:   []string{"Heavy Rain", "Clear", "Light Snow", "Mist"},
			order:    WeatherOrder,
			expected: []string{"Clear", "Mist", "Light Snow", "Heavy Rain"},
		},
		{
			name:     "unknown labels go last in lexicographic order",
			labels:   []string{"Zonda", "Summer", "Monsoon", "Spring"},
			order:    SeasonOrder,
			expected: []string{Spring, Summer, "Monsoon", "Zonda"},
		},
		{
			name:     "aliases share a rank and tie-break lexicographically",
			labels:   []string{"Misty", "Cloudy", "Clear"},
			order:    WeatherOrder,
			expected: []string{"Clear", "Cloudy", "Misty"},
		},
		{
			name:     "demand clusters",
			labels:   []string{HighDemand, LowDemand, MediumDemand},
			order:    DemandOrder,
			expected: []string{LowDemand, MediumDemand, HighDemand},
		},
		{
			name:     "empty input",
			labels:   []string{},
			order:    SeasonOrder,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortCategories(tt.labels, tt.order)
			assert.Equal(t, tt.expected, tt.labels)
		})
	}
}

func TestCategoryOrderKnown(t *testing.T) {
	assert.True(t, SeasonOrder.Known(Spring))
	assert.True(t, SeasonOrder.Known("Autumn"))
	assert.False(t, SeasonOrder.Known("spring"))
	assert.True(t, WorkingDayOrder.Known(WeekendHoliday))
	assert.False(t, DemandOrder.Known("Extreme Demand"))
}

func TestDatasetBounds(t *testing.T) {
	t.Run("min max and seasons", func(t *testing.T) {
		ds := &Dataset{Records: []RentalRecord{
			{Date: day("2011-03-02"), SeasonHour: Winter},
			{Date: day("2011-01-01"), SeasonHour: Spring},
			{Date: day("2011-06-30"), SeasonHour: Summer},
			{Date: day("2011-01-01"), SeasonHour: Spring},
		}}

		bounds := ds.Bounds()
		assert.Equal(t, day("2011-01-01"), bounds.MinDate)
		assert.Equal(t, day("2011-06-30"), bounds.MaxDate)
		assert.Equal(t, []string{Spring, Summer, Winter}, bounds.Seasons)
		assert.Equal(t, 4, bounds.Records)
		assert.Equal(t, bounds.Seasons, ds.Seasons())
	})

	t.Run("empty dataset", func(t *testing.T) {
		bounds := (&Dataset{}).Bounds()
		assert.True(t, bounds.MinDate.IsZero())
		assert.True(t, bounds.MaxDate.IsZero())
		assert.Empty(t, bounds.Seasons)
		assert.Zero(t, bounds.Records)
	})
}

func TestFilterCriteriaHasSeason(t *testing.T) {
	c := FilterCriteria{Seasons: []string{Spring, Winter}}
	assert.True(t, c.HasSeason(Spring))
	assert.False(t, c.HasSeason(Summer))
	assert.False(t, FilterCriteria{}.HasSeason(Spring))
}

func TestTypedErrors(t *testing.T) {
	t.Run("schema error", func(t *testing.T) {
		err := fmt.Errorf("load failed: %w", &SchemaError{Column: ColCntDay, Source: "day.csv"})
		var schemaErr *SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, ColCntDay, schemaErr.Column)
		assert.Contains(t, err.Error(), `missing required column "cnt_day" in day.csv`)
	})

	t.Run("invalid range error", func(t *testing.T) {
		err := &InvalidRangeError{From: day("2012-02-01"), To: day("2012-01-01")}
		assert.Equal(t, "invalid date range: from 2012-02-01 is after to 2012-01-01", err.Error())
	})

	t.Run("record error", func(t *testing.T) {
		err := &RecordError{Row: 3, Column: ColHour, Value: "24", Reason: "hour must be within [0,23]"}
		assert.Equal(t, `row 3: invalid hr value "24": hour must be within [0,23]`, err.Error())
	})
}

func TestNewRunMetrics(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	m := NewRunMetrics(Summary{TotalRentals: 30, MeanHourlyRentals: 15, MeanTemperature: 0.25, DistinctDays: 2, Records: 2}, at)
	assert.Equal(t, RunMetrics{RecordTime: at, TotalRentals: 30, MeanHourlyRentals: 15, MeanTemperature: 0.25, DistinctDays: 2}, m)
}
