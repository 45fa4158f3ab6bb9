package core

import (
	"fmt"
	"testing"

	"github.com/huangsam/bikedash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	records := twoRecords()

	t.Run("single day single season", func(t *testing.T) {
		view, err := Apply(records, schema.FilterCriteria{
			DateFrom: day(2023, 1, 1),
			DateTo:   day(2023, 1, 1),
			Seasons:  []string{schema.Spring},
		})
		require.NoError(t, err)
		require.Equal(t, 1, view.Len())
		assert.Equal(t, records[0], view.Records[0])

		summary := Summarize(view)
		assert.Equal(t, 10, summary.TotalRentals)
		assert.Equal(t, 1, summary.DistinctDays)
	})

	t.Run("both seasons", func(t *testing.T) {
		view, err := Apply(records, schema.FilterCriteria{
			DateFrom: day(2023, 1, 1),
			DateTo:   day(2023, 1, 2),
			Seasons:  []string{schema.Spring, schema.Winter},
		})
		require.NoError(t, err)
		summary := Summarize(view)
		assert.Equal(t, 30, summary.TotalRentals)
		assert.Equal(t, 15, summary.MeanHourlyRentals)
		assert.Equal(t, 2, summary.DistinctDays)
	})

	t.Run("empty season selection", func(t *testing.T) {
		view, err := Apply(records, schema.FilterCriteria{
			DateFrom: day(2023, 1, 1),
			DateTo:   day(2023, 1, 2),
			Seasons:  []string{},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, view.Len())
		assert.NotNil(t, view.Records)
		assert.Equal(t, schema.Summary{}, Summarize(view))
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := Apply(records, schema.FilterCriteria{
			DateFrom: day(2023, 1, 2),
			DateTo:   day(2023, 1, 1),
			Seasons:  []string{schema.Spring},
		})
		var rangeErr *schema.InvalidRangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, day(2023, 1, 2), rangeErr.From)
	})

	t.Run("range outside data", func(t *testing.T) {
		view, err := Apply(records, schema.FilterCriteria{
			DateFrom: day(2024, 1, 1),
			DateTo:   day(2024, 12, 31),
			Seasons:  []string{schema.Spring, schema.Winter},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, view.Len())
	})

	t.Run("criteria are copied", func(t *testing.T) {
		seasons := []string{schema.Spring}
		view, err := Apply(records, schema.FilterCriteria{DateFrom: day(2023, 1, 1), DateTo: day(2023, 1, 2), Seasons: seasons})
		require.NoError(t, err)
		seasons[0] = schema.Winter
		assert.Equal(t, []string{schema.Spring}, view.Criteria.Seasons)
	})
}

func TestApplyProperties(t *testing.T) {
	var records []schema.RentalRecord
	seasons := []string{schema.Spring, schema.Summer, schema.Fall, schema.Winter}
	for i := range 60 {
		r := rec(day(2023, 1, 1).AddDate(0, 0, i/3), i%24, seasons[i%4], i)
		r.WorkingDayHour = schema.WorkingDayLabels[i%2]
		r.DemandCluster = schema.DemandLabels[i%3]
		records = append(records, r)
	}
	all := schema.FilterCriteria{DateFrom: day(2023, 1, 1), DateTo: day(2023, 12, 31), Seasons: seasons}

	full, err := Apply(records, all)
	require.NoError(t, err)
	assert.Equal(t, records, full.Records, "full selection keeps every record in order")

	narrow := schema.FilterCriteria{DateFrom: day(2023, 1, 5), DateTo: day(2023, 1, 12), Seasons: []string{schema.Summer, schema.Winter}}
	sub, err := Apply(records, narrow)
	require.NoError(t, err)
	assert.LessOrEqual(t, sub.Len(), full.Len())
	for _, r := range sub.Records {
		assert.False(t, r.Date.Before(narrow.DateFrom))
		assert.False(t, r.Date.After(narrow.DateTo))
		assert.True(t, narrow.HasSeason(r.SeasonHour))
	}

	t.Run("idempotent", func(t *testing.T) {
		first, err := Apply(records, narrow)
		require.NoError(t, err)
		second, err := Apply(records, narrow)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		again, err := Apply(sub.Records, narrow)
		require.NoError(t, err)
		assert.Equal(t, sub.Records, again.Records)
	})

	t.Run("totals add up across seasons", func(t *testing.T) {
		var sum int
		for _, season := range seasons {
			one := all
			one.Seasons = []string{season}
			view, err := Apply(records, one)
			require.NoError(t, err)
			sum += Summarize(view).TotalRentals
		}
		assert.Equal(t, Summarize(full).TotalRentals, sum)
	})

	for _, view := range []schema.FilteredView{full, sub} {
		t.Run(fmt.Sprintf("groups partition %d records", view.Len()), func(t *testing.T) {
			dist, err := DistributionBy(view, schema.ColSeasonDay, schema.ColCntDay)
			require.NoError(t, err)
			var n int
			for _, g := range dist.Groups {
				n += g.Count
			}
			assert.Equal(t, view.Len(), n, "distribution")

			n = 0
			for _, s := range HourlyByWorkingDay(view).Series {
				n += s.Count
				var points int
				for _, p := range s.Points {
					points += p.Count
				}
				assert.Equal(t, s.Count, points, "hourly points of %s", s.WorkingDay)
			}
			assert.Equal(t, view.Len(), n, "hourly")

			n = 0
			for _, g := range ScatterByCluster(view).Groups {
				n += g.Count
				assert.Len(t, g.Points, g.Count)
			}
			assert.Equal(t, view.Len(), n, "clusters")
		})
	}
}

func TestResolveCriteria(t *testing.T) {
	bounds := schema.DatasetBounds{
		MinDate: day(2011, 1, 1),
		MaxDate: day(2012, 12, 31),
		Seasons: []string{schema.Spring, schema.Winter},
	}

	tests := []struct {
		name     string
		cfg      contractConfig
		expected schema.FilterCriteria
	}{
		{
			name:     "defaults to bounds",
			cfg:      contractConfig{},
			expected: schema.FilterCriteria{DateFrom: bounds.MinDate, DateTo: bounds.MaxDate, Seasons: []string{schema.Spring, schema.Winter}},
		},
		{
			name: "explicit values",
			cfg:  contractConfig{from: day(2011, 6, 1), to: day(2011, 7, 1), seasons: []string{schema.Summer}, seasonsSet: true},
			expected: schema.FilterCriteria{
				DateFrom: day(2011, 6, 1), DateTo: day(2011, 7, 1), Seasons: []string{schema.Summer},
			},
		},
		{
			name:     "explicit empty selection",
			cfg:      contractConfig{seasonsSet: true},
			expected: schema.FilterCriteria{DateFrom: bounds.MinDate, DateTo: bounds.MaxDate, Seasons: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveCriteria(tt.cfg.build(), bounds))
		})
	}

	t.Run("empty dataset with one bound", func(t *testing.T) {
		empty := schema.DatasetBounds{}
		for _, cfg := range []contractConfig{{from: day(2011, 3, 1)}, {to: day(2011, 3, 1)}} {
			criteria := ResolveCriteria(cfg.build(), empty)
			assert.Equal(t, day(2011, 3, 1), criteria.DateFrom)
			assert.Equal(t, day(2011, 3, 1), criteria.DateTo)

			view, err := Apply(nil, criteria)
			require.NoError(t, err)
			assert.Equal(t, 0, view.Len())
		}
	})
}
