package core

import (
	"fmt"
	"slices"

	"github.com/huangsam/bikedash/core/algo"
	"github.com/huangsam/bikedash/schema"
)

// categoryColumn describes a categorical column that aggregates can group by.
type categoryColumn struct {
	key   func(schema.RentalRecord) string
	order schema.CategoryOrder
}

// categoryColumns lists every column usable as a group key.
var categoryColumns = map[schema.Column]categoryColumn{
	schema.ColSeasonHour:    {func(r schema.RentalRecord) string { return r.SeasonHour }, schema.SeasonOrder},
	schema.ColSeasonDay:     {func(r schema.RentalRecord) string { return r.SeasonDay }, schema.SeasonOrder},
	schema.ColWorkingDay:    {func(r schema.RentalRecord) string { return r.WorkingDayHour }, schema.WorkingDayOrder},
	schema.ColWeatherHour:   {func(r schema.RentalRecord) string { return r.WeatherHour }, schema.WeatherOrder},
	schema.ColWeatherDay:    {func(r schema.RentalRecord) string { return r.WeatherDay }, schema.WeatherOrder},
	schema.ColDemandCluster: {func(r schema.RentalRecord) string { return r.DemandCluster }, schema.DemandOrder},
}

// valueColumns lists every numeric column usable as an aggregated value.
var valueColumns = map[schema.Column]func(schema.RentalRecord) float64{
	schema.ColCntHour:  func(r schema.RentalRecord) float64 { return float64(r.CntHour) },
	schema.ColCntDay:   func(r schema.RentalRecord) float64 { return float64(r.CntDay) },
	schema.ColTempHour: func(r schema.RentalRecord) float64 { return r.TempHour },
}

// partition splits records by category, returning the keys in display order.
// Every record lands in exactly one group.
func partition(records []schema.RentalRecord, col categoryColumn) ([]string, map[string][]schema.RentalRecord) {
	groups := make(map[string][]schema.RentalRecord)
	var keys []string
	for _, r := range records {
		k := col.key(r)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r)
	}
	schema.SortCategories(keys, col.order)
	return keys, groups
}

// lookupColumns resolves the group and value columns of an aggregate.
func lookupColumns(groupBy, value schema.Column) (categoryColumn, func(schema.RentalRecord) float64, error) {
	col, ok := categoryColumns[groupBy]
	if !ok {
		return categoryColumn{}, nil, fmt.Errorf("cannot group by column %q", groupBy)
	}
	valueOf, ok := valueColumns[value]
	if !ok {
		return categoryColumn{}, nil, fmt.Errorf("cannot aggregate column %q", value)
	}
	return col, valueOf, nil
}

// MeanBy averages the value column per category of the groupBy column.
// Only categories present in the view appear, in display order.
func MeanBy(view schema.FilteredView, groupBy, value schema.Column) (schema.CategoryResult, error) {
	col, valueOf, err := lookupColumns(groupBy, value)
	if err != nil {
		return schema.CategoryResult{}, err
	}

	result := schema.CategoryResult{GroupBy: groupBy, Value: value, Groups: []schema.CategoryMean{}}
	keys, groups := partition(view.Records, col)
	for _, k := range keys {
		rows := groups[k]
		values := make([]float64, len(rows))
		for i, r := range rows {
			values[i] = valueOf(r)
		}
		result.Groups = append(result.Groups, schema.CategoryMean{
			Category: k,
			Mean:     algo.Mean(values),
			Count:    len(rows),
		})
	}
	return result, nil
}

// DistributionBy computes the five-number summary of the value column per category.
func DistributionBy(view schema.FilteredView, groupBy, value schema.Column) (schema.DistributionResult, error) {
	col, valueOf, err := lookupColumns(groupBy, value)
	if err != nil {
		return schema.DistributionResult{}, err
	}

	result := schema.DistributionResult{GroupBy: groupBy, Value: value, Groups: []schema.BoxStats{}}
	keys, groups := partition(view.Records, col)
	for _, k := range keys {
		rows := groups[k]
		values := make([]float64, len(rows))
		for i, r := range rows {
			values[i] = valueOf(r)
		}
		minV, q1, median, q3, maxV := algo.FiveNumber(values)
		result.Groups = append(result.Groups, schema.BoxStats{
			Category: k,
			Min:      minV,
			Q1:       q1,
			Median:   median,
			Q3:       q3,
			Max:      maxV,
			Count:    len(rows),
		})
	}
	return result, nil
}

// SeasonDayMeans averages cnt_day per season_day.
func SeasonDayMeans(view schema.FilteredView) schema.CategoryResult {
	result, _ := MeanBy(view, schema.ColSeasonDay, schema.ColCntDay)
	return result
}

// WeatherHourMeans averages cnt_hour per weathersit_hour.
func WeatherHourMeans(view schema.FilteredView) schema.CategoryResult {
	result, _ := MeanBy(view, schema.ColWeatherHour, schema.ColCntHour)
	return result
}

// WeatherDayMeans averages cnt_day per weathersit_day.
func WeatherDayMeans(view schema.FilteredView) schema.CategoryResult {
	result, _ := MeanBy(view, schema.ColWeatherDay, schema.ColCntDay)
	return result
}

// SeasonDayDistribution summarizes cnt_day per season_day for box plots.
func SeasonDayDistribution(view schema.FilteredView) schema.DistributionResult {
	result, _ := DistributionBy(view, schema.ColSeasonDay, schema.ColCntDay)
	return result
}

// HourlyByWorkingDay averages cnt_hour by hour of day, one series per workingday_hour.
// Both fixed series are always present. Loading rejects any other label.
func HourlyByWorkingDay(view schema.FilteredView) schema.HourlyResult {
	_, groups := partition(view.Records, categoryColumns[schema.ColWorkingDay])

	result := schema.HourlyResult{Series: make([]schema.HourlySeries, 0, len(schema.WorkingDayLabels))}
	for _, k := range schema.WorkingDayLabels {
		rows := groups[k]
		byHour := make(map[int][]int)
		for _, r := range rows {
			byHour[r.Hour] = append(byHour[r.Hour], r.CntHour)
		}
		hours := make([]int, 0, len(byHour))
		for h := range byHour {
			hours = append(hours, h)
		}
		slices.Sort(hours)

		series := schema.HourlySeries{WorkingDay: k, Points: make([]schema.HourlyPoint, 0, len(hours)), Count: len(rows)}
		for _, h := range hours {
			series.Points = append(series.Points, schema.HourlyPoint{
				Hour:    h,
				MeanCnt: algo.MeanInts(byHour[h]),
				Count:   len(byHour[h]),
			})
		}
		result.Series = append(result.Series, series)
	}
	return result
}

// ScatterByCluster groups the raw (temp_hour, cnt_hour) points by demand_cluster.
// The three fixed clusters are always present, possibly with zero points.
func ScatterByCluster(view schema.FilteredView) schema.ScatterResult {
	_, groups := partition(view.Records, categoryColumns[schema.ColDemandCluster])

	result := schema.ScatterResult{Groups: make([]schema.ScatterGroup, 0, len(schema.DemandLabels))}
	for _, k := range schema.DemandLabels {
		rows := groups[k]
		group := schema.ScatterGroup{Cluster: k, Points: make([]schema.ScatterPoint, 0, len(rows)), Count: len(rows)}
		for _, r := range rows {
			group.Points = append(group.Points, schema.ScatterPoint{Temp: r.TempHour, CntHour: r.CntHour})
		}
		result.Groups = append(result.Groups, group)
	}
	return result
}
