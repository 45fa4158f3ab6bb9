package schema

import (
	"cmp"
	"slices"
)

// Working day labels.
const (
	WorkingDay     = "Working Day"
	WeekendHoliday = "Weekend/Holiday"
)

// Demand cluster labels.
const (
	LowDemand    = "Low Demand"
	MediumDemand = "Medium Demand"
	HighDemand   = "High Demand"
)

// Season labels.
const (
	Spring = "Spring"
	Summer = "Summer"
	Fall   = "Fall"
	Winter = "Winter"
)

// CategoryOrder maps a category label to its display rank.
// Labels that share a rank are spelling variants of the same category.
type CategoryOrder map[string]int

// SeasonOrder is the display order for season_hour and season_day.
var SeasonOrder = CategoryOrder{
	Spring:   0,
	Summer:   1,
	Fall:     2,
	"Autumn": 2,
	Winter:   3,
}

// WeatherOrder is the display order for weathersit_hour and weathersit_day, from mildest to most severe.
var WeatherOrder = CategoryOrder{
	"Clear":               0,
	"Clear/Partly Cloudy": 0,
	"Mist":                1,
	"Misty":               1,
	"Mist/Cloudy":         1,
	"Mist + Cloudy":       1,
	"Cloudy":              1,
	"Light Rain":          2,
	"Light Snow":          2,
	"Light Snow/Rain":     2,
	"Light Rain/Snow":     2,
	"Heavy Rain":          3,
	"Heavy Rain/Ice":      3,
	"Heavy Snow/Rain":     3,
	"Severe Weather":      3,
}

// WorkingDayOrder is the display order for workingday_hour.
var WorkingDayOrder = CategoryOrder{
	WorkingDay:     0,
	WeekendHoliday: 1,
}

// DemandOrder is the display order for demand_cluster.
var DemandOrder = CategoryOrder{
	LowDemand:    0,
	MediumDemand: 1,
	HighDemand:   2,
}

// WorkingDayLabels lists the fixed workingday_hour vocabulary in display order.
var WorkingDayLabels = []string{WorkingDay, WeekendHoliday}

// DemandLabels lists the fixed demand_cluster vocabulary in display order.
var DemandLabels = []string{LowDemand, MediumDemand, HighDemand}

// Known reports whether the label is part of the table.
func (o CategoryOrder) Known(label string) bool {
	_, ok := o[label]
	return ok
}

// Compare orders two labels by rank. Unknown labels sort after every known label,
// and ties (aliases or two unknown labels) fall back to lexicographic order.
func (o CategoryOrder) Compare(a, b string) int {
	ra, okA := o[a]
	rb, okB := o[b]
	switch {
	case okA && !okB:
		return -1
	case !okA && okB:
		return 1
	case okA && okB && ra != rb:
		return cmp.Compare(ra, rb)
	}
	return cmp.Compare(a, b)
}

// SortCategories sorts labels in place using the given order.
func SortCategories(labels []string, order CategoryOrder) {
	slices.SortFunc(labels, order.Compare)
}
