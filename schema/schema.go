// Package schema has models, category tables and typed errors for all parts of bikedash.
package schema

import (
	"slices"
	"time"
)

// RentalRecord is one hour-bucket observation of bike rentals.
// Derived columns such as SeasonHour or DemandCluster are precomputed upstream and read as-is.
type RentalRecord struct {
	Date           time.Time `json:"date"`            // Calendar date (dteday), midnight UTC
	Hour           int       `json:"hour"`            // Hour of day in [0,23] (hr)
	SeasonHour     string    `json:"season_hour"`     // Season label at hourly granularity
	SeasonDay      string    `json:"season_day"`      // Season label at daily granularity
	WorkingDayHour string    `json:"workingday_hour"` // "Working Day" or "Weekend/Holiday"
	WeatherHour    string    `json:"weathersit_hour"` // Weather condition for the hour
	WeatherDay     string    `json:"weathersit_day"`  // Weather condition for the day
	TempHour       float64   `json:"temp_hour"`       // Temperature for the hour
	CntHour        int       `json:"cnt_hour"`        // Rentals within the hour
	CntDay         int       `json:"cnt_day"`         // Rentals within the whole day
	DemandCluster  string    `json:"demand_cluster"`  // One of the three demand cluster labels
}

// FilterCriteria holds the user selection for a single interaction.
// Seasons is treated as a set; an empty set selects nothing.
type FilterCriteria struct {
	DateFrom time.Time `json:"date_from"`
	DateTo   time.Time `json:"date_to"`
	Seasons  []string  `json:"seasons"`
}

// HasSeason reports whether the season label is part of the selection.
func (c FilterCriteria) HasSeason(season string) bool {
	return slices.Contains(c.Seasons, season)
}

// FilteredView is the subset of records matching a FilterCriteria, in input order.
type FilteredView struct {
	Criteria FilterCriteria `json:"criteria"`
	Records  []RentalRecord `json:"-"`
}

// Len returns the number of records in the view.
func (v FilteredView) Len() int {
	return len(v.Records)
}

// Summary holds the scalar metrics shown at the top of the dashboard.
// On an empty view every metric is zero and Records is 0, which callers read as "undefined".
type Summary struct {
	TotalRentals      int     `json:"total_rentals"`
	MeanHourlyRentals int     `json:"mean_hourly_rentals"`
	MeanTemperature   float64 `json:"mean_temperature"`
	DistinctDays      int     `json:"distinct_days"`
	Records           int     `json:"records"`
}

// Dataset is a loaded record set together with the identity of its source.
type Dataset struct {
	Path     string         `json:"path"`
	ModTime  time.Time      `json:"mod_time"`
	Size     int64          `json:"size"`
	Records  []RentalRecord `json:"records"`
	LoadedAt time.Time      `json:"loaded_at"`
}

// DatasetBounds describes the domains of the interactive controls.
type DatasetBounds struct {
	MinDate time.Time `json:"min_date"`
	MaxDate time.Time `json:"max_date"`
	Seasons []string  `json:"seasons"`
	Records int       `json:"records"`
}

// Bounds returns the min/max date and the seasons present, in category order.
func (d *Dataset) Bounds() DatasetBounds {
	bounds := DatasetBounds{Records: len(d.Records)}
	seen := make(map[string]struct{})
	for i, r := range d.Records {
		if i == 0 || r.Date.Before(bounds.MinDate) {
			bounds.MinDate = r.Date
		}
		if i == 0 || r.Date.After(bounds.MaxDate) {
			bounds.MaxDate = r.Date
		}
		if _, ok := seen[r.SeasonHour]; !ok {
			seen[r.SeasonHour] = struct{}{}
			bounds.Seasons = append(bounds.Seasons, r.SeasonHour)
		}
	}
	SortCategories(bounds.Seasons, SeasonOrder)
	return bounds
}

// Seasons returns the distinct season_hour labels present, in category order.
func (d *Dataset) Seasons() []string {
	return d.Bounds().Seasons
}
