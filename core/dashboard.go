package core

import (
	"slices"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
)

// ResolveCriteria builds the FilterCriteria for one interaction. Unset date bounds
// fall back to the dataset bounds and an unset season selection means every season present.
// An empty dataset has no bounds, so a lone explicit bound is used for both ends.
func ResolveCriteria(cfg *contract.Config, bounds schema.DatasetBounds) schema.FilterCriteria {
	criteria := schema.FilterCriteria{
		DateFrom: bounds.MinDate,
		DateTo:   bounds.MaxDate,
		Seasons:  slices.Clone(bounds.Seasons),
	}
	if !cfg.DateFrom.IsZero() {
		criteria.DateFrom = cfg.DateFrom
	}
	if !cfg.DateTo.IsZero() {
		criteria.DateTo = cfg.DateTo
	}
	if bounds.Records == 0 {
		// No data bounds to fall back on: a single explicit bound stands in for the other
		if criteria.DateFrom.IsZero() {
			criteria.DateFrom = criteria.DateTo
		}
		if criteria.DateTo.IsZero() {
			criteria.DateTo = criteria.DateFrom
		}
	}
	if cfg.SeasonsSet {
		criteria.Seasons = slices.Clone(cfg.Seasons)
	}
	if criteria.Seasons == nil {
		criteria.Seasons = []string{}
	}
	return criteria
}

// BuildDashboard computes every metric and aggregate of the view.
func BuildDashboard(view schema.FilteredView) schema.DashboardResult {
	return schema.DashboardResult{
		Criteria:         view.Criteria,
		Summary:          Summarize(view),
		Hourly:           HourlyByWorkingDay(view),
		SeasonMeans:      SeasonDayMeans(view),
		WeatherHourMeans: WeatherHourMeans(view),
		WeatherDayMeans:  WeatherDayMeans(view),
		Distribution:     SeasonDayDistribution(view),
		Clusters:         ScatterByCluster(view),
	}
}
