package schema

// HourlyPoint is the mean hourly rental count for one hour of the day.
type HourlyPoint struct {
	Hour    int     `json:"hour"`
	MeanCnt float64 `json:"mean_cnt_hour"`
	Count   int     `json:"count"`
}

// HourlySeries is the hour-of-day profile for one workingday_hour value.
// Hours without rows are omitted.
type HourlySeries struct {
	WorkingDay string        `json:"workingday_hour"`
	Points     []HourlyPoint `json:"points"`
	Count      int           `json:"count"`
}

// HourlyResult holds both hour-of-day series in display order.
type HourlyResult struct {
	Series []HourlySeries `json:"series"`
}

// CategoryMean is the mean of a value column for one category.
type CategoryMean struct {
	Category string  `json:"category"`
	Mean     float64 `json:"mean"`
	Count    int     `json:"count"`
}

// CategoryResult is a grouped mean, e.g. cnt_day by season_day.
type CategoryResult struct {
	GroupBy Column         `json:"group_by"`
	Value   Column         `json:"value"`
	Groups  []CategoryMean `json:"groups"`
}

// BoxStats holds the five-number summary of a value column for one category.
type BoxStats struct {
	Category string  `json:"category"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
	Count    int     `json:"count"`
}

// DistributionResult is a grouped five-number summary for box plots.
type DistributionResult struct {
	GroupBy Column     `json:"group_by"`
	Value   Column     `json:"value"`
	Groups  []BoxStats `json:"groups"`
}

// ScatterPoint pairs the hourly temperature with the hourly count.
type ScatterPoint struct {
	Temp    float64 `json:"temp_hour"`
	CntHour int     `json:"cnt_hour"`
}

// ScatterGroup holds the raw points for one demand cluster.
type ScatterGroup struct {
	Cluster string         `json:"demand_cluster"`
	Points  []ScatterPoint `json:"points"`
	Count   int            `json:"count"`
}

// ScatterResult holds every demand cluster group, always in display order.
type ScatterResult struct {
	Groups []ScatterGroup `json:"groups"`
}

// DashboardResult bundles everything a single interaction renders.
type DashboardResult struct {
	Criteria         FilterCriteria     `json:"criteria"`
	Summary          Summary            `json:"summary"`
	Hourly           HourlyResult       `json:"hourly"`
	SeasonMeans      CategoryResult     `json:"season_means"`
	WeatherHourMeans CategoryResult     `json:"weather_hour_means"`
	WeatherDayMeans  CategoryResult     `json:"weather_day_means"`
	Distribution     DistributionResult `json:"distribution"`
	Clusters         ScatterResult      `json:"clusters"`
}
