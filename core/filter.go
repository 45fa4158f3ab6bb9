package core

import (
	"slices"
	"time"

	"github.com/huangsam/bikedash/schema"
)

// Apply returns the records whose date lies in [DateFrom, DateTo] and whose
// season_hour is selected. Input order is preserved and nothing is copied besides
// the matching records. An empty season selection yields an empty view.
func Apply(records []schema.RentalRecord, criteria schema.FilterCriteria) (schema.FilteredView, error) {
	from := truncateDay(criteria.DateFrom)
	to := truncateDay(criteria.DateTo)
	if from.After(to) {
		return schema.FilteredView{}, &schema.InvalidRangeError{From: from, To: to}
	}

	frozen := schema.FilterCriteria{
		DateFrom: from,
		DateTo:   to,
		Seasons:  slices.Clone(criteria.Seasons),
	}
	if frozen.Seasons == nil {
		frozen.Seasons = []string{}
	}

	selected := make(map[string]struct{}, len(frozen.Seasons))
	for _, s := range frozen.Seasons {
		selected[s] = struct{}{}
	}

	view := schema.FilteredView{Criteria: frozen, Records: []schema.RentalRecord{}}
	if len(selected) == 0 {
		return view, nil
	}

	for _, r := range records {
		d := truncateDay(r.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		if _, ok := selected[r.SeasonHour]; !ok {
			continue
		}
		view.Records = append(view.Records, r)
	}
	return view, nil
}

// truncateDay drops the time of day, keeping the calendar date in UTC.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
