package core

import (
	"github.com/huangsam/bikedash/core/algo"
	"github.com/huangsam/bikedash/schema"
)

// temperaturePlaces is the number of decimals kept for the mean temperature.
const temperaturePlaces = 2

// Summarize computes the scalar metrics of a view. Every metric is defined on an
// empty view (all zero, Records == 0).
func Summarize(view schema.FilteredView) schema.Summary {
	n := view.Len()
	if n == 0 {
		return schema.Summary{}
	}

	counts := make([]int, 0, n)
	temps := make([]float64, 0, n)
	days := make(map[int64]struct{})
	for _, r := range view.Records {
		counts = append(counts, r.CntHour)
		temps = append(temps, r.TempHour)
		days[truncateDay(r.Date).Unix()] = struct{}{}
	}

	return schema.Summary{
		TotalRentals:      algo.SumInts(counts),
		MeanHourlyRentals: algo.RoundHalfEven(algo.MeanInts(counts)),
		MeanTemperature:   algo.RoundTo(algo.Mean(temps), temperaturePlaces),
		DistinctDays:      len(days),
		Records:           n,
	}
}
