package charts

import (
	"fmt"

	"github.com/huangsam/bikedash/schema"
	chart "github.com/wcharczuk/go-chart/v2"
)

// HourlyChart draws mean hourly rentals against hour of day, one line per day type.
func HourlyChart(result schema.HourlyResult, opts Options) *chart.Chart {
	var series []chart.Series
	maxY := 0.0
	for i, s := range result.Series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j], ys[j] = float64(p.Hour), p.MeanCnt
			maxY = max(maxY, p.MeanCnt)
		}
		color := seriesColor(s.WorkingDay, i)
		series = append(series, chart.ContinuousSeries{
			Name:    s.WorkingDay,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: color, StrokeWidth: 2, DotColor: color, DotWidth: 3},
		})
	}
	if len(series) == 0 {
		series = append(series, placeholder(0, 23))
	}

	ticks := make([]chart.Tick, 0, 13)
	for h := 0; h < 24; h += 2 {
		ticks = append(ticks, chart.Tick{Value: float64(h), Label: fmt.Sprintf("%02d", h)})
	}

	ch := &chart.Chart{
		Title:      "Mean hourly rentals by day type",
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		XAxis:      chart.XAxis{Name: "Hour", Range: &chart.ContinuousRange{Min: 0, Max: 23}, Ticks: ticks},
		YAxis:      chart.YAxis{Name: "Mean cnt_hour", Range: &chart.ContinuousRange{Min: 0, Max: upperBound(maxY)}},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch
}

// MeansChart draws one bar per category in display order.
func MeansChart(result schema.CategoryResult, title string, opts Options) *chart.BarChart {
	bars := make([]chart.Value, 0, len(result.Groups))
	maxY := 0.0
	for i, g := range result.Groups {
		color := chart.GetDefaultColor(i)
		bars = append(bars, chart.Value{
			Label: g.Category,
			Value: g.Mean,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
		maxY = max(maxY, g.Mean)
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Label: "no data", Value: 0, Style: chart.Style{FillColor: neutralColor, StrokeColor: neutralColor}})
	}

	return &chart.BarChart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		BarWidth:   max(opts.Width/(3*len(bars)), 10),
		BarSpacing: max(opts.Width/(6*len(bars)), 4),
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: upperBound(maxY)}},
		Bars:       bars,
	}
}

// DistributionChart draws a box plot per category: a whisker from min to max,
// a wide stroke from Q1 to Q3 for the box, and a short bar at the median.
func DistributionChart(result schema.DistributionResult, opts Options) *chart.Chart {
	n := len(result.Groups)
	boxWidth := 30.0
	if n > 0 {
		boxWidth = max(float64(opts.Width)/float64(4*n), 6)
	}

	var series []chart.Series
	ticks := make([]chart.Tick, 0, n)
	maxY := 0.0
	for i, g := range result.Groups {
		x := float64(i)
		color := chart.GetDefaultColor(i)
		ticks = append(ticks, chart.Tick{Value: x, Label: g.Category})
		maxY = max(maxY, g.Max)

		series = append(series,
			chart.ContinuousSeries{
				XValues: []float64{x, x},
				YValues: []float64{g.Min, g.Max},
				Style:   chart.Style{StrokeColor: color, StrokeWidth: 1.5},
			},
			chart.ContinuousSeries{
				Name:    g.Category,
				XValues: []float64{x, x},
				YValues: []float64{g.Q1, g.Q3},
				Style:   chart.Style{StrokeColor: color.WithAlpha(160), StrokeWidth: boxWidth},
			},
			chart.ContinuousSeries{
				XValues: []float64{x - 0.2, x + 0.2},
				YValues: []float64{g.Median, g.Median},
				Style:   chart.Style{StrokeColor: neutralColor, StrokeWidth: 3},
			},
		)
	}
	if len(series) == 0 {
		series = append(series, placeholder(-0.5, 0.5))
	}

	return &chart.Chart{
		Title:      "Daily rentals distribution by season",
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		XAxis:      chart.XAxis{Name: string(result.GroupBy), Range: &chart.ContinuousRange{Min: -0.5, Max: float64(max(n, 1)) - 0.5}, Ticks: ticks},
		YAxis:      chart.YAxis{Name: string(result.Value), Range: &chart.ContinuousRange{Min: 0, Max: upperBound(maxY)}},
		Series:     series,
	}
}

// ClusterChart draws hourly temperature against hourly rentals, colored by demand cluster.
func ClusterChart(result schema.ScatterResult, opts Options) *chart.Chart {
	var series []chart.Series
	first := true
	var minX, maxX, maxY float64
	for i, g := range result.Groups {
		if len(g.Points) == 0 {
			continue
		}
		xs := make([]float64, len(g.Points))
		ys := make([]float64, len(g.Points))
		for j, p := range g.Points {
			xs[j], ys[j] = p.Temp, float64(p.CntHour)
			if first {
				minX, maxX, first = p.Temp, p.Temp, false
			}
			minX, maxX = min(minX, p.Temp), max(maxX, p.Temp)
			maxY = max(maxY, ys[j])
		}
		color := seriesColor(g.Cluster, i)
		series = append(series, chart.ContinuousSeries{
			Name:    g.Cluster,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeWidth: chart.Disabled, DotColor: color, DotWidth: 3},
		})
	}
	if first {
		minX, maxX = 0, 1
		series = append(series, placeholder(minX, maxX))
	}
	if minX == maxX {
		minX, maxX = minX-1, maxX+1
	}

	ch := &chart.Chart{
		Title:      "Temperature vs hourly rentals by demand cluster",
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		XAxis:      chart.XAxis{Name: "temp_hour (°C)", Range: &chart.ContinuousRange{Min: minX, Max: maxX}},
		YAxis:      chart.YAxis{Name: "cnt_hour", Range: &chart.ContinuousRange{Min: 0, Max: upperBound(maxY)}},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch
}
