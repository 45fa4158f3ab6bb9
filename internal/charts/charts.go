// Package charts renders the dashboard views as PNG or SVG images.
package charts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/huangsam/bikedash/schema"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette for the series that carry a fixed meaning.
var (
	WorkingDayColor = drawing.ColorFromHex("1f77b4") // blue
	WeekendColor    = drawing.ColorFromHex("ff7f0e") // orange
	LowColor        = drawing.ColorFromHex("d62728") // red
	MediumColor     = drawing.ColorFromHex("ff7f0e") // orange
	HighColor       = drawing.ColorFromHex("2ca02c") // green
	neutralColor    = drawing.ColorFromHex("7f7f7f")
)

// seriesColor maps a day type or demand cluster label to its palette color.
func seriesColor(label string, index int) drawing.Color {
	switch label {
	case schema.WorkingDay:
		return WorkingDayColor
	case schema.WeekendHoliday:
		return WeekendColor
	case schema.LowDemand:
		return LowColor
	case schema.MediumDemand:
		return MediumColor
	case schema.HighDemand:
		return HighColor
	default:
		return chart.GetDefaultColor(index)
	}
}

// Options controls the size and encoding of rendered charts.
type Options struct {
	Format schema.ChartFormat
	Width  int
	Height int
}

func (o Options) provider() chart.RendererProvider {
	if o.Format == schema.SVGChart {
		return chart.SVG
	}
	return chart.PNG
}

func (o Options) ext() string {
	if o.Format == schema.SVGChart {
		return ".svg"
	}
	return ".png"
}

// renderable is satisfied by chart.Chart and chart.BarChart.
type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// view is one chart of the dashboard.
type view struct {
	name  string
	build func(Options) renderable
}

// RenderDashboard writes one image per dashboard view into dir and returns the file paths
// in display order. The directory is created when missing.
func RenderDashboard(result schema.DashboardResult, dir string, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %s: %w", dir, err)
	}

	views := []view{
		{"hourly", func(o Options) renderable { return HourlyChart(result.Hourly, o) }},
		{"season_means", func(o Options) renderable {
			return MeansChart(result.SeasonMeans, "Mean daily rentals by season", o)
		}},
		{"weather_hour_means", func(o Options) renderable {
			return MeansChart(result.WeatherHourMeans, "Mean hourly rentals by hourly weather", o)
		}},
		{"weather_day_means", func(o Options) renderable {
			return MeansChart(result.WeatherDayMeans, "Mean daily rentals by daily weather", o)
		}},
		{"distribution", func(o Options) renderable { return DistributionChart(result.Distribution, o) }},
		{"clusters", func(o Options) renderable { return ClusterChart(result.Clusters, o) }},
	}

	paths := make([]string, 0, len(views))
	for _, v := range views {
		path := filepath.Join(dir, v.name+opts.ext())
		if err := renderToFile(v.build(opts), path, opts); err != nil {
			return paths, fmt.Errorf("failed to render %s chart: %w", v.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func renderToFile(r renderable, path string, opts Options) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Render(opts.provider(), file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// background pads the plot area like every chart of the dashboard.
func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

// upperBound returns a y-axis maximum with headroom, never zero so the range stays valid.
func upperBound(maxV float64) float64 {
	if maxV <= 0 {
		return 1
	}
	return maxV * 1.1
}

// placeholder keeps an empty chart renderable; go-chart refuses charts without series.
func placeholder(xMin, xMax float64) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    "no data",
		XValues: []float64{xMin, xMax},
		YValues: []float64{0, 0},
		Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
	}
}
