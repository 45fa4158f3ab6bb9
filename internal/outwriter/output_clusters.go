package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
)

// PrintClusters outputs the demand cluster scatter groups, dispatching based on the output format configured.
// Text mode summarizes each cluster; CSV and JSON carry every point.
func PrintClusters(result schema.ScatterResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteClusters(w, result, cfg, duration)
	}, "Wrote demand clusters")
}

// WriteClusters writes the demand cluster scatter groups to w in the configured output format.
func WriteClusters(w io.Writer, result schema.ScatterResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtCount := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		header := []string{"demand_cluster", "temp_hour", "cnt_hour"}
		if err := writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			return writeClusterCSVRows(cw, result, fmtFloat)
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := writeClusterTable(w, result, cfg, fmtFloat, fmtCount); err != nil {
			return fmt.Errorf("error writing cluster table output: %w", err)
		}
		records := 0
		for _, g := range result.Groups {
			records += g.Count
		}
		writeFooter(w, "Demand clusters", records, duration)
	}
	return nil
}

func writeClusterCSVRows(cw *csv.Writer, result schema.ScatterResult, fmtFloat func(float64) string) error {
	for _, g := range result.Groups {
		for _, p := range g.Points {
			if err := cw.Write([]string{g.Cluster, fmtFloat(p.Temp), strconv.Itoa(p.CntHour)}); err != nil {
				return err
			}
		}
	}
	return nil
}

// clusterRange holds the extent of one scatter group.
type clusterRange struct {
	minTemp, maxTemp float64
	minCnt, maxCnt   int
	sumCnt           int
}

func rangeOf(points []schema.ScatterPoint) clusterRange {
	var r clusterRange
	for i, p := range points {
		if i == 0 {
			r = clusterRange{minTemp: p.Temp, maxTemp: p.Temp, minCnt: p.CntHour, maxCnt: p.CntHour}
		} else {
			r.minTemp = min(r.minTemp, p.Temp)
			r.maxTemp = max(r.maxTemp, p.Temp)
			r.minCnt = min(r.minCnt, p.CntHour)
			r.maxCnt = max(r.maxCnt, p.CntHour)
		}
		r.sumCnt += p.CntHour
	}
	return r
}

func clusterRows(result schema.ScatterResult, cfg *contract.Config, fmtFloat func(float64) string, fmtCount func(int) string) [][]string {
	rows := make([][]string, 0, len(result.Groups))
	for _, g := range result.Groups {
		label := colorLabel(g.Cluster, cfg)
		if len(g.Points) == 0 {
			rows = append(rows, []string{label, "0", notAvailable, notAvailable, notAvailable})
			continue
		}
		r := rangeOf(g.Points)
		rows = append(rows, []string{
			label,
			fmtCount(len(g.Points)),
			fmt.Sprintf("%s to %s", formatTemp(fmtFloat, r.minTemp), formatTemp(fmtFloat, r.maxTemp)),
			fmt.Sprintf("%s to %s", fmtCount(r.minCnt), fmtCount(r.maxCnt)),
			fmtFloat(float64(r.sumCnt) / float64(len(g.Points))),
		})
	}
	return rows
}

func writeClusterTable(w io.Writer, result schema.ScatterResult, cfg *contract.Config, fmtFloat func(float64) string, fmtCount func(int) string) error {
	table := newTable(w, "Cluster", "Points", "Temperature", "Hourly Rentals", "Mean Rentals")
	return renderTable(table, clusterRows(result, cfg, fmtFloat, fmtCount))
}
