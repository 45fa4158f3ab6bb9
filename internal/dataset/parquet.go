package dataset

import (
	"strconv"

	"github.com/huangsam/bikedash/internal/parquet"
	"github.com/huangsam/bikedash/schema"
)

// readParquet reads a Parquet dataset into the same text table the CSV path produces.
func readParquet(path string) (rawTable, error) {
	rows, err := parquet.ReadRentalRows(path)
	if err != nil {
		return rawTable{}, err
	}

	n := len(rows)
	table := rawTable{rows: n, cols: make(map[schema.Column][]string, len(schema.RequiredColumns))}
	for _, col := range schema.RequiredColumns {
		table.cols[col] = make([]string, n)
	}
	for i, r := range rows {
		table.cols[schema.ColDate][i] = r.Dteday
		table.cols[schema.ColHour][i] = strconv.FormatInt(r.Hr, 10)
		table.cols[schema.ColSeasonHour][i] = r.SeasonHour
		table.cols[schema.ColSeasonDay][i] = r.SeasonDay
		table.cols[schema.ColWorkingDay][i] = r.WorkingDayHour
		table.cols[schema.ColWeatherHour][i] = r.WeatherHour
		table.cols[schema.ColWeatherDay][i] = r.WeatherDay
		table.cols[schema.ColTempHour][i] = strconv.FormatFloat(r.TempHour, 'g', -1, 64)
		table.cols[schema.ColCntHour][i] = strconv.FormatInt(r.CntHour, 10)
		table.cols[schema.ColCntDay][i] = strconv.FormatInt(r.CntDay, 10)
		table.cols[schema.ColDemandCluster][i] = r.DemandCluster
	}
	return table, nil
}

// WriteParquet converts a loaded dataset into a Parquet file readable by Load.
func WriteParquet(ds *schema.Dataset, outputPath string) error {
	return parquet.WriteRentalRowsParquet(parquet.ConvertRentalRecords(ds.Records), outputPath)
}
