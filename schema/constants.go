package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string

	// ChartFormat represents the image format used when rendering charts.
	ChartFormat string

	// Column names a field of the rental dataset.
	Column string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All chart formats supported.
const (
	PNGChart ChartFormat = "png" // default
	SVGChart ChartFormat = "svg"
)

// Dataset columns as they appear in the source file header.
const (
	ColDate          Column = "dteday"
	ColHour          Column = "hr"
	ColSeasonHour    Column = "season_hour"
	ColSeasonDay     Column = "season_day"
	ColWorkingDay    Column = "workingday_hour"
	ColWeatherHour   Column = "weathersit_hour"
	ColWeatherDay    Column = "weathersit_day"
	ColTempHour      Column = "temp_hour"
	ColCntHour       Column = "cnt_hour"
	ColCntDay        Column = "cnt_day"
	ColDemandCluster Column = "demand_cluster"
)

// RequiredColumns lists every column the loader needs, in file order.
var RequiredColumns = []Column{
	ColDate, ColHour, ColSeasonHour, ColSeasonDay, ColWorkingDay,
	ColWeatherHour, ColWeatherDay, ColTempHour, ColCntHour, ColCntDay, ColDemandCluster,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidChartFormats lists all valid chart formats.
var ValidChartFormats = map[ChartFormat]struct{}{
	PNGChart: {},
	SVGChart: {},
}
