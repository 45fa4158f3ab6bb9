package contract

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/bikedash/schema"
)

// Default values for configuration.
const (
	DefaultDataPath    = "main_data.csv"
	DefaultPrecision   = 2
	MaxPrecision       = 4
	DefaultChartDir    = "charts"
	DefaultChartWidth  = 1024
	DefaultChartHeight = 512
	DefaultDebounce    = 500 * time.Millisecond
	NoSeasonsToken     = "none"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a dashboard interaction.
// This struct remains the "final, validated" config.
type Config struct {
	DataPath string

	// Zero dates mean "use the dataset bound".
	DateFrom time.Time
	DateTo   time.Time

	// SeasonsSet is false when no selection was given, which selects every season present.
	Seasons    []string
	SeasonsSet bool

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	ChartDir    string
	ChartFormat schema.ChartFormat
	ChartWidth  int
	ChartHeight int

	WatchDebounce time.Duration

	UseColors bool // Enable colored labels in table output
	Verbose   bool // Enable debug logging
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Data             string `mapstructure:"data"`
	From             string `mapstructure:"from"`
	To               string `mapstructure:"to"`
	Seasons          string `mapstructure:"seasons"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Verbose          bool   `mapstructure:"verbose"`

	// --- Fields from renderCmd.Flags() ---
	ChartDir    string `mapstructure:"chart-dir"`
	ChartFormat string `mapstructure:"chart-format"`
	ChartWidth  int    `mapstructure:"chart-width"`
	ChartHeight int    `mapstructure:"chart-height"`

	// --- Fields from watchCmd.Flags() ---
	Debounce string `mapstructure:"debounce"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Seasons != nil {
		clone.Seasons = slices.Clone(c.Seasons)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDateRange(cfg, input); err != nil {
		return err
	}
	if err := processSeasons(cfg, input); err != nil {
		return err
	}
	if err := processRenderOptions(cfg, input); err != nil {
		return err
	}
	if err := processWatchOptions(cfg, input); err != nil {
		return err
	}
	resolveDataPath(cfg, input)
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// SQLite cache and history must live in different files
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if cacheDBPath == historyDBPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose

	cfg.UseColors = true
	if input.Color != "" {
		colors, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("invalid --color value: %w", err)
		}
		cfg.UseColors = colors
	}

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	return validateBackendConfigs(cfg, input)
}

// processDateRange parses the optional --from and --to bounds.
func processDateRange(cfg *Config, input *ConfigRawInput) error {
	cfg.DateFrom = time.Time{}
	cfg.DateTo = time.Time{}

	if s := strings.TrimSpace(input.From); s != "" {
		t, err := ParseDate(s)
		if err != nil {
			return fmt.Errorf("invalid --from date '%s'. Expected YYYY-MM-DD: %w", s, err)
		}
		cfg.DateFrom = t
	}
	if s := strings.TrimSpace(input.To); s != "" {
		t, err := ParseDate(s)
		if err != nil {
			return fmt.Errorf("invalid --to date '%s'. Expected YYYY-MM-DD: %w", s, err)
		}
		cfg.DateTo = t
	}

	if !cfg.DateFrom.IsZero() && !cfg.DateTo.IsZero() && cfg.DateFrom.After(cfg.DateTo) {
		return &schema.InvalidRangeError{From: cfg.DateFrom, To: cfg.DateTo}
	}
	return nil
}

// processSeasons parses the --seasons selection.
func processSeasons(cfg *Config, input *ConfigRawInput) error {
	seasons, set := ParseSeasons(input.Seasons)
	cfg.Seasons = seasons
	cfg.SeasonsSet = set
	return nil
}

// ParseSeasons parses a comma-separated season list. An empty string means no
// selection was made (every season), while "none" is an explicit empty selection.
// Known labels are matched case-insensitively and returned in canonical spelling.
func ParseSeasons(s string) ([]string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	seasons := []string{}
	if strings.EqualFold(s, NoSeasonsToken) {
		return seasons, true
	}
	for part := range strings.SplitSeq(s, ",") {
		part = canonicalSeason(strings.TrimSpace(part))
		if part == "" || slices.Contains(seasons, part) {
			continue
		}
		seasons = append(seasons, part)
	}
	return seasons, true
}

// canonicalSeason maps a user-typed season to its table spelling when known.
func canonicalSeason(s string) string {
	for label := range schema.SeasonOrder {
		if strings.EqualFold(label, s) {
			return label
		}
	}
	return s
}

// processRenderOptions validates chart output settings.
func processRenderOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.ChartDir = strings.TrimSpace(input.ChartDir)
	if cfg.ChartDir == "" {
		cfg.ChartDir = DefaultChartDir
	}

	format := strings.ToLower(strings.TrimSpace(input.ChartFormat))
	if format == "" {
		format = string(schema.PNGChart)
	}
	cfg.ChartFormat = schema.ChartFormat(format)
	if _, ok := schema.ValidChartFormats[cfg.ChartFormat]; !ok {
		return fmt.Errorf("invalid chart format '%s'. must be png, svg", input.ChartFormat)
	}

	cfg.ChartWidth = input.ChartWidth
	if cfg.ChartWidth == 0 {
		cfg.ChartWidth = DefaultChartWidth
	}
	cfg.ChartHeight = input.ChartHeight
	if cfg.ChartHeight == 0 {
		cfg.ChartHeight = DefaultChartHeight
	}
	if cfg.ChartWidth < 0 || cfg.ChartHeight < 0 {
		return fmt.Errorf("chart dimensions must be positive (received %dx%d)", cfg.ChartWidth, cfg.ChartHeight)
	}
	return nil
}

// processWatchOptions validates the watcher debounce interval.
func processWatchOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.WatchDebounce = DefaultDebounce
	if s := strings.TrimSpace(input.Debounce); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid --debounce value '%s': %w", s, err)
		}
		if d <= 0 {
			return fmt.Errorf("debounce must be greater than 0 (received %s)", d)
		}
		cfg.WatchDebounce = d
	}
	return nil
}

// resolveDataPath picks the dataset path: positional argument, then --data, then the default.
func resolveDataPath(cfg *Config, input *ConfigRawInput) {
	switch {
	case strings.TrimSpace(input.DataPathStr) != "":
		cfg.DataPath = strings.TrimSpace(input.DataPathStr)
	case strings.TrimSpace(input.Data) != "":
		cfg.DataPath = strings.TrimSpace(input.Data)
	default:
		cfg.DataPath = DefaultDataPath
	}
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// RevalidateSelection applies per-request overrides of the date range and season
// selection on top of an already validated config. Empty values keep the current setting.
func RevalidateSelection(cfg *Config, from, to, seasons string) error {
	input := &ConfigRawInput{From: from, To: to, Seasons: seasons}
	keepFrom, keepTo := cfg.DateFrom, cfg.DateTo
	if err := processDateRange(cfg, input); err != nil {
		return err
	}
	if strings.TrimSpace(from) == "" {
		cfg.DateFrom = keepFrom
	}
	if strings.TrimSpace(to) == "" {
		cfg.DateTo = keepTo
	}
	if !cfg.DateFrom.IsZero() && !cfg.DateTo.IsZero() && cfg.DateFrom.After(cfg.DateTo) {
		return &schema.InvalidRangeError{From: cfg.DateFrom, To: cfg.DateTo}
	}
	if strings.TrimSpace(seasons) != "" {
		return processSeasons(cfg, input)
	}
	return nil
}
