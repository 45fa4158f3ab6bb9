package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/bikedash/schema"
)

// Color variables for console output. Terminals have no orange, so yellow stands in for it.
var (
	WorkingDayColor = color.New(color.FgBlue, color.Bold)
	WeekendColor    = color.New(color.FgYellow, color.Bold)
	LowColor        = color.New(color.FgRed)
	MediumColor     = color.New(color.FgYellow)
	HighColor       = color.New(color.FgGreen)
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	schema.DateFormat,
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate parses a calendar date and truncates it to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// GetColorLabel returns a colored category label for console output (table).
// Labels outside the day-type and demand vocabularies are returned unchanged.
func GetColorLabel(label string) string {
	switch label {
	case schema.WorkingDay:
		return WorkingDayColor.Sprint(label)
	case schema.WeekendHoliday:
		return WeekendColor.Sprint(label)
	case schema.LowDemand:
		return LowColor.Sprint(label)
	case schema.MediumDemand:
		return MediumColor.Sprint(label)
	case schema.HighDemand:
		return HighColor.Sprint(label)
	default:
		return label
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the dataset cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".bikedash_cache.db"
	}
	return filepath.Join(homeDir, ".bikedash_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for interaction history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".bikedash_history.db"
	}
	return filepath.Join(homeDir, ".bikedash_history.db")
}

// TruncateLabel truncates a label to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
