package schema

import (
	"fmt"
	"time"
)

// DateFormat is the calendar date layout used for display and for dteday values.
const DateFormat = "2006-01-02"

// SchemaError reports a required column missing from the loaded data.
type SchemaError struct {
	Column Column
	Source string
}

func (e *SchemaError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("missing required column %q", e.Column)
	}
	return fmt.Sprintf("missing required column %q in %s", e.Column, e.Source)
}

// InvalidRangeError reports a date range whose start falls after its end.
type InvalidRangeError struct {
	From time.Time
	To   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: from %s is after to %s", e.From.Format(DateFormat), e.To.Format(DateFormat))
}

// RecordError reports a data row that violates the record invariants.
// Row is 1-based and counts data rows only (the header is not a row).
type RecordError struct {
	Row    int
	Column Column
	Value  string
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("row %d: invalid %s value %q: %s", e.Row, e.Column, e.Value, e.Reason)
}
