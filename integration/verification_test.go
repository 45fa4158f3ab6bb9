//go:build integration

// Package integration contains integration tests for bikedash.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBikedash compiles the CLI into a per-test temp dir.
func buildBikedash(t *testing.T) string {
	t.Helper()
	bikedashPath := filepath.Join(t.TempDir(), "bikedash")
	buildCmd := exec.Command("go", "build", "-o", bikedashPath, ".")
	buildCmd.Dir = ".." // Project root
	require.NoError(t, buildCmd.Run())
	return bikedashPath
}

// runJSON runs the binary against the fixture with JSON output and decodes stdout into v.
func runJSON(t *testing.T, bikedashPath string, v any, args ...string) {
	t.Helper()
	cmd := exec.Command(bikedashPath, append(args, "--output", "json", "--cache-backend", "none", "--history-backend", "none")...)
	cmd.Dir = ".."
	cmd.Env = append(cmd.Environ(), "HOME="+t.TempDir())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	require.NoError(t, cmd.Run(), stderr.String())
	require.NoError(t, json.Unmarshal(stdout.Bytes(), v), stdout.String())
}

// TestSummaryVerification checks the scalar metrics against values computed by hand from the fixture.
func TestSummaryVerification(t *testing.T) {
	bikedashPath := buildBikedash(t)
	fixture := "integration/testdata/rentals.csv"

	type summary struct {
		TotalRentals      int     `json:"total_rentals"`
		MeanHourlyRentals int     `json:"mean_hourly_rentals"`
		MeanTemperature   float64 `json:"mean_temperature"`
		DistinctDays      int     `json:"distinct_days"`
		Records           int     `json:"records"`
	}

	tests := []struct {
		name     string
		args     []string
		expected summary
	}{
		{
			name:     "full range",
			args:     nil,
			expected: summary{TotalRentals: 340, MeanHourlyRentals: 85, MeanTemperature: 8.25, DistinctDays: 2, Records: 4},
		},
		{
			name:     "winter only",
			args:     []string{"--seasons", "Winter"},
			expected: summary{TotalRentals: 40, MeanHourlyRentals: 20, MeanTemperature: 3.5, DistinctDays: 1, Records: 2},
		},
		{
			name:     "single day",
			args:     []string{"--from", "2011-04-02", "--to", "2011-04-02"},
			expected: summary{TotalRentals: 300, MeanHourlyRentals: 150, MeanTemperature: 13, DistinctDays: 1, Records: 2},
		},
		{
			name:     "explicit empty selection",
			args:     []string{"--seasons", "none"},
			expected: summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got summary
			runJSON(t, bikedashPath, &got, append([]string{"summary", fixture}, tt.args...)...)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestBoundsVerification checks the dataset extent reported to the date pickers.
func TestBoundsVerification(t *testing.T) {
	bikedashPath := buildBikedash(t)

	var bounds struct {
		MinDate string   `json:"min_date"`
		MaxDate string   `json:"max_date"`
		Seasons []string `json:"seasons"`
		Records int      `json:"records"`
	}
	runJSON(t, bikedashPath, &bounds, "bounds", "integration/testdata/rentals.csv")

	assert.Contains(t, bounds.MinDate, "2011-01-01")
	assert.Contains(t, bounds.MaxDate, "2011-04-02")
	assert.ElementsMatch(t, []string{"Spring", "Winter"}, bounds.Seasons)
	assert.Equal(t, 4, bounds.Records)
}

// TestInvertedRangeFails checks that a start date after the end date exits non-zero.
func TestInvertedRangeFails(t *testing.T) {
	bikedashPath := buildBikedash(t)

	cmd := exec.Command(bikedashPath, "summary", "integration/testdata/rentals.csv",
		"--from", "2011-04-01", "--to", "2011-01-01", "--cache-backend", "none", "--history-backend", "none")
	cmd.Dir = ".."
	cmd.Env = append(cmd.Environ(), "HOME="+t.TempDir())
	output, err := cmd.CombinedOutput()
	require.Error(t, err, string(output))

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.NotEqual(t, 0, exitErr.ExitCode())
}
