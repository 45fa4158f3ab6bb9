package algo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRoundHalfEven pins the rounding mode of the mean hourly rentals metric.
func TestRoundHalfEven(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected int
	}{
		{"exact integer", 15.0, 15},
		{"below half", 14.49, 14},
		{"above half", 14.51, 15},
		{"tie rounds down to even", 14.5, 14},
		{"tie rounds up to even", 15.5, 16},
		{"tie at zero", 0.5, 0},
		{"tie at one", 1.5, 2},
		{"tie at two", 2.5, 2},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RoundHalfEven(tt.value))
		})
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		places   int
		expected float64
	}{
		{"two places", 0.344167, 2, 0.34},
		{"rounds up", 0.345833, 2, 0.35},
		{"already short", 0.5, 2, 0.5},
		{"zero places", 2.6, 0, 3},
		{"negative", -1.237, 2, -1.24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, RoundTo(tt.value, tt.places), 1e-12)
		})
	}

	assert.True(t, math.IsNaN(RoundTo(math.NaN(), 2)))
}

func TestMeanAndSum(t *testing.T) {
	assert.Equal(t, 0, SumInts(nil))
	assert.Equal(t, 30, SumInts([]int{10, 20}))
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
	assert.Equal(t, 0.0, MeanInts(nil))
	assert.InDelta(t, 15.0, MeanInts([]int{10, 20}), 1e-12)
	assert.InDelta(t, 14.5, MeanInts([]int{14, 15}), 1e-12)
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	tests := []struct {
		name     string
		q        float64
		expected float64
	}{
		{"minimum", 0, 1},
		{"first quartile", 0.25, 1.75},
		{"median", 0.5, 2.5},
		{"third quartile", 0.75, 3.25},
		{"maximum", 1, 4},
		{"clamped below", -0.5, 1},
		{"clamped above", 1.5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Quantile(sorted, tt.q), 1e-12)
		})
	}

	assert.Equal(t, 0.0, Quantile(nil, 0.5))
	assert.Equal(t, 7.0, Quantile([]float64{7}, 0.25))
}

func TestFiveNumber(t *testing.T) {
	t.Run("unsorted input is not modified", func(t *testing.T) {
		values := []float64{5, 1, 4, 2, 3}
		minV, q1, median, q3, maxV := FiveNumber(values)
		assert.Equal(t, 1.0, minV)
		assert.Equal(t, 2.0, q1)
		assert.Equal(t, 3.0, median)
		assert.Equal(t, 4.0, q3)
		assert.Equal(t, 5.0, maxV)
		assert.Equal(t, []float64{5, 1, 4, 2, 3}, values)
	})

	t.Run("empty", func(t *testing.T) {
		minV, q1, median, q3, maxV := FiveNumber(nil)
		assert.Zero(t, minV)
		assert.Zero(t, q1)
		assert.Zero(t, median)
		assert.Zero(t, q3)
		assert.Zero(t, maxV)
	})

	t.Run("single value", func(t *testing.T) {
		minV, q1, median, q3, maxV := FiveNumber([]float64{42})
		for _, v := range []float64{minV, q1, median, q3, maxV} {
			assert.Equal(t, 42.0, v)
		}
	})
}
