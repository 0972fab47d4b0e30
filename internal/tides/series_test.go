package tides

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

func hourly(start time.Time, heights ...float64) []models.TidePoint {
	points := make([]models.TidePoint, len(heights))
	for i, h := range heights {
		points[i] = models.TidePoint{Time: start.Add(time.Duration(i) * time.Hour), Height: h}
	}
	return points
}

func TestInterpolate_Midpoint(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, mauritius)
	series := hourly(start, 1.0, 1.4)

	got, err := Interpolate(series, start.Add(30*time.Minute), LiveThresholds)

	require.NoError(t, err)
	assert.InDelta(t, 1.2, got.Height, 1e-9)
	assert.Equal(t, models.TideLevelMediumHigh, got.Level)
	assert.Equal(t, models.TrendRising, got.Trend)
	assert.Equal(t, models.SourceLive, got.Source)
}

func TestInterpolate_ExactSampleIsIdempotent(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, mauritius)
	series := hourly(start, 0.31, 0.57, 0.83, 0.99, 0.74)

	for i, p := range series {
		got, err := Interpolate(series, p.Time, LiveThresholds)
		require.NoError(t, err)
		assert.Equal(t, p.Height, got.Height, "sample %d", i)
	}
}

func TestInterpolate_ClampsOutsideRange(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, mauritius)
	series := hourly(start, 0.8, 1.1, 0.6)

	before, err := Interpolate(series, start.Add(-3*time.Hour), LiveThresholds)
	require.NoError(t, err)
	assert.Equal(t, 0.8, before.Height)

	after, err := Interpolate(series, start.Add(10*time.Hour), LiveThresholds)
	require.NoError(t, err)
	assert.Equal(t, 0.6, after.Height)
	assert.Equal(t, models.TrendFalling, after.Trend)
}

func TestInterpolate_NextExtremes(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, mauritius)
	series := hourly(start, 0.5, 0.4, 0.3, 0.6, 1.2, 1.6, 1.3, 0.9)

	got, err := Interpolate(series, start, LiveThresholds)
	require.NoError(t, err)

	require.NotNil(t, got.NextHigh)
	require.NotNil(t, got.NextLow)
	assert.Equal(t, start.Add(5*time.Hour), got.NextHigh.Time)
	assert.Equal(t, 1.6, got.NextHigh.Height)
	assert.Equal(t, start.Add(2*time.Hour), got.NextLow.Time)
	assert.Equal(t, 0.3, got.NextLow.Height)
	assert.False(t, *got.IsRising, "0.3 two hours ahead is below 0.5")
}

func TestInterpolate_NoExtremeAhead(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, mauritius)
	series := hourly(start, 0.2, 0.4, 0.6, 0.8)

	got, err := Interpolate(series, start, LiveThresholds)
	require.NoError(t, err)

	assert.NotNil(t, got.NextHigh)
	assert.Nil(t, got.NextLow, "monotonic rise has no low ahead")
}

func TestInterpolate_UnsortedInput(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, mauritius)
	series := []models.TidePoint{
		{Time: start.Add(2 * time.Hour), Height: 1.0},
		{Time: start, Height: 0.0},
		{Time: start.Add(time.Hour), Height: 0.5},
	}

	got, err := Interpolate(series, start.Add(90*time.Minute), LiveThresholds)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, got.Height, 1e-9)
	assert.True(t, got.Series[0].Time.Equal(start))
}

func TestInterpolate_InsufficientSeries(t *testing.T) {
	ref := time.Date(2024, 5, 1, 0, 0, 0, 0, mauritius)

	for _, series := range [][]models.TidePoint{nil, {{Time: ref, Height: 1}}} {
		_, err := Interpolate(series, ref, LiveThresholds)
		assert.ErrorIs(t, err, ErrInsufficientSeries)
	}
}

func TestThresholds_Categorize(t *testing.T) {
	tests := []struct {
		th     Thresholds
		height float64
		want   models.TideLevel
	}{
		{LiveThresholds, 1.6, models.TideLevelHigh},
		{LiveThresholds, 1.5, models.TideLevelMediumHigh},
		{LiveThresholds, 1.0, models.TideLevelMedium},
		{LiveThresholds, 0.5, models.TideLevelLow},
		{HarmonicThresholds, 1.31, models.TideLevelHigh},
		{HarmonicThresholds, 1.0, models.TideLevelMediumHigh},
		{HarmonicThresholds, 0.7, models.TideLevelMedium},
		{HarmonicThresholds, 0.6, models.TideLevelLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.th.Categorize(tt.height), "height %v", tt.height)
	}
}
