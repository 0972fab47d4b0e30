package tides

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

// ErrInsufficientSeries is returned when fewer than two samples are available
var ErrInsufficientSeries = errors.New("tide series needs at least two samples")

const (
	trendLookahead = 2 * time.Hour
	extremaWindow  = 24 // samples scanned ahead for the next high and low
)

// HeightAt linearly interpolates series at t. Times outside the series
// return the nearest end sample. series must be sorted and non-empty.
func HeightAt(series []models.TidePoint, t time.Time) float64 {
	if !t.After(series[0].Time) {
		return series[0].Height
	}
	last := series[len(series)-1]
	if !t.Before(last.Time) {
		return last.Height
	}

	i := bracket(series, t)
	a, b := series[i], series[i+1]
	span := b.Time.Sub(a.Time)
	if span <= 0 {
		return a.Height
	}
	ratio := float64(t.Sub(a.Time)) / float64(span)
	return a.Height + (b.Height-a.Height)*ratio
}

// bracket returns i such that series[i].Time <= t < series[i+1].Time,
// 0 before the series and len-2 after it.
func bracket(series []models.TidePoint, t time.Time) int {
	// first index whose time is after t
	j := sort.Search(len(series), func(k int) bool { return series[k].Time.After(t) })
	switch {
	case j == 0:
		return 0
	case j >= len(series):
		return max(0, len(series)-2)
	default:
		return j - 1
	}
}

// Interpolate derives the tide state at ref from a sampled sea level series
func Interpolate(series []models.TidePoint, ref time.Time, th Thresholds) (models.TideReading, error) {
	if len(series) < 2 {
		return models.TideReading{}, fmt.Errorf("%w: got %d", ErrInsufficientSeries, len(series))
	}

	sorted := make([]models.TidePoint, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	current := HeightAt(sorted, ref)
	future := HeightAt(sorted, ref.Add(trendLookahead))
	rising := future > current

	reading := models.TideReading{
		Height:        current,
		Level:         th.Categorize(current),
		IsRising:      &rising,
		Series:        sorted,
		ReferenceTime: ref,
		Source:        models.SourceLive,
	}
	if rising {
		reading.Trend = models.TrendRising
	} else {
		reading.Trend = models.TrendFalling
	}

	idx := bracket(sorted, ref)
	maxIdx, minIdx := idx, idx
	maxH, minH := current, current
	end := min(idx+extremaWindow, len(sorted))
	for i := idx + 1; i < end; i++ {
		if sorted[i].Height > maxH {
			maxH, maxIdx = sorted[i].Height, i
		}
		if sorted[i].Height < minH {
			minH, minIdx = sorted[i].Height, i
		}
	}
	if maxIdx > idx {
		reading.NextHigh = &models.TideEvent{Time: sorted[maxIdx].Time, Type: models.TideHigh, Height: maxH}
	}
	if minIdx > idx {
		reading.NextLow = &models.TideEvent{Time: sorted[minIdx].Time, Type: models.TideLow, Height: minH}
	}

	return reading, nil
}
