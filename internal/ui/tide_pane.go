package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// renderTide renders the current level, next turns and a curve of the day
func renderTide(tide models.TideReading, width int) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("%s %s  %s%s",
		valueStyle.Bold(true).Render(fmt.Sprintf("%.2f m", tide.Height)),
		valueStyle.Render(string(tide.Level)),
		trendArrow(tide.Trend)+" "+string(tide.Trend),
		sourceTag(tide.Source)))

	var turns []string
	if tide.NextHigh != nil {
		turns = append(turns, fmt.Sprintf("%s %s (%.2f m)", labelStyle.Render("Next high:"), tide.NextHigh.TimeString, tide.NextHigh.Height))
	}
	if tide.NextLow != nil {
		turns = append(turns, fmt.Sprintf("%s %s (%.2f m)", labelStyle.Render("Next low:"), tide.NextLow.TimeString, tide.NextLow.Height))
	}
	if len(turns) > 0 {
		lines = append(lines, strings.Join(turns, "  "))
	}

	day := tide.EventsForDay(tide.ReferenceTime)
	if curve := sparkline(day, width-4); curve != "" {
		lines = append(lines, tideCurveStyle.Render(curve)+" "+mutedStyle.Render("00h→24h"))
	}

	return strings.Join(lines, "\n")
}

// sparkline draws heights as block characters, sampling down to maxWidth
func sparkline(points []models.TidePoint, maxWidth int) string {
	if len(points) < 2 {
		return ""
	}
	if maxWidth <= 0 || maxWidth > len(points) {
		maxWidth = len(points)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		lo = math.Min(lo, p.Height)
		hi = math.Max(hi, p.Height)
	}

	var b strings.Builder
	for i := 0; i < maxWidth; i++ {
		p := points[i*len(points)/maxWidth]
		idx := 0
		if hi > lo {
			idx = int((p.Height - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}
