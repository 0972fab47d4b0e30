package ui

import (
	"fmt"
	"strings"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

// renderSolunar renders the day's rating, feeding windows and the current activity
func renderSolunar(s models.SolunarSnapshot, now models.CurrentActivity) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("%s %s  %s %s  %s %s",
		ratingStars(s.Rating),
		valueStyle.Bold(true).Render(string(s.Rating)+" day"),
		labelStyle.Render("Sun:"), riseSet(s.Sunrise, s.Sunset, s.SunSource),
		labelStyle.Render("Moon:"), riseSet(s.Moonrise, s.Moonset, s.MoonSource)))

	for _, p := range s.Periods() {
		kind := "Minor"
		if p.Kind == models.PeriodMajor {
			kind = "Major"
		}
		lines = append(lines, fmt.Sprintf("  %s %s-%s  %s",
			labelStyle.Width(6).Render(kind),
			p.Start, p.End,
			activityStyle(p.Activity).Render(fmt.Sprintf("%s %s", activityEmoji(p.Activity), p.Activity))))
	}

	lines = append(lines, fmt.Sprintf("%s %s",
		labelStyle.Render("Now:"),
		activityStyle(now.Level).Render(fmt.Sprintf("%s %s", activityEmoji(now.Level), now.Description))))

	return strings.Join(lines, "\n")
}

func riseSet(rise, set models.ClockTime, src models.Source) string {
	return valueStyle.Render(fmt.Sprintf("%s/%s", rise, set)) + sourceTag(src)
}
