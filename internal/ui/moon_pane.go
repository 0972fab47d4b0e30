package ui

import (
	"fmt"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

// renderMoon renders the phase, illumination, age and the coming new and full moons
func renderMoon(moon models.MoonPhase) string {
	line := fmt.Sprintf("%s %s  %s  %s",
		moonEmoji(moon.Phase),
		valueStyle.Bold(true).Render(string(moon.Phase)),
		labelStyle.Render("Illumination:")+" "+valueStyle.Render(fmt.Sprintf("%.1f%%", moon.Illumination)),
		labelStyle.Render("Age:")+" "+valueStyle.Render(fmt.Sprintf("%.1f days", moon.AgeDays)))
	if moon.NextNewMoon.IsZero() || moon.NextFullMoon.IsZero() {
		return line
	}
	return line + "\n" + fmt.Sprintf("%s %s  %s %s",
		labelStyle.Render("Next new:"), valueStyle.Render(moon.NextNewMoon.Format("Mon 2 Jan")),
		labelStyle.Render("Next full:"), valueStyle.Render(moon.NextFullMoon.Format("Mon 2 Jan")))
}
