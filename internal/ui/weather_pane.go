package ui

import (
	"fmt"
	"strings"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

// renderWeather renders the forecast hour together with waves and sea temperature
func renderWeather(w models.WeatherReading, sea models.MarineReading, sst models.SeaTemperatureReading) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("%s %s  %s%s",
		weatherEmoji(w.Rating),
		valueStyle.Bold(true).Render(w.Description),
		valueStyle.Render(fmt.Sprintf("%.1f°C", w.Temperature)),
		sourceTag(w.Source)))

	lines = append(lines, fmt.Sprintf("%s %s  %s %s  %s %s",
		labelStyle.Render("Wind:"), valueStyle.Render(formatWind(w.WindSpeed, w.WindDirection)),
		labelStyle.Render("Cloud:"), valueStyle.Render(fmt.Sprintf("%.0f%%", w.CloudCover)),
		labelStyle.Render("Rating:"), valueStyle.Render(string(w.Rating))))

	lines = append(lines, fmt.Sprintf("%s %s%s  %s %s%s",
		labelStyle.Render("Waves:"), valueStyle.Render(formatWaves(sea)), sourceTag(sea.Source),
		labelStyle.Render("Sea:"), valueStyle.Render(fmt.Sprintf("%.1f°C %s", sst.Temperature, sst.Band)), sourceTag(sst.Source)))

	return strings.Join(lines, "\n")
}

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// compass maps degrees to an eight-point heading
func compass(degrees float64) string {
	i := int((degrees+22.5)/45) % len(compassPoints)
	if i < 0 {
		i += len(compassPoints)
	}
	return compassPoints[i]
}

// formatWind formats wind in m/s and knots
func formatWind(speed, direction float64) string {
	return fmt.Sprintf("%s %.1f m/s (%.0f kt)", compass(direction), speed, speed*1.943844)
}

// formatWaves formats the sea state
func formatWaves(sea models.MarineReading) string {
	if sea.WaveHeightMax > sea.WaveHeight {
		return fmt.Sprintf("%.1f-%.1f m %s", sea.WaveHeight, sea.WaveHeightMax, sea.Condition)
	}
	return fmt.Sprintf("%.1f m %s", sea.WaveHeight, sea.Condition)
}
