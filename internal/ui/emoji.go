package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

func moonEmoji(phase models.MoonPhaseName) string {
	switch phase {
	case models.PhaseNewMoon:
		return "🌑"
	case models.PhaseWaxingCrescent:
		return "🌒"
	case models.PhaseFirstQuarter:
		return "🌓"
	case models.PhaseWaxingGibbous:
		return "🌔"
	case models.PhaseFullMoon:
		return "🌕"
	case models.PhaseWaningGibbous:
		return "🌖"
	case models.PhaseLastQuarter:
		return "🌗"
	case models.PhaseWaningCrescent:
		return "🌘"
	default:
		return "🌙"
	}
}

func weatherEmoji(rating models.WeatherRating) string {
	switch rating {
	case models.WeatherExcellent:
		return "☀️"
	case models.WeatherGood:
		return "🌤️"
	case models.WeatherFair:
		return "☁️"
	case models.WeatherPoor:
		return "🌧️"
	default:
		return "🌡️"
	}
}

func activityEmoji(level models.ActivityLevel) string {
	switch level {
	case models.ActivityHigh:
		return "🔥"
	case models.ActivityAverage:
		return "🐟"
	case models.ActivityLow:
		return "💤"
	default:
		return "😴"
	}
}

func activityStyle(level models.ActivityLevel) lipgloss.Style {
	switch level {
	case models.ActivityHigh:
		return activityHighStyle
	case models.ActivityAverage:
		return activityAverageStyle
	default:
		return activityLowStyle
	}
}

func trendArrow(trend models.TideTrend) string {
	switch trend {
	case models.TrendRising:
		return "↑"
	case models.TrendFalling:
		return "↓"
	default:
		return "•"
	}
}

func ratingStars(rating models.SolunarRating) string {
	switch rating {
	case models.RatingBest:
		return "★★★"
	case models.RatingGood:
		return "★★☆"
	default:
		return "★☆☆"
	}
}

// sourceTag marks readings that are not live data
func sourceTag(src models.Source) string {
	if src == models.SourceLive || src == models.SourceComputed || src == "" {
		return ""
	}
	return " " + estimateStyle.Render("("+string(src)+")")
}

func joinComma(items []string) string {
	return strings.Join(items, ", ")
}
