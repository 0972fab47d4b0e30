package solunar

import (
	"math"
	"time"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

const (
	meanSunrise      = 5*60 + 30
	meanSunset       = 18*60 + 30
	seasonalSwing    = 30 // minutes
	meanMoonrise     = 6 * 60
	moonDailyLag     = 50 // minutes later per day of moon age
	moonAboveHorizon = 12 * 60
)

// ApproximateSun estimates sunrise and sunset from the day of year
func ApproximateSun(date time.Time) (sunrise, sunset models.ClockTime) {
	shift := math.Sin(float64(date.YearDay())/365*2*math.Pi) * seasonalSwing
	sunrise = models.NewClockTime(int(math.Floor(meanSunrise + shift)))
	sunset = models.NewClockTime(int(math.Floor(meanSunset + shift)))
	return sunrise, sunset
}

// ApproximateMoon estimates moonrise and moonset from the moon age in days
func ApproximateMoon(age float64) (moonrise, moonset models.ClockTime) {
	moonrise = models.NewClockTime(int(math.Floor(meanMoonrise + age*moonDailyLag)))
	moonset = models.NewClockTime(moonrise.Minutes() + moonAboveHorizon)
	return moonrise, moonset
}
