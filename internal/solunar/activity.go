package solunar

import "github.com/ngmaloney/angler-terminal/internal/models"

// CurrentActivity returns the first window containing at, majors before minors
func CurrentActivity(s *models.SolunarSnapshot, at models.ClockTime) models.CurrentActivity {
	for _, p := range s.Periods() {
		if p.Contains(at) {
			return models.CurrentActivity{
				Level:       p.Activity,
				Period:      p.Kind,
				Description: p.Description,
			}
		}
	}
	return models.CurrentActivity{
		Level:       models.ActivityVeryLow,
		Period:      models.PeriodNone,
		Description: "Outside peak periods",
	}
}
