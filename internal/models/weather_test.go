package models

import "testing"

func TestClassifyWaves(t *testing.T) {
	tests := []struct {
		height float64
		want   SeaCondition
	}{
		{0.2, SeaVeryCalm},
		{0.5, SeaVeryCalm},
		{0.8, SeaCalm},
		{1.2, SeaModerate},
		{2.5, SeaRough},
		{3.5, SeaVeryRough},
	}

	for _, tt := range tests {
		if got := ClassifyWaves(tt.height); got != tt.want {
			t.Errorf("ClassifyWaves(%v) = %s, want %s", tt.height, got, tt.want)
		}
	}
}

func TestClassifySeaTemperature(t *testing.T) {
	tests := []struct {
		celsius float64
		want    SeaTemperatureBand
	}{
		{29, SeaWarm},
		{28, SeaWarm},
		{26, SeaComfortable},
		{23, SeaCool},
		{20, SeaCold},
	}

	for _, tt := range tests {
		if got := ClassifySeaTemperature(tt.celsius); got != tt.want {
			t.Errorf("ClassifySeaTemperature(%v) = %s, want %s", tt.celsius, got, tt.want)
		}
	}
}

func TestRateWeather(t *testing.T) {
	tests := []struct {
		name               string
		wind, rain, clouds float64
		want               WeatherRating
	}{
		{"calm clear day", 3, 0, 20, WeatherExcellent},
		{"light breeze with some cloud", 6, 0, 50, WeatherGood},
		{"overcast", 4, 0, 90, WeatherFair},
		{"fresh wind", 8, 0, 10, WeatherFair},
		{"showers", 4, 3, 60, WeatherFair},
		{"strong wind", 12, 0, 10, WeatherPoor},
		{"heavy rain", 2, 12, 100, WeatherPoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RateWeather(tt.wind, tt.rain, tt.clouds); got != tt.want {
				t.Errorf("RateWeather() = %s, want %s", got, tt.want)
			}
		})
	}
}
