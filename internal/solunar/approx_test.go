package solunar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApproximateSun(t *testing.T) {
	tests := []struct {
		date    time.Time
		sunrise string
		sunset  string
	}{
		{time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC), "05:30", "18:30"},
		{time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC), "05:00", "18:00"},
		{time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), "05:55", "18:55"},
	}

	for _, tt := range tests {
		rise, set := ApproximateSun(tt.date)
		assert.Equal(t, tt.sunrise, rise.String(), tt.date)
		assert.Equal(t, tt.sunset, set.String(), tt.date)
	}
}

func TestApproximateMoon(t *testing.T) {
	tests := []struct {
		age      float64
		moonrise string
		moonset  string
	}{
		{0, "06:00", "18:00"},
		{10, "14:20", "02:20"},
		{29, "06:10", "18:10"},
	}

	for _, tt := range tests {
		rise, set := ApproximateMoon(tt.age)
		assert.Equal(t, tt.moonrise, rise.String(), "age %v", tt.age)
		assert.Equal(t, tt.moonset, set.String(), "age %v", tt.age)
	}
}
