package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{"00:00", 0, false},
		{"06:12", 372, false},
		{"6:12", 372, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:5", 0, true},
		{"N/A", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClockTime(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClockTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseClockTime(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewClockTime_Wraps(t *testing.T) {
	if got := NewClockTime(1500); got.String() != "01:00" {
		t.Errorf("NewClockTime(1500) = %s, want 01:00", got)
	}
	if got := NewClockTime(-30); got.String() != "23:30" {
		t.Errorf("NewClockTime(-30) = %s, want 23:30", got)
	}
}

func TestSolunarPeriod_JSON(t *testing.T) {
	p := SolunarPeriod{Kind: PeriodMajor, Start: 420, End: 540, Activity: ActivityHigh, Score: 3}

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded SolunarPeriod
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Start.String() != "07:00" || decoded.End.String() != "09:00" {
		t.Errorf("round trip = %s-%s, want 07:00-09:00", decoded.Start, decoded.End)
	}
	if !decoded.Contains(540) || decoded.Contains(541) {
		t.Error("Contains() should stop at the end bound inclusive")
	}
}

func TestRiseSetTable_Lookup(t *testing.T) {
	rise, set := ClockTime(6*60+12), ClockTime(17*60+48)
	table := RiseSetTable{}
	table.Add(CalendarDay{Year: 2024, Month: time.May, Day: 1}, RiseSet{Rise: &rise, Set: &set})

	if _, ok := table.Lookup(time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)); !ok {
		t.Error("Lookup(2024-05-01) missed")
	}
	for _, year := range []int{2000, 2023, 2025, 2031} {
		if _, ok := table.Lookup(time.Date(year, 5, 1, 12, 0, 0, 0, time.UTC)); ok {
			t.Errorf("Lookup(%d-05-01) matched a 2024 entry", year)
		}
	}
	if got := DayOf(time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC)).String(); got != "2024-04-09" {
		t.Errorf("CalendarDay.String() = %s, want 2024-04-09", got)
	}
}
