package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in a civil day
const MinutesPerDay = 24 * 60

// ClockTime is a local time of day in minutes since midnight
type ClockTime int

// NewClockTime wraps minutes into [00:00, 23:59]
func NewClockTime(minutes int) ClockTime {
	m := minutes % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return ClockTime(m)
}

// ClockTimeOf returns the wall clock time of t in its own location
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*60 + t.Minute())
}

// ParseClockTime parses "HH:MM" (hours may be a single digit)
func ParseClockTime(s string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || len(mm) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return ClockTime(h*60 + m), nil
}

// Minutes returns the minutes since midnight
func (c ClockTime) Minutes() int { return int(c) }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClockTime) UnmarshalText(b []byte) error {
	parsed, err := ParseClockTime(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// PeriodKind distinguishes solunar windows
type PeriodKind string

const (
	PeriodMajor PeriodKind = "major"
	PeriodMinor PeriodKind = "minor"
	PeriodNone  PeriodKind = "none"
)

// ActivityLevel is the expected fish activity
type ActivityLevel string

const (
	ActivityHigh    ActivityLevel = "high"
	ActivityAverage ActivityLevel = "average"
	ActivityLow     ActivityLevel = "low"
	ActivityVeryLow ActivityLevel = "very low"
)

// SolunarRating labels a whole day by moon illumination
type SolunarRating string

const (
	RatingBest    SolunarRating = "best"
	RatingGood    SolunarRating = "good"
	RatingAverage SolunarRating = "average"
)

// SolunarPeriod is a feeding window
type SolunarPeriod struct {
	Kind        PeriodKind    `json:"kind"`
	Start       ClockTime     `json:"start"`
	End         ClockTime     `json:"end"`
	Activity    ActivityLevel `json:"activity"`
	Score       float64       `json:"score"`
	Description string        `json:"description"`
}

// Contains reports whether t lies in the window, bounds included
func (p SolunarPeriod) Contains(t ClockTime) bool {
	return t >= p.Start && t <= p.End
}

// SolunarSnapshot holds the day's solunar periods and their inputs
type SolunarSnapshot struct {
	Date         string           `json:"date"`
	Rating       SolunarRating    `json:"rating"`
	MajorPeriods [2]SolunarPeriod `json:"majorPeriods"`
	MinorPeriods [2]SolunarPeriod `json:"minorPeriods"`
	Moonrise     ClockTime        `json:"moonrise"`
	Moonset      ClockTime        `json:"moonset"`
	MoonTransit  ClockTime        `json:"moonTransit"`
	Sunrise      ClockTime        `json:"sunrise"`
	Sunset       ClockTime        `json:"sunset"`
	CivilDawn    *ClockTime       `json:"civilDawn,omitempty"`
	CivilDusk    *ClockTime       `json:"civilDusk,omitempty"`
	Illumination float64          `json:"illumination"`
	SunSource    Source           `json:"sunSource"`
	MoonSource   Source           `json:"moonSource"`

	// TablesFetchedAt is when the oldest published table in use was fetched
	TablesFetchedAt *time.Time `json:"tablesFetchedAt,omitempty"`
}

// Periods returns majors followed by minors
func (s *SolunarSnapshot) Periods() []SolunarPeriod {
	return []SolunarPeriod{s.MajorPeriods[0], s.MajorPeriods[1], s.MinorPeriods[0], s.MinorPeriods[1]}
}

// CurrentActivity is the activity at a time of day
type CurrentActivity struct {
	Level       ActivityLevel `json:"level"`
	Period      PeriodKind    `json:"period"`
	Description string        `json:"description"`
}

// RiseSet is one day's rise and set. A nil time means no event that day.
type RiseSet struct {
	Rise *ClockTime `json:"rise,omitempty"`
	Set  *ClockTime `json:"set,omitempty"`
}

// Complete reports whether both events are known
func (rs RiseSet) Complete() bool {
	return rs.Rise != nil && rs.Set != nil
}

// CalendarDay is a civil date without a time of day
type CalendarDay struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns t's calendar day in its own location
func DayOf(t time.Time) CalendarDay {
	return CalendarDay{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d CalendarDay) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// RiseSetTable holds published rise/set times keyed by calendar day.
// Published tables cover one year's months, so other years never match.
type RiseSetTable map[CalendarDay]RiseSet

// Lookup returns the entry for date's calendar day
func (t RiseSetTable) Lookup(date time.Time) (RiseSet, bool) {
	rs, ok := t[DayOf(date)]
	return rs, ok
}

// Add stores an entry
func (t RiseSetTable) Add(day CalendarDay, rs RiseSet) {
	t[day] = rs
}
