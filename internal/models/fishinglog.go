package models

import "time"

// FishingLog is one recorded trip.
// Rows are owned by UserID and never visible to other users.
type FishingLog struct {
	ID           int64         `json:"id"` // Database Primary Key (0 if not saved)
	UserID       string        `json:"userId"`
	Date         time.Time     `json:"date"`
	LocationID   string        `json:"locationId"`
	LocationName string        `json:"locationName"`
	CaughtFish   bool          `json:"caughtFish"`
	FishCount    int           `json:"fishCount"`
	FishTypes    []string      `json:"fishTypes"`
	MoonPhase    MoonPhaseName `json:"moonPhase,omitempty"`
	TideLevel    TideLevel     `json:"tideLevel,omitempty"`
	FishingType  string        `json:"fishingType,omitempty"` // e.g. "shore", "boat"
	HookSetup    string        `json:"hookSetup,omitempty"`
	Bait         string        `json:"bait,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// LogStatistics summarises a user's trips
type LogStatistics struct {
	TotalTrips       int `json:"totalTrips"`
	SuccessfulTrips  int `json:"successfulTrips"`
	TotalFishCaught  int `json:"totalFishCaught"`
	LocationsVisited int `json:"locationsVisited"`
}

// CatchPredictions are the conditions that produced the most fish
type CatchPredictions struct {
	BestMoonPhase MoonPhaseName `json:"bestMoonPhase,omitempty"`
	BestTideLevel TideLevel     `json:"bestTideLevel,omitempty"`
	BestBait      string        `json:"bestBait,omitempty"`
	BestLocation  string        `json:"bestLocation,omitempty"`
	BestMonth     string        `json:"bestMonth,omitempty"`
	TotalFish     int           `json:"totalFish"`
	TotalTrips    int           `json:"totalTrips"`
	AvgPerTrip    float64       `json:"avgPerTrip"`
}

// LocationStats aggregates the successful trips logged at one location
type LocationStats struct {
	LocationID       string         `json:"locationId"`
	TotalTrips       int            `json:"totalTrips"`
	TotalFish        int            `json:"totalFish"`
	BestBait         string         `json:"bestBait"`
	BestFishingType  string         `json:"bestFishingType"`
	MostCaughtFish   string         `json:"mostCaughtFish"`
	BaitStats        map[string]int `json:"baitStats"`
	FishingTypeStats map[string]int `json:"fishingTypeStats"`
	FishStats        map[string]int `json:"fishStats"`
	RecentLogs       []FishingLog   `json:"recentLogs"`
}

// BestConditions are the conditions that produced the most fish for an
// optional fishing type and bait
type BestConditions struct {
	FishingType   string        `json:"fishingType"`
	Bait          string        `json:"bait"`
	BestMoonPhase MoonPhaseName `json:"bestMoonPhase"`
	BestTideLevel TideLevel     `json:"bestTide"`
	BestLocation  string        `json:"bestLocation"`
	BestMonth     string        `json:"bestMonth"`
	TotalFish     int           `json:"totalFish"`
	DataPoints    int           `json:"dataPoints"`
}
