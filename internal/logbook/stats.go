package logbook

import (
	"math"
	"sort"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

// Unknown labels a condition that was not recorded
const Unknown = "Unknown"

// tally accumulates weights per key
type tally map[string]int

func (t tally) add(key string, weight int) {
	if key == "" {
		key = Unknown
	}
	t[key] += weight
}

// best returns the key with the highest weight; ties go to the
// alphabetically first key. An empty tally yields fallback.
func (t tally) best(fallback string) string {
	if len(t) == 0 {
		return fallback
	}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bestKey := keys[0]
	for _, k := range keys[1:] {
		if t[k] > t[bestKey] {
			bestKey = k
		}
	}
	return bestKey
}

func totalFish(logs []models.FishingLog) int {
	total := 0
	for _, l := range logs {
		total += l.FishCount
	}
	return total
}

// predictionsFromLogs weights every condition by the number of fish caught
func predictionsFromLogs(logs []models.FishingLog) models.CatchPredictions {
	moon, tide, bait, location, month := tally{}, tally{}, tally{}, tally{}, tally{}

	for _, l := range logs {
		moon.add(string(l.MoonPhase), l.FishCount)
		tide.add(string(l.TideLevel), l.FishCount)
		if l.Bait != "" {
			bait.add(l.Bait, l.FishCount)
		}
		if l.LocationName != "" {
			location.add(l.LocationName, l.FishCount)
		}
		month.add(l.Date.Month().String(), l.FishCount)
	}

	p := models.CatchPredictions{
		BestMoonPhase: models.MoonPhaseName(moon.best(Unknown)),
		BestTideLevel: models.TideLevel(tide.best(Unknown)),
		BestBait:      bait.best(Unknown),
		BestLocation:  location.best(Unknown),
		BestMonth:     month.best(Unknown),
		TotalFish:     totalFish(logs),
		TotalTrips:    len(logs),
	}
	if len(logs) > 0 {
		p.AvgPerTrip = roundTenth(float64(p.TotalFish) / float64(len(logs)))
	}
	return p
}

// locationStatsFromLogs expects logs newest first
func locationStatsFromLogs(locationID string, logs []models.FishingLog) models.LocationStats {
	bait, fishingType, fish := tally{}, tally{}, tally{}
	for _, l := range logs {
		if l.Bait != "" {
			bait.add(l.Bait, l.FishCount)
		}
		if l.FishingType != "" {
			fishingType.add(l.FishingType, l.FishCount)
		}
		for _, f := range l.FishTypes {
			fish.add(f, 1)
		}
	}

	recent := logs
	if len(recent) > 5 {
		recent = recent[:5]
	}

	const noData = "No data"
	return models.LocationStats{
		LocationID:       locationID,
		TotalTrips:       len(logs),
		TotalFish:        totalFish(logs),
		BestBait:         bait.best(noData),
		BestFishingType:  fishingType.best(noData),
		MostCaughtFish:   fish.best(noData),
		BaitStats:        bait,
		FishingTypeStats: fishingType,
		FishStats:        fish,
		RecentLogs:       recent,
	}
}

func bestConditionsFromLogs(fishingType, bait string, logs []models.FishingLog) models.BestConditions {
	moon, tide, location, month := tally{}, tally{}, tally{}, tally{}
	for _, l := range logs {
		moon.add(string(l.MoonPhase), l.FishCount)
		tide.add(string(l.TideLevel), l.FishCount)
		location.add(l.LocationName, l.FishCount)
		month.add(l.Date.Month().String(), l.FishCount)
	}

	if fishingType == "" {
		fishingType = "All types"
	}
	if bait == "" {
		bait = "All baits"
	}
	return models.BestConditions{
		FishingType:   fishingType,
		Bait:          bait,
		BestMoonPhase: models.MoonPhaseName(moon.best(Unknown)),
		BestTideLevel: models.TideLevel(tide.best(Unknown)),
		BestLocation:  location.best(Unknown),
		BestMonth:     month.best(Unknown),
		TotalFish:     totalFish(logs),
		DataPoints:    len(logs),
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
