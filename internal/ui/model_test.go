package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/angler-terminal/internal/conditions"
	"github.com/ngmaloney/angler-terminal/internal/geocoding"
	"github.com/ngmaloney/angler-terminal/internal/locations"
	"github.com/ngmaloney/angler-terminal/internal/models"
)

var (
	grandBaie = models.Location{ID: "grand-baie", Name: "Grand Baie", Latitude: -20.0167, Longitude: 57.5833, Type: models.LocationBeach, Region: "North"}
	pereybere = models.Location{ID: "pereybere", Name: "Pereybere", Latitude: -20.0117, Longitude: 57.5883, Type: models.LocationBeach, Region: "North"}
)

type stubConditions struct {
	today     string
	requests  []conditions.Request
	points    [][2]float64
	refreshes int
}

func (s *stubConditions) RefreshSolunarTables() { s.refreshes++ }

func (s *stubConditions) Today() string { return s.today }

func (s *stubConditions) Snapshot(_ context.Context, req conditions.Request) (*models.EnvironmentalSnapshot, error) {
	s.requests = append(s.requests, req)
	return sampleSnapshot(grandBaie, req.Date), nil
}

func (s *stubConditions) SnapshotAt(_ context.Context, date, _ string, lat, lon float64) (*models.EnvironmentalSnapshot, error) {
	s.points = append(s.points, [2]float64{lat, lon})
	return sampleSnapshot(models.Location{ID: "custom", Name: "Custom", Latitude: lat, Longitude: lon}, date), nil
}

type stubFinder struct {
	matches []models.Location
	nearby  []locations.NearbyLocation
}

func (f stubFinder) Search(_ context.Context, _ string) ([]models.Location, error) {
	return f.matches, nil
}

func (f stubFinder) FindNearby(_ context.Context, _, _, _ float64) ([]locations.NearbyLocation, error) {
	return f.nearby, nil
}

type stubGeocoder struct {
	point *geocoding.Location
	err   error
}

func (g stubGeocoder) Geocode(_ context.Context, _ string) (*geocoding.Location, error) {
	return g.point, g.err
}

func sampleSnapshot(loc models.Location, date string) *models.EnvironmentalSnapshot {
	return &models.EnvironmentalSnapshot{
		Date:          date,
		ReferenceTime: time.Date(2024, 5, 1, 10, 30, 0, 0, conditions.Mauritius),
		Location:      loc,
		Moon:          models.MoonPhase{Phase: models.PhaseLastQuarter, Illumination: 45.2, AgeDays: 22.4, Source: models.SourceComputed},
		Tide: models.TideReading{
			Height: 0.82,
			Level:  models.TideLevelMedium,
			Trend:  models.TrendFalling,
			Source: models.SourceHarmonic,
		},
		Weather: models.WeatherReading{Temperature: 26, WindSpeed: 5, WindDirection: 90, Description: "Typical Mauritius weather", Rating: models.WeatherGood, Source: models.SourceFallback},
		Marine:  models.MarineReading{WaveHeight: 1.2, WaveHeightMax: 1.5, Condition: models.SeaModerate, Source: models.SourceLive},
		SeaTemperature: models.SeaTemperatureReading{
			Temperature: 26, Band: models.SeaComfortable, Source: models.SourceLive,
		},
		Solunar:         models.SolunarSnapshot{Date: date, Rating: models.RatingGood, SunSource: models.SourceApproximate, MoonSource: models.SourceApproximate},
		CurrentActivity: models.CurrentActivity{Level: models.ActivityLow, Period: models.PeriodNone, Description: "Low activity"},
	}
}

func newTestModel(finder stubFinder, geocoder Geocoder) (Model, *stubConditions) {
	cond := &stubConditions{today: "2024-05-01"}
	m := NewModel(Deps{Conditions: cond, Locations: finder, Geocoder: geocoder})
	m.width, m.height = 120, 40
	return m, cond
}

func typeString(m Model, s string) Model {
	for _, r := range s {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(stubFinder{}, nil)

	if m.state != StateSearch {
		t.Errorf("NewModel() state = %v, want StateSearch", m.state)
	}
	if !m.searchInput.Focused() {
		t.Error("Expected search input to be focused initially")
	}
	if m.date != "2024-05-01" {
		t.Errorf("NewModel() date = %s, want 2024-05-01", m.date)
	}
}

func TestNewModel_InitialQuery(t *testing.T) {
	m := NewModel(Deps{Conditions: &stubConditions{today: "2024-05-01"}, Locations: stubFinder{}, InitialQuery: "grand-baie"})

	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading", m.state)
	}
	if m.Init() == nil {
		t.Error("Expected Init to start the search")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m, _ := newTestModel(stubFinder{}, nil)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)

	if m.width != 100 || m.height != 30 {
		t.Errorf("After WindowSizeMsg, size = %dx%d, want 100x30", m.width, m.height)
	}
}

func TestSearch_TypingQDoesNotQuit(t *testing.T) {
	m, _ := newTestModel(stubFinder{}, nil)
	m = typeString(m, "Blue Bay q")

	if m.searchInput.Value() != "Blue Bay q" {
		t.Errorf("searchInput.Value() = %q, want 'Blue Bay q'", m.searchInput.Value())
	}
	if m.state != StateSearch {
		t.Errorf("state = %v, want StateSearch", m.state)
	}
}

func TestSearch_EnterStartsLoading(t *testing.T) {
	m, _ := newTestModel(stubFinder{}, nil)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd != nil || m.state != StateSearch {
		t.Error("Enter on an empty query should do nothing")
	}

	m = typeString(m, "Grand")
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading", m.state)
	}
	if cmd == nil {
		t.Error("Expected a search command")
	}
	if m.searchQuery != "Grand" {
		t.Errorf("searchQuery = %q, want Grand", m.searchQuery)
	}
}

func TestSearchSpots(t *testing.T) {
	point := &geocoding.Location{Latitude: -20.01, Longitude: 57.58, Name: "Grand Baie, Rivière du Rempart"}

	tests := []struct {
		name      string
		finder    stubFinder
		geocoder  Geocoder
		wantSpots int
		wantPoint bool
		wantErr   bool
	}{
		{
			name:      "catalogue match",
			finder:    stubFinder{matches: []models.Location{grandBaie}},
			wantSpots: 1,
		},
		{
			name: "geocoded place with nearby spots",
			finder: stubFinder{nearby: []locations.NearbyLocation{
				{Location: grandBaie, DistanceKm: 0.8},
				{Location: pereybere, DistanceKm: 1.4},
			}},
			geocoder:  stubGeocoder{point: point},
			wantSpots: 2,
			wantPoint: true,
		},
		{
			name:      "geocoded place with nothing nearby",
			finder:    stubFinder{},
			geocoder:  stubGeocoder{point: point},
			wantPoint: true,
		},
		{
			name:     "geocoding fails",
			finder:   stubFinder{},
			geocoder: stubGeocoder{err: geocoding.ErrNoResults},
			wantErr:  true,
		},
		{
			name:    "no geocoder",
			finder:  stubFinder{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := searchSpots(tt.finder, tt.geocoder, "Grand Baie")().(searchResultMsg)

			if (msg.err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", msg.err, tt.wantErr)
			}
			if len(msg.spots) != tt.wantSpots {
				t.Errorf("len(spots) = %d, want %d", len(msg.spots), tt.wantSpots)
			}
			if (msg.point != nil) != tt.wantPoint {
				t.Errorf("point = %v, wantPoint %v", msg.point, tt.wantPoint)
			}
		})
	}
}

func TestHandleSearchResult(t *testing.T) {
	point := &geocoding.Location{Latitude: -20.5, Longitude: 57.2, Name: "Somewhere offshore"}

	tests := []struct {
		name      string
		msg       searchResultMsg
		wantState AppState
	}{
		{"single spot loads directly", searchResultMsg{spots: []spotItem{{location: grandBaie, distanceKm: -1}}}, StateLoading},
		{"several spots show a list", searchResultMsg{spots: []spotItem{{location: grandBaie}, {location: pereybere}}}, StateLocationList},
		{"single nearby spot still lists", searchResultMsg{spots: []spotItem{{location: grandBaie, distanceKm: 2}}, point: point}, StateLocationList},
		{"bare point loads directly", searchResultMsg{point: point}, StateLoading},
		{"nothing found", searchResultMsg{}, StateError},
		{"search error", searchResultMsg{err: errors.New("boom")}, StateError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(stubFinder{}, nil)
			updated, _ := m.Update(tt.msg)
			m = updated.(Model)

			if m.state != tt.wantState {
				t.Errorf("state = %v, want %v", m.state, tt.wantState)
			}
		})
	}
}

func TestSnapshotFlow(t *testing.T) {
	m, cond := newTestModel(stubFinder{}, nil)

	updated, _ := m.Update(searchResultMsg{spots: []spotItem{{location: grandBaie, distanceKm: -1}}})
	m = updated.(Model)
	if m.selected == nil || m.selected.location.ID != "grand-baie" {
		t.Fatalf("selected = %+v, want grand-baie", m.selected)
	}

	msg := fetchSnapshot(cond, *m.selected, m.date, m.referenceTime())()
	if len(cond.requests) != 1 {
		t.Fatalf("Snapshot called %d times, want 1", len(cond.requests))
	}
	if got := cond.requests[0]; got.ReferenceTime != "" || got.Date != "2024-05-01" {
		t.Errorf("today's request = %+v, want empty reference time", got)
	}

	updated, _ = m.Update(msg)
	m = updated.(Model)
	if m.state != StateDisplay {
		t.Fatalf("state = %v, want StateDisplay", m.state)
	}

	view := m.View()
	for _, want := range []string{"Grand Baie", "Last Quarter", "0.82 m", "Typical Mauritius weather", "Estimated: tide, weather"} {
		if !strings.Contains(view, want) {
			t.Errorf("display view missing %q", want)
		}
	}
}

func TestSnapshotFlow_BarePoint(t *testing.T) {
	m, cond := newTestModel(stubFinder{}, nil)
	point := &geocoding.Location{Latitude: -20.5, Longitude: 57.2, Name: "Offshore"}

	updated, _ := m.Update(searchResultMsg{point: point})
	m = updated.(Model)

	msg := fetchSnapshot(cond, *m.selected, m.date, m.referenceTime())().(snapshotMsg)
	if msg.err != nil {
		t.Fatalf("unexpected error: %v", msg.err)
	}
	if len(cond.points) != 1 || cond.points[0] != [2]float64{-20.5, 57.2} {
		t.Errorf("SnapshotAt points = %v, want [[-20.5 57.2]]", cond.points)
	}
}

func TestDisplay_DateNavigation(t *testing.T) {
	m, _ := newTestModel(stubFinder{}, nil)
	m.selected = &target{location: &grandBaie}
	m.snapshot = sampleSnapshot(grandBaie, m.date)
	m.state = StateDisplay

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(Model)
	if m.date != "2024-05-02" {
		t.Errorf("after right, date = %s, want 2024-05-02", m.date)
	}
	if m.state != StateLoading || cmd == nil {
		t.Error("changing day should reload conditions")
	}
	if m.referenceTime() != "12:00" {
		t.Errorf("referenceTime() = %q, want 12:00 for another day", m.referenceTime())
	}

	// a reply for the previous day is ignored
	updated, _ = m.Update(snapshotMsg{date: "2024-05-01", snapshot: sampleSnapshot(grandBaie, "2024-05-01")})
	m = updated.(Model)
	if m.state != StateLoading {
		t.Errorf("stale snapshot changed state to %v", m.state)
	}

	m.state = StateDisplay
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(Model)
	if m.date != "2024-04-30" {
		t.Errorf("after two steps back, date = %s, want 2024-04-30", m.date)
	}

	m.state = StateDisplay
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = updated.(Model)
	if m.date != "2024-05-01" {
		t.Errorf("after T, date = %s, want today", m.date)
	}
}

func TestDisplay_RefreshRefetchesTables(t *testing.T) {
	m, cond := newTestModel(stubFinder{}, nil)
	m.selected = &target{location: &grandBaie}
	m.snapshot = sampleSnapshot(grandBaie, m.date)
	m.state = StateDisplay

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(Model)
	if cond.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", cond.refreshes)
	}
	if m.state != StateLoading || cmd == nil {
		t.Error("refresh should reload conditions")
	}
}

func TestRenderMoon_NextPhases(t *testing.T) {
	loc := time.FixedZone("Indian/Mauritius", 4*3600)
	moon := models.MoonPhase{
		Phase:        models.PhaseLastQuarter,
		Illumination: 45.2,
		AgeDays:      22.4,
		NextNewMoon:  time.Date(2024, 5, 8, 7, 21, 0, 0, loc),
		NextFullMoon: time.Date(2024, 5, 23, 17, 53, 0, 0, loc),
	}

	out := renderMoon(moon)
	for _, want := range []string{"Next new:", "Wed 8 May", "Next full:", "Thu 23 May"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderMoon() missing %q in:\n%s", want, out)
		}
	}
}

func TestDisplay_BackToSearch(t *testing.T) {
	m, _ := newTestModel(stubFinder{}, nil)
	m.selected = &target{location: &grandBaie}
	m.snapshot = sampleSnapshot(grandBaie, m.date)
	m.state = StateDisplay

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = updated.(Model)

	if m.state != StateSearch || m.snapshot != nil || m.selected != nil {
		t.Errorf("after S, state = %v snapshot = %v selected = %v", m.state, m.snapshot, m.selected)
	}
}

func TestSnapshotError_Recovery(t *testing.T) {
	m, _ := newTestModel(stubFinder{}, nil)

	updated, _ := m.Update(snapshotMsg{date: m.date, err: errors.New("database locked")})
	m = updated.(Model)
	if m.state != StateError || m.err == nil {
		t.Fatalf("state = %v err = %v, want StateError", m.state, m.err)
	}
	if !strings.Contains(m.View(), "database locked") {
		t.Error("error view should show the error")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = updated.(Model)
	if m.state != StateSearch || m.err != nil {
		t.Errorf("after a key, state = %v err = %v, want StateSearch", m.state, m.err)
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m, _ := newTestModel(stubFinder{}, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("Expected Ctrl+C to return quit command")
	}

	m.state = StateDisplay
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("Expected q to quit outside the search box")
	}
}
