package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/angler-terminal/internal/conditions"
	"github.com/ngmaloney/angler-terminal/internal/geocoding"
	"github.com/ngmaloney/angler-terminal/internal/locations"
	"github.com/ngmaloney/angler-terminal/internal/models"
)

// AppState represents the current state of the application
type AppState int

const (
	StateSearch       AppState = iota // Search for a fishing spot or place name
	StateLocationList                 // Choose among matching spots
	StateLoading                      // Loading conditions
	StateDisplay                      // Display conditions for the selected spot
	StateError                        // Error state
)

// ConditionsProvider assembles environmental snapshots
type ConditionsProvider interface {
	Today() string
	Snapshot(ctx context.Context, req conditions.Request) (*models.EnvironmentalSnapshot, error)
	SnapshotAt(ctx context.Context, date, ref string, lat, lon float64) (*models.EnvironmentalSnapshot, error)
	RefreshSolunarTables()
}

// LocationFinder searches the spot catalogue
type LocationFinder interface {
	Search(ctx context.Context, query string) ([]models.Location, error)
	FindNearby(ctx context.Context, lat, lon, maxDistanceKm float64) ([]locations.NearbyLocation, error)
}

// Geocoder resolves free-text place names
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*geocoding.Location, error)
}

// Deps are the services the UI reads from. Geocoder may be nil.
type Deps struct {
	Conditions ConditionsProvider
	Locations  LocationFinder
	Geocoder   Geocoder
	// InitialQuery, when set, is searched on startup
	InitialQuery string
}

// target is what conditions are shown for: a catalogue spot or a bare point
type target struct {
	location *models.Location
	point    *geocoding.Location
}

func (t target) label() string {
	if t.location != nil {
		return t.location.Name
	}
	if t.point != nil {
		return t.point.Name
	}
	return ""
}

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	// Services
	conditions ConditionsProvider
	locations  LocationFinder
	geocoder   Geocoder

	// Search
	searchInput textinput.Model
	searchQuery string // Last search query

	// Spot selection
	spots    []spotItem
	spotList list.Model
	selected *target

	// Data
	date     string // local day shown, "2006-01-02"
	snapshot *models.EnvironmentalSnapshot

	spinner spinner.Model
}

// NewModel creates a new application model
func NewModel(deps Deps) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a fishing spot, region or place (e.g. Grand Baie, South, Mahebourg)..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		state:       StateSearch,
		conditions:  deps.Conditions,
		locations:   deps.Locations,
		geocoder:    deps.Geocoder,
		searchInput: ti,
		spinner:     s,
		date:        deps.Conditions.Today(),
	}

	if deps.InitialQuery != "" {
		m.searchQuery = deps.InitialQuery
		m.searchInput.SetValue(deps.InitialQuery)
		m.state = StateLoading
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	if m.state == StateLoading && m.searchQuery != "" {
		return tea.Batch(m.spinner.Tick, searchSpots(m.locations, m.geocoder, m.searchQuery))
	}
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateLocationList {
			m.spotList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case snapshotMsg:
		// a late reply for a day the user already navigated away from
		if msg.date != m.date {
			return m, nil
		}
		if msg.err != nil {
			m.err = fmt.Errorf("loading conditions failed: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.snapshot = msg.snapshot
		m.state = StateDisplay
		return m, nil
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Global keys
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if keyMsg.String() == "q" && m.state != StateSearch {
			return m, tea.Quit
		}

		// State-specific handling
		switch m.state {
		case StateSearch:
			return m.handleSearchInput(keyMsg)

		case StateLocationList:
			return m.handleLocationList(msg)

		case StateDisplay:
			return m.handleDisplayKeys(keyMsg)

		case StateError:
			// Any key returns to search (except quit keys)
			m.state = StateSearch
			m.err = nil
			m.searchInput.Focus()
			return m, textinput.Blink
		}
	}

	// Update appropriate component based on state
	switch m.state {
	case StateLoading:
		m.spinner, cmd = m.spinner.Update(msg)
	case StateSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case StateLocationList:
		m.spotList, cmd = m.spotList.Update(msg)
	}

	return m, cmd
}

func (m Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.state = StateError
		return m, nil
	}

	switch {
	case len(msg.spots) == 1 && msg.point == nil:
		loc := msg.spots[0].location
		return m.load(target{location: &loc})
	case len(msg.spots) == 0 && msg.point != nil:
		// nothing catalogued nearby, show the point itself
		return m.load(target{point: msg.point})
	case len(msg.spots) == 0:
		m.err = fmt.Errorf("no fishing spots found for '%s'", m.searchQuery)
		m.state = StateError
		return m, nil
	}

	m.spots = msg.spots
	m.spotList = createSpotList(msg.spots, m.width-4, m.height-10)
	m.state = StateLocationList
	return m, nil
}

// handleSearchInput handles keyboard input in search state
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Clear error when typing
	if m.err != nil && msg.Type != tea.KeyEnter {
		m.err = nil
	}

	if msg.Type == tea.KeyEnter {
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		m.searchQuery = query
		m.err = nil
		m.state = StateLoading
		return m, tea.Batch(m.spinner.Tick, searchSpots(m.locations, m.geocoder, query))
	}

	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleLocationList handles keyboard input in spot list state
func (m Model) handleLocationList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEnter {
			if item, ok := m.spotList.SelectedItem().(spotItem); ok {
				loc := item.location
				return m.load(target{location: &loc})
			}
		}
		// 's' or Esc to go back to search
		if keyMsg.String() == "s" || keyMsg.Type == tea.KeyEsc {
			return m.backToSearch()
		}
	}

	m.spotList, cmd = m.spotList.Update(msg)
	return m, cmd
}

// handleDisplayKeys handles date navigation and search in display state
func (m Model) handleDisplayKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s", "esc":
		return m.backToSearch()
	case "left", "h":
		return m.shiftDate(-1)
	case "right", "l":
		return m.shiftDate(1)
	case "t":
		m.date = m.conditions.Today()
		return m.reload()
	case "r":
		m.conditions.RefreshSolunarTables()
		return m.reload()
	}
	return m, nil
}

func (m Model) backToSearch() (tea.Model, tea.Cmd) {
	m.state = StateSearch
	m.searchInput.SetValue("")
	m.searchInput.Focus()
	m.selected = nil
	m.snapshot = nil
	m.spots = nil
	return m, textinput.Blink
}

func (m Model) shiftDate(days int) (tea.Model, tea.Cmd) {
	d, err := time.Parse(time.DateOnly, m.date)
	if err != nil {
		return m, nil
	}
	m.date = d.AddDate(0, 0, days).Format(time.DateOnly)
	return m.reload()
}

func (m Model) load(t target) (tea.Model, tea.Cmd) {
	m.selected = &t
	return m.reload()
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.selected == nil {
		return m, nil
	}
	m.state = StateLoading
	m.snapshot = nil
	return m, tea.Batch(m.spinner.Tick, fetchSnapshot(m.conditions, *m.selected, m.date, m.referenceTime()))
}

// referenceTime is now for today and local noon for any other day
func (m Model) referenceTime() string {
	if m.date == m.conditions.Today() {
		return ""
	}
	return "12:00"
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateSearch:
		return m.viewSearch()
	case StateLocationList:
		return m.viewLocationList()
	case StateLoading:
		return m.viewLoading()
	case StateDisplay:
		return m.viewDisplay()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewError renders the error view
func (m Model) viewError() string {
	title := lipgloss.NewStyle().
		Foreground(colorDanger).
		Bold(true).
		Render("✗ Error")

	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	help := helpStyle.Render("Press any key to return to search • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, "", help)
}

// viewSearch renders the search view
func (m Model) viewSearch() string {
	title := titleStyle.Render("🎣 Angler Terminal")
	subtitle := mutedStyle.Render("Mauritius fishing conditions: moon, tide, solunar, weather")

	searchBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(64).
		Render(m.searchInput.View())

	var sections []string
	sections = append(sections, title, subtitle, "", searchBox)

	if m.err != nil {
		errorMsg := lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true).
			Padding(0, 2).
			Render("✗ " + m.err.Error())
		sections = append(sections, "", errorMsg)
	}

	examples := mutedStyle.Render("Examples: Grand Baie | Le Morne | North | -20.27, 57.37")
	help := helpStyle.Render("Press Enter to search • Ctrl+C to quit")
	sections = append(sections, "", examples, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewLocationList renders the spot selection list
func (m Model) viewLocationList() string {
	title := titleStyle.Render("🎣 Fishing Spots")
	subtitle := mutedStyle.Render(fmt.Sprintf("Found %d spots for %s", len(m.spots), m.searchQuery))
	help := helpStyle.Render("↑/↓: Navigate • Enter: Select • /: Filter • S/Esc: Back to search • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "", m.spotList.View(), "", help)
}

// viewLoading renders the loading view
func (m Model) viewLoading() string {
	s := "Searching fishing spots"
	if m.selected != nil {
		s = fmt.Sprintf("Loading conditions for %s on %s", m.selected.label(), m.date)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), s)
}

// viewDisplay renders the conditions, one section per source
func (m Model) viewDisplay() string {
	if m.snapshot == nil {
		return "No conditions loaded"
	}
	snap := m.snapshot

	headerStyle := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Padding(0, 1).
		MarginBottom(1)
	header := headerStyle.Render(fmt.Sprintf("🎣 %s", snap.Location.Name))

	var sections []string
	sections = append(sections, header)

	where := fmt.Sprintf("📍 %s (%.4f, %.4f)", snap.Location.Region, snap.Location.Latitude, snap.Location.Longitude)
	sections = append(sections,
		mutedStyle.Render(where),
		mutedStyle.Render(fmt.Sprintf("📅 %s • %s", formatDay(snap.Date), snap.ReferenceTime.Format("15:04"))),
	)

	sections = append(sections,
		sectionHeaderStyle.Render("🌙 MOON"),
		renderMoon(snap.Moon),
		sectionHeaderStyle.Render("🌊 TIDE"),
		renderTide(snap.Tide, m.width),
		sectionHeaderStyle.Render("🐟 SOLUNAR"),
		renderSolunar(snap.Solunar, snap.CurrentActivity),
		sectionHeaderStyle.Render("⛅ WEATHER & SEA"),
		renderWeather(snap.Weather, snap.Marine, snap.SeaTemperature),
	)

	if est := snap.Estimated(); len(est) > 0 {
		sections = append(sections, "", estimateStyle.Render("Estimated: "+joinComma(est)))
	}

	help := helpStyle.Render("←/→: Change day • T: Today • R: Refresh • S: New search • Q: Quit")
	sections = append(sections, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func formatDay(date string) string {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return d.Format("Mon 2 Jan 2006")
}
