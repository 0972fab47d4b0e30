package cli

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/ngmaloney/angler-terminal/internal/models"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func sourceNote(src models.Source) string {
	if src == models.SourceLive || src == models.SourceComputed || src == "" {
		return ""
	}
	return fmt.Sprintf(" [%s]", src)
}

func printMoon(w io.Writer, m models.MoonPhase) {
	fmt.Fprintf(w, "Moon:      %s, %.1f%% illuminated, %.1f days old\n", m.Phase, m.Illumination, m.AgeDays)
	if !m.NextNewMoon.IsZero() && !m.NextFullMoon.IsZero() {
		fmt.Fprintf(w, "           next new %s, next full %s\n", m.NextNewMoon.Format(moonDateLayout), m.NextFullMoon.Format(moonDateLayout))
	}
}

const moonDateLayout = "Mon 2 Jan"

func printTide(w io.Writer, t models.TideReading) {
	fmt.Fprintf(w, "Tide:      %.2f m %s, %s%s\n", t.Height, t.Level, t.Trend, sourceNote(t.Source))
	if t.NextHigh != nil {
		fmt.Fprintf(w, "           next high %s (%.2f m)\n", t.NextHigh.TimeString, t.NextHigh.Height)
	}
	if t.NextLow != nil {
		fmt.Fprintf(w, "           next low  %s (%.2f m)\n", t.NextLow.TimeString, t.NextLow.Height)
	}
}

func printSolunar(w io.Writer, s models.SolunarSnapshot) {
	fmt.Fprintf(w, "Solunar:   %s day, sun %s-%s%s, moon %s-%s%s\n",
		s.Rating, s.Sunrise, s.Sunset, sourceNote(s.SunSource), s.Moonrise, s.Moonset, sourceNote(s.MoonSource))
	if s.CivilDawn != nil && s.CivilDusk != nil {
		fmt.Fprintf(w, "           civil twilight %s-%s\n", s.CivilDawn, s.CivilDusk)
	}
	if s.TablesFetchedAt != nil {
		fmt.Fprintf(w, "           published tables fetched %s\n", s.TablesFetchedAt.Format("2006-01-02 15:04"))
	}
	for _, p := range s.Periods() {
		fmt.Fprintf(w, "           %-5s %s-%s  %s\n", p.Kind, p.Start, p.End, p.Activity)
	}
}

func printActivity(w io.Writer, a models.CurrentActivity) {
	fmt.Fprintf(w, "Activity:  %s (%s)\n", a.Description, a.Level)
}

func printSnapshot(w io.Writer, snap *models.EnvironmentalSnapshot) {
	l := snap.Location
	fmt.Fprintf(w, "%s, %s (%.4f, %.4f)\n", l.Name, l.Region, l.Latitude, l.Longitude)
	fmt.Fprintf(w, "%s at %s\n\n", snap.Date, snap.ReferenceTime.Format("15:04 MST"))

	printMoon(w, snap.Moon)
	printTide(w, snap.Tide)
	printSolunar(w, snap.Solunar)
	printActivity(w, snap.CurrentActivity)

	wx := snap.Weather
	fmt.Fprintf(w, "Weather:   %s, %.1f°C, wind %.1f m/s from %.0f°, %s%s\n",
		wx.Description, wx.Temperature, wx.WindSpeed, wx.WindDirection, wx.Rating, sourceNote(wx.Source))
	sea := snap.Marine
	fmt.Fprintf(w, "Sea:       %.1f m (max %.1f m) %s%s\n", sea.WaveHeight, sea.WaveHeightMax, sea.Condition, sourceNote(sea.Source))
	sst := snap.SeaTemperature
	fmt.Fprintf(w, "Water:     %.1f°C %s%s\n", sst.Temperature, sst.Band, sourceNote(sst.Source))

	if est := snap.Estimated(); len(est) > 0 {
		fmt.Fprintf(w, "\nEstimated: %s\n", strings.Join(est, ", "))
	}
}

func printLocations(w io.Writer, locs []models.Location) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tREGION\tTYPE\tLAT\tLON")
	for _, l := range locs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.4f\t%.4f\n", l.ID, l.Name, l.Region, l.Type, l.Latitude, l.Longitude)
	}
	return tw.Flush()
}

func printLogs(w io.Writer, logs []models.FishingLog) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tLOCATION\tFISH\tSPECIES\tBAIT\tMOON\tTIDE")
	for _, l := range logs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			l.ID, l.Date.Format("2006-01-02"), l.LocationName, l.FishCount,
			strings.Join(l.FishTypes, ","), l.Bait, l.MoonPhase, l.TideLevel)
	}
	return tw.Flush()
}

func printLog(w io.Writer, l *models.FishingLog) {
	fmt.Fprintf(w, "Log #%d  %s at %s\n", l.ID, l.Date.Format("2006-01-02"), l.LocationName)
	fmt.Fprintf(w, "Caught:    %d %s\n", l.FishCount, strings.Join(l.FishTypes, ", "))
	fmt.Fprintf(w, "Moon/tide: %s / %s\n", l.MoonPhase, l.TideLevel)
	if l.FishingType != "" || l.Bait != "" || l.HookSetup != "" {
		fmt.Fprintf(w, "Tackle:    %s, %s, %s\n", l.FishingType, l.Bait, l.HookSetup)
	}
	if l.Notes != "" {
		fmt.Fprintf(w, "Notes:     %s\n", l.Notes)
	}
}

func printCounts(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sortByCount(keys, counts)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %d", k, counts[k])
	}
	fmt.Fprintf(w, "%-10s %s\n", title+":", strings.Join(parts, ", "))
}

// sortByCount orders keys by descending count, then by name
func sortByCount(keys []string, counts map[string]int) {
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}
