package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngmaloney/angler-terminal/internal/conditions"
	"github.com/ngmaloney/angler-terminal/internal/models"
)

// Port Louis is used when tide or solunar is asked for without coordinates
const (
	defaultLat = -20.1609
	defaultLon = 57.5012
)

type dayFlags struct {
	date   string
	ref    string
	lat    float64
	lon    float64
	asJSON bool
}

func (f *dayFlags) bindDate(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "day as YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print JSON")
}

func (f *dayFlags) bindTime(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ref, "time", "", "reference time: HH:MM on the day or an ISO-8601 timestamp (default: now)")
}

func (f *dayFlags) bindCoordinates(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.lat, "lat", defaultLat, "latitude")
	cmd.Flags().Float64Var(&f.lon, "lon", defaultLon, "longitude")
}

func (f *dayFlags) day(today string) string {
	if f.date == "" {
		return today
	}
	return f.date
}

func newConditionsCmd(app *App) *cobra.Command {
	var f dayFlags

	cmd := &cobra.Command{
		Use:   "conditions [location-id]",
		Short: "Show every reading for a spot or coordinates",
		Long: `Assembles moon, tide, solunar, weather, waves and sea temperature.
Give a catalogue location id, or --lat and --lon for any point.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.runtime()
			if err != nil {
				return err
			}
			svc := rt.Conditions
			date := f.day(svc.Today())

			var snap *models.EnvironmentalSnapshot
			switch {
			case len(args) == 1:
				snap, err = svc.Snapshot(cmd.Context(), conditions.Request{Date: date, ReferenceTime: f.ref, LocationID: args[0]})
			case cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon"):
				snap, err = svc.SnapshotAt(cmd.Context(), date, f.ref, f.lat, f.lon)
			default:
				return errors.New("give a location id or both --lat and --lon")
			}
			if err != nil {
				return err
			}

			if f.asJSON {
				return printJSON(app.out, snap)
			}
			printSnapshot(app.out, snap)
			return nil
		},
	}
	f.bindDate(cmd)
	f.bindTime(cmd)
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "longitude")
	return cmd
}

func newMoonCmd(app *App) *cobra.Command {
	var f dayFlags

	cmd := &cobra.Command{
		Use:   "moon",
		Short: "Show the moon phase for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.runtime()
			if err != nil {
				return err
			}
			m, err := rt.Conditions.Moon(f.day(rt.Conditions.Today()))
			if err != nil {
				return err
			}
			if f.asJSON {
				return printJSON(app.out, m)
			}
			printMoon(app.out, m)
			return nil
		},
	}
	f.bindDate(cmd)
	return cmd
}

func newTideCmd(app *App) *cobra.Command {
	var f dayFlags

	cmd := &cobra.Command{
		Use:   "tide",
		Short: "Show the tide at a point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.runtime()
			if err != nil {
				return err
			}
			t, err := rt.Conditions.Tide(cmd.Context(), f.lat, f.lon, f.day(rt.Conditions.Today()), f.ref)
			if err != nil {
				return err
			}
			if f.asJSON {
				return printJSON(app.out, t)
			}
			printTide(app.out, t)
			return nil
		},
	}
	f.bindDate(cmd)
	f.bindTime(cmd)
	f.bindCoordinates(cmd)
	return cmd
}

func newSolunarCmd(app *App) *cobra.Command {
	var (
		f  dayFlags
		at string
	)

	cmd := &cobra.Command{
		Use:   "solunar",
		Short: "Show the solunar feeding periods for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.runtime()
			if err != nil {
				return err
			}
			s, err := rt.Conditions.Solunar(cmd.Context(), f.day(rt.Conditions.Today()), f.lat, f.lon)
			if err != nil {
				return err
			}

			if at == "" {
				if f.asJSON {
					return printJSON(app.out, s)
				}
				printSolunar(app.out, s)
				return nil
			}

			act, err := rt.Conditions.CurrentActivity(&s, at)
			if err != nil {
				return err
			}
			if f.asJSON {
				return printJSON(app.out, map[string]any{"solunar": s, "currentActivity": act})
			}
			printSolunar(app.out, s)
			printActivity(app.out, act)
			return nil
		},
	}
	f.bindDate(cmd)
	f.bindCoordinates(cmd)
	cmd.Flags().StringVar(&at, "at", "", "local time HH:MM to report the activity for")
	return cmd
}

func newLocationsCmd(app *App) *cobra.Command {
	var (
		region      string
		listRegions bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "locations [query]",
		Short: "List or search the fishing spot catalogue",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.runtime()
			if err != nil {
				return err
			}

			if listRegions {
				names, err := rt.Locations.Regions(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(app.out, names)
				}
				for _, n := range names {
					fmt.Fprintln(app.out, n)
				}
				return nil
			}

			var locs []models.Location
			if len(args) == 1 {
				locs, err = rt.Locations.Search(cmd.Context(), args[0])
			} else {
				locs, err = rt.Locations.List(cmd.Context(), region)
			}
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(app.out, locs)
			}
			return printLocations(app.out, locs)
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "only spots in this region")
	cmd.Flags().BoolVar(&listRegions, "regions", false, "list region names")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
