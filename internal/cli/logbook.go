package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ngmaloney/angler-terminal/internal/logbook"
	"github.com/ngmaloney/angler-terminal/internal/models"
)

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

func newLogCmd(app *App) *cobra.Command {
	var (
		user   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record and analyse fishing trips",
	}
	cmd.PersistentFlags().StringVar(&user, "user", defaultUser(), "logbook owner")
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON")

	cmd.AddCommand(
		newLogAddCmd(app, &user, &asJSON),
		newLogListCmd(app, &user, &asJSON),
		newLogShowCmd(app, &user, &asJSON),
		newLogDeleteCmd(app, &user),
		newLogStatsCmd(app, &user, &asJSON),
		newLogPredictionsCmd(app, &asJSON),
	)
	return cmd
}

func newLogAddCmd(app *App, user *string, asJSON *bool) *cobra.Command {
	var (
		l    models.FishingLog
		date string
		moon string
		tide string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a trip",
		Long:  "Records a trip. Moon phase and tide level are filled in from the day's conditions when not given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.runtime()
			if err != nil {
				return err
			}

			if date == "" {
				date = rt.Conditions.Today()
			}
			d, err := time.Parse(logbook.DateLayout, date)
			if err != nil {
				return fmt.Errorf("%w: date %q", logbook.ErrInvalidLog, date)
			}
			l.Date = d
			l.UserID = *user
			l.MoonPhase = models.MoonPhaseName(moon)
			l.TideLevel = models.TideLevel(tide)

			if err := rt.Logbook.Create(cmd.Context(), &l); err != nil {
				return err
			}
			if *asJSON {
				return printJSON(app.out, l)
			}
			printLog(app.out, &l)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "trip date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&l.LocationID, "location", "", "catalogue location id")
	cmd.Flags().IntVar(&l.FishCount, "count", 0, "number of fish caught")
	cmd.Flags().StringSliceVar(&l.FishTypes, "fish", nil, "species caught, comma separated")
	cmd.Flags().StringVar(&l.FishingType, "type", "", "fishing type, e.g. shore or boat")
	cmd.Flags().StringVar(&l.HookSetup, "hook", "", "hook setup")
	cmd.Flags().StringVar(&l.Bait, "bait", "", "bait used")
	cmd.Flags().StringVar(&l.Notes, "notes", "", "free text notes")
	cmd.Flags().StringVar(&moon, "moon", "", "moon phase, e.g. \"Full Moon\" (default: computed)")
	cmd.Flags().StringVar(&tide, "tide", "", "tide level Low|Medium|Medium-High|High (default: computed)")
	_ = cmd.MarkFlagRequired("location")
	return cmd
}

func newLogListCmd(app *App, user *string, asJSON *bool) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your most recent trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.runtime()
			if err != nil {
				return err
			}
			logs, err := rt.Logbook.List(cmd.Context(), *user, limit)
			if err != nil {
				return err
			}
			if *asJSON {
				return printJSON(app.out, logs)
			}
			return printLogs(app.out, logs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum trips to show")
	return cmd
}

func parseLogID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid log id %q", arg)
	}
	return id, nil
}

func newLogShowCmd(app *App, user *string, asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLogID(args[0])
			if err != nil {
				return err
			}
			rt, err := app.runtime()
			if err != nil {
				return err
			}
			l, err := rt.Logbook.Get(cmd.Context(), id, *user)
			if err != nil {
				return err
			}
			if *asJSON {
				return printJSON(app.out, l)
			}
			printLog(app.out, l)
			return nil
		},
	}
}

func newLogDeleteCmd(app *App, user *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLogID(args[0])
			if err != nil {
				return err
			}
			rt, err := app.runtime()
			if err != nil {
				return err
			}
			if err := rt.Logbook.Delete(cmd.Context(), id, *user); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Deleted log #%d\n", id)
			return nil
		},
	}
}

func newLogStatsCmd(app *App, user *string, asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise your trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.runtime()
			if err != nil {
				return err
			}
			st, err := rt.Logbook.Statistics(cmd.Context(), *user)
			if err != nil {
				return err
			}
			if *asJSON {
				return printJSON(app.out, st)
			}
			fmt.Fprintf(app.out, "Trips:      %d (%d successful)\n", st.TotalTrips, st.SuccessfulTrips)
			fmt.Fprintf(app.out, "Fish:       %d\n", st.TotalFishCaught)
			fmt.Fprintf(app.out, "Locations:  %d\n", st.LocationsVisited)
			return nil
		},
	}
}

func newLogPredictionsCmd(app *App, asJSON *bool) *cobra.Command {
	var location, fishingType, bait string

	cmd := &cobra.Command{
		Use:   "predictions",
		Short: "Best conditions from the community's successful trips",
		Long: `Without flags, reports the moon phase, tide, bait, spot and month behind
the most fish. --location summarises one spot; --fishing-type and --bait
analyse the most productive trips matching them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.runtime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			switch {
			case location != "":
				st, err := rt.Logbook.LocationStats(ctx, location)
				if err != nil {
					return err
				}
				if *asJSON {
					return printJSON(app.out, st)
				}
				fmt.Fprintf(app.out, "%s: %d trips, %d fish\n", st.LocationID, st.TotalTrips, st.TotalFish)
				fmt.Fprintf(app.out, "Best bait: %s, best type: %s, most caught: %s\n", st.BestBait, st.BestFishingType, st.MostCaughtFish)
				printCounts(app.out, "Baits", st.BaitStats)
				printCounts(app.out, "Types", st.FishingTypeStats)
				printCounts(app.out, "Species", st.FishStats)
				if len(st.RecentLogs) > 0 {
					fmt.Fprintln(app.out)
					return printLogs(app.out, st.RecentLogs)
				}
				return nil

			case fishingType != "" || bait != "":
				bc, err := rt.Logbook.BestConditions(ctx, fishingType, bait)
				if err != nil {
					return err
				}
				if *asJSON {
					return printJSON(app.out, bc)
				}
				fmt.Fprintf(app.out, "%s with %s (%d trips, %d fish)\n", bc.FishingType, bc.Bait, bc.DataPoints, bc.TotalFish)
				fmt.Fprintf(app.out, "Moon: %s, tide: %s, spot: %s, month: %s\n", bc.BestMoonPhase, bc.BestTideLevel, bc.BestLocation, bc.BestMonth)
				return nil

			default:
				p, err := rt.Logbook.Predictions(ctx)
				if err != nil {
					return err
				}
				if *asJSON {
					return printJSON(app.out, p)
				}
				fmt.Fprintf(app.out, "Moon: %s, tide: %s, bait: %s\n", p.BestMoonPhase, p.BestTideLevel, p.BestBait)
				fmt.Fprintf(app.out, "Spot: %s, month: %s\n", p.BestLocation, p.BestMonth)
				fmt.Fprintf(app.out, "%d fish over %d trips (%.1f per trip)\n", p.TotalFish, p.TotalTrips, p.AvgPerTrip)
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "summarise one catalogue location")
	cmd.Flags().StringVar(&fishingType, "fishing-type", "", "only trips of this fishing type")
	cmd.Flags().StringVar(&bait, "bait", "", "only trips with this bait")
	return cmd
}
