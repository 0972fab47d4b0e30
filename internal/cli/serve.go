package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ngmaloney/angler-terminal/internal/api"
)

func newServeCmd(app *App) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conditions and catch statistics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.runtime()
			if err != nil {
				return err
			}
			if address == "" {
				address = app.settings.Server.Address
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := api.New(api.Deps{
				Conditions: rt.Conditions,
				Locations:  rt.Locations,
				Catches:    rt.Logbook,
				Metrics:    rt.Metrics,
				Logger:     app.logger,
			})
			return srv.Run(ctx, address)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address (default from config server.address)")
	return cmd
}
