package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/angler-terminal/internal/ui"
)

// runTUI starts the interactive terminal UI, optionally searching args[0]
func (a *App) runTUI(ctx context.Context, args []string) error {
	rt, err := a.runtime()
	if err != nil {
		return err
	}

	deps := ui.Deps{
		Conditions: rt.Conditions,
		Locations:  rt.Locations,
		Geocoder:   rt.Geocoder,
	}
	if len(args) == 1 {
		deps.InitialQuery = args[0]
	}

	p := tea.NewProgram(ui.NewModel(deps), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
