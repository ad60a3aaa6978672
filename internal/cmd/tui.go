package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/aldenhart/mprisctl/internal/bus"
	"github.com/aldenhart/mprisctl/internal/event"
	"github.com/aldenhart/mprisctl/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive player view",
	Long: `Open a full-screen view of every tracked player, following playback
and topology changes live. The primary player is marked and can be
controlled from the keyboard.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	events := event.NewBus()

	app, err := newApp(events)
	if err != nil {
		return err
	}
	defer app.Close()

	signals := make(chan *dbus.Signal, 32)
	if err := app.session.Watch(signals); err != nil {
		return err
	}
	defer app.session.Unwatch(signals)

	controls := make(chan string, 8)
	program := tea.NewProgram(tui.New(controls), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// All registry access happens on this goroutine; the model only ever
	// sees immutable snapshots.
	go func() {
		snapshot := func() {
			program.Send(tui.SnapshotMsg{
				Players: tui.Snapshot(app.registry.Players(), app.registry.Primary(), bus.PlayerSuffix),
			})
		}
		snapshot()

		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-signals:
				if !ok {
					return
				}
				app.registry.HandleSignal(sig)
				snapshot()
			case name := <-controls:
				app.control(name)
				snapshot()
			}
		}
	}()

	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

// control applies a named transport action to the primary player. A
// missing primary or an unreachable remote is not fatal to the view.
func (a *app) control(name string) {
	primary := a.registry.Primary()
	if primary == nil {
		return
	}

	var err error
	switch name {
	case "PlayPause":
		err = primary.PlayPause()
	case "Next":
		err = primary.Next()
	case "Previous":
		err = primary.Previous()
	case "Stop":
		err = primary.Stop()
	}
	if err != nil {
		a.log.WithPlayer(primary.BusName()).Warn("player did not accept the command", "error", err)
	}
}
