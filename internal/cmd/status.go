package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aldenhart/mprisctl/internal/event"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current player status once",
	Long:  `Render the primary player's status through the configured template and exit.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	events := event.NewBus()
	subscribePrinter(events, cmd.OutOrStdout())

	app, err := newApp(events)
	if err != nil {
		return err
	}
	defer app.Close()

	app.registry.RenderPrimary()
	return nil
}

// subscribePrinter wires status output and the no-active-players report to w.
func subscribePrinter(events *event.Bus, w io.Writer) {
	events.Subscribe("status.changed", func(e event.Event) {
		fmt.Fprintln(w, e.(event.StatusChangedEvent).Line)
	})
	events.Subscribe("players.none", func(e event.Event) {
		fmt.Fprintln(w, "NO ACTIVE PLAYERS")
	})
}
